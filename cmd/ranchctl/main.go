package main

import "github.com/mcoot/ranchgame/internal/cli"

func main() {
	cli.Execute()
}
