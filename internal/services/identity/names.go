package identity

import (
	_ "embed"
	"strings"

	"github.com/mcoot/ranchgame/internal/dependencies/random"
)

// NameAlgorithm identifies the username synthesis scheme.
// Usernames already issued were produced by this exact algorithm and word list;
// any change to either needs a new version.
const NameAlgorithm = "namegen/v2"

// NameSeparator joins the dictionary words of a username
const NameSeparator = "-"

var (
	//go:embed dict/adjectives.txt
	adjectivesFile string

	//go:embed dict/animals.txt
	animalsFile string

	// Adjectives is the descriptive-term dictionary
	Adjectives = loadDictionary(adjectivesFile)
	// Animals is the entity-name dictionary
	Animals = loadDictionary(animalsFile)
)

// SynthesizeName returns the username for a numeric seed.
// One word is drawn from each dictionary in order using a mulberry32
// sequence seeded with seed; the words are joined with NameSeparator and lower-cased.
func SynthesizeName(seed uint32) string {
	return SynthesizeNameFrom(random.NewSeeded(seed))
}

// SynthesizeNameFrom builds a username from an arbitrary random source
func SynthesizeNameFrom(rnd random.Random) string {
	dictionaries := [][]string{Adjectives, Animals}

	words := make([]string, 0, len(dictionaries))
	for _, dict := range dictionaries {
		words = append(words, dict[rnd.Intn(len(dict))])
	}
	return strings.ToLower(strings.Join(words, NameSeparator))
}

func loadDictionary(contents string) []string {
	return strings.Fields(contents)
}
