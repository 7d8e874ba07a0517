package surreal

// Config holds SurrealDB connection settings
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// DefaultConfig returns settings for a local development instance
func DefaultConfig() Config {
	return Config{
		Host:      "localhost",
		Port:      "8000",
		User:      "root",
		Password:  "root",
		Namespace: "ranchgame",
		Database:  "ranchgame",
	}
}
