package cli

import (
	"os"

	"github.com/donothingclub/donothing/internal/identity"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	IdentityFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("DONOTHING_SERVER", "http://localhost:8080"),
		IdentityFile: getEnvOrDefault("DONOTHING_IDENTITY_FILE", identity.DefaultPath()),
		Output:       "text",
		Verbose:      false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
