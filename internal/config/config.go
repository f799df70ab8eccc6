package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	JWTSecret     string         `yaml:"jwt_secret"`
	APITimeout    time.Duration  `yaml:"timeout"`
	DatabasePath  string         `yaml:"database_path"`
	TokenDuration time.Duration  `yaml:"token_duration"`
	Enhancer      EnhancerConfig `yaml:"enhancer"`
}

// EnhancerConfig configures the optional feedback enhancement collaborator.
// Leaving BaseURL empty disables enhancement; feedback is stored with the
// original content only.
type EnhancerConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	Model                   string        `yaml:"model"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("WORKFORCE_ADDR", ":8080"),
		JWTSecret:     getEnv("WORKFORCE_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("WORKFORCE_DATABASE_PATH", "workforce.db"),
		TokenDuration: 1 * time.Hour,
		Enhancer: EnhancerConfig{
			BaseURL:                 getEnv("WORKFORCE_ENHANCER_URL", ""),
			Model:                   getEnv("WORKFORCE_ENHANCER_MODEL", "llama3.2"),
			Timeout:                 20 * time.Second,
			Retries:                 2,
			Backoff:                 500 * time.Millisecond,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
