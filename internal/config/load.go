package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at path, validates it and resolves secrets from the environment
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	cfg.Secrets = cfg.resolveSecrets(os.Getenv)
	return &cfg, nil
}

// LoadDotEnv loads KEY=value files into the process environment.
// Missing files are skipped; variables already set are left untouched.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) resolveSecrets(getenv func(string) string) Secrets {
	var s Secrets

	for _, k := range strings.Split(getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			s.GeminiAPIKeys = append(s.GeminiAPIKeys, k)
		}
	}
	if len(s.GeminiAPIKeys) == 0 {
		if k := strings.TrimSpace(getenv("GEMINI_API_KEY")); k != "" {
			s.GeminiAPIKeys = []string{k}
		}
	}

	if c.Transcription.APIKeyEnv != "" {
		s.TranscriptionAPIKey = strings.TrimSpace(getenv(c.Transcription.APIKeyEnv))
	}
	if c.Summarizer.APIKeyEnv != "" {
		s.SummarizerAPIKey = strings.TrimSpace(getenv(c.Summarizer.APIKeyEnv))
	}

	return s
}
