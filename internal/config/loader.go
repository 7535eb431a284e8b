package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"llm":        {"openai", "anthropic", "gemini", "ollama", "deepseek", "mistral", "groq", "llamacpp", "llamafile"},
	"embeddings": {"openai"},
}

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TLS != nil {
		if cfg.Server.TLS.CertFile == "" || cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, errors.New("server.tls requires both cert_file and key_file"))
		}
	}

	// Providers
	if cfg.Providers.LLM.Name == "" {
		errs = append(errs, errors.New("providers.llm.name is required"))
	}
	validateProviderName("llm", cfg.Providers.LLM.Name)
	for i, fb := range cfg.Providers.LLM.Fallbacks {
		if fb.Name == "" {
			errs = append(errs, fmt.Errorf("providers.llm.fallbacks[%d].name is required", i))
		}
		validateProviderName("llm", fb.Name)
		if len(fb.Fallbacks) > 0 {
			errs = append(errs, fmt.Errorf("providers.llm.fallbacks[%d]: nested fallbacks are not supported", i))
		}
	}
	validateProviderName("embeddings", cfg.Providers.Embeddings.Name)

	// Memory
	if cfg.Memory.EmbeddingDimensions < 0 {
		errs = append(errs, fmt.Errorf("memory.embedding_dimensions %d must not be negative", cfg.Memory.EmbeddingDimensions))
	}
	if cfg.Memory.PostgresDSN == "" {
		slog.Warn("memory.postgres_dsn is empty; conversations will not survive restarts")
	}

	// Pipeline
	if cfg.Pipeline.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("pipeline.max_tokens %d must not be negative", cfg.Pipeline.MaxTokens))
	}
	if cfg.Pipeline.AssociativeRecall && cfg.Providers.Embeddings.Name == "" {
		errs = append(errs, errors.New("pipeline.associative_recall requires providers.embeddings"))
	}
	if cfg.Providers.Embeddings.Name != "" && cfg.Memory.EmbeddingDimensions == 0 {
		slog.Warn("providers.embeddings is configured but memory.embedding_dimensions is not set; defaulting to 1536")
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
