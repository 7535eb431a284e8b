// Package config provides the configuration schema and loader for the
// sevenmind server.
package config

// LogLevel controls log verbosity for the sevenmind server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for sevenmind.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Memory    MemoryConfig    `yaml:"memory"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// ProvidersConfig declares which backend to use for completions and
// embeddings.
type ProvidersConfig struct {
	LLM        ProviderEntry `yaml:"llm"`
	Embeddings ProviderEntry `yaml:"embeddings"`
}

// ProviderEntry is the common configuration block shared by provider types.
type ProviderEntry struct {
	// Name selects the provider implementation (e.g., "openai", "anthropic").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API if any.
	// Usually injected via environment rather than written into the file.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider.
	Model string `yaml:"model"`

	// Fallbacks lists providers to fail over to when this one's circuit
	// opens. Only meaningful on the LLM entry.
	Fallbacks []ProviderEntry `yaml:"fallbacks"`
}

// MemoryConfig configures conversation persistence.
type MemoryConfig struct {
	// PostgresDSN is the connection string for the Postgres store. When
	// empty, conversations live in process memory only.
	PostgresDSN string `yaml:"postgres_dsn"`

	// EmbeddingDimensions is the dimensionality of stored record
	// embeddings. Must match the embeddings provider's output.
	// Defaults to 1536.
	EmbeddingDimensions int `yaml:"embedding_dimensions"`
}

// PipelineConfig tunes turn processing.
type PipelineConfig struct {
	// Model is the completion model requested for all stage calls.
	// Unrecognised names fall back to the default model.
	Model string `yaml:"model"`

	// MaxTokens caps each completion's length. Zero means provider default.
	MaxTokens int `yaml:"max_tokens"`

	// CallTimeoutSeconds bounds each individual completion call.
	// Zero means the built-in 60s default; negative disables the timeout.
	CallTimeoutSeconds int `yaml:"call_timeout_seconds"`

	// AnnotateReplies appends the measured emotional state and next
	// temperatures to every reply.
	AnnotateReplies bool `yaml:"annotate_replies"`

	// AssociativeRecall enriches the DayDream stage with semantically
	// similar prior exchanges. Requires an embeddings provider.
	AssociativeRecall bool `yaml:"associative_recall"`
}
