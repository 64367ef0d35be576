package config

import (
	"fmt"
	"time"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Render        RenderConfig        `yaml:"render"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Server        ServerConfig        `yaml:"server"`

	// Secrets are never read from the YAML file, only from the environment.
	Secrets Secrets `yaml:"-"`
}

// Transcription backends
const (
	BackendOpenAI  = "openai"
	BackendGemini  = "gemini"
	BackendWhisper = "whisper"
)

// Summarizer providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Policies applied when a window fails to transcribe
const (
	OnErrorHalt = "halt"
	OnErrorSkip = "skip"
)

type TranscriptionConfig struct {
	Backend       string        `yaml:"backend"`
	WindowSeconds int           `yaml:"window_seconds"`
	Concurrency   int           `yaml:"concurrency"`
	OnError       string        `yaml:"on_error"`
	Language      string        `yaml:"language"`
	Model         string        `yaml:"model"`
	BaseURL       string        `yaml:"base_url"`
	APIKeyEnv     string        `yaml:"api_key_env"`
	Whisper       WhisperConfig `yaml:"whisper"`
}

// Window returns the configured window size
func (c TranscriptionConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type SummarizerConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type RenderConfig struct {
	WkhtmltopdfPath string `yaml:"wkhtmltopdf_path"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	// JobTimeout bounds one upload's pipeline run, e.g. "30m"
	JobTimeout time.Duration `yaml:"job_timeout"`
}

// Secrets holds the API credentials resolved from the environment
type Secrets struct {
	GeminiAPIKeys       []string
	TranscriptionAPIKey string
	SummarizerAPIKey    string
}

func (c *Config) Validate() error {
	switch c.Transcription.Backend {
	case "":
		c.Transcription.Backend = BackendOpenAI
	case BackendOpenAI, BackendGemini, BackendWhisper:
	default:
		return fmt.Errorf("transcription.backend %q is not one of openai, gemini, whisper", c.Transcription.Backend)
	}
	if c.Transcription.WindowSeconds < 0 {
		return fmt.Errorf("transcription.window_seconds must be positive")
	}
	if c.Transcription.Concurrency < 0 {
		return fmt.Errorf("transcription.concurrency must not be negative")
	}
	switch c.Transcription.OnError {
	case "":
		c.Transcription.OnError = OnErrorHalt
	case OnErrorHalt, OnErrorSkip:
	default:
		return fmt.Errorf("transcription.on_error %q is not one of halt, skip", c.Transcription.OnError)
	}
	if c.Transcription.Backend == BackendWhisper && c.Transcription.Whisper.ModelPath == "" {
		return fmt.Errorf("transcription.whisper.model_path is required for the whisper backend")
	}

	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = ProviderGemini
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("summarizer.provider %q is not one of gemini, openai", c.Summarizer.Provider)
	}

	if c.Transcription.WindowSeconds == 0 {
		c.Transcription.WindowSeconds = 60
	}
	if c.Transcription.Concurrency == 0 {
		c.Transcription.Concurrency = 1
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultTranscriptionModel(c.Transcription.Backend)
	}
	if c.Transcription.APIKeyEnv == "" && c.Transcription.Backend == BackendOpenAI {
		c.Transcription.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Transcription.Whisper.BinaryPath == "" {
		c.Transcription.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Transcription.Whisper.Threads == 0 {
		c.Transcription.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = defaultSummarizerModel(c.Summarizer.Provider)
	}
	if c.Summarizer.APIKeyEnv == "" && c.Summarizer.Provider == ProviderOpenAI {
		c.Summarizer.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Render.WkhtmltopdfPath == "" {
		c.Render.WkhtmltopdfPath = "wkhtmltopdf"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 512
	}
	if c.Server.JobTimeout <= 0 {
		c.Server.JobTimeout = 30 * time.Minute
	}

	return nil
}

func defaultTranscriptionModel(backend string) string {
	switch backend {
	case BackendGemini:
		return "gemini-2.5-flash"
	case BackendWhisper:
		return ""
	default:
		return "whisper-1"
	}
}

func defaultSummarizerModel(provider string) string {
	if provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.5-flash"
}
