package config

import (
	"fmt"
	"os"
	"strings"
)

// Text-generation providers supported by the insight generator.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Diarize     DiarizeConfig     `yaml:"diarize"`
	LLM         LLMConfig         `yaml:"llm"`
	Index       IndexConfig       `yaml:"index"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type FFmpegConfig struct {
	// BinaryPath overrides binary discovery when set.
	BinaryPath string `yaml:"binary_path"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type DiarizeConfig struct {
	// ScriptPath points at the pyannote helper script. Empty disables
	// diarization and the attributor falls back to a single speaker.
	ScriptPath string `yaml:"script_path"`
	Python     string `yaml:"python"`
	AuthToken  string `yaml:"auth_token"`
}

type LLMConfig struct {
	Provider      string   `yaml:"provider"`
	GeminiModel   string   `yaml:"gemini_model"`
	GeminiAPIKeys []string `yaml:"gemini_api_keys"`
	GroqModel     string   `yaml:"groq_model"`
	GroqAPIKey    string   `yaml:"groq_api_key"`
}

type IndexConfig struct {
	Path       string `yaml:"path"`
	EmbedModel string `yaml:"embed_model"`
	TopK       int    `yaml:"top_k"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.LLM.Provider != ProviderGroq && c.LLM.Provider != ProviderGemini {
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderGroq, ProviderGemini, c.LLM.Provider)
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Diarize.Python == "" {
		c.Diarize.Python = "python3"
	}
	if c.LLM.GeminiModel == "" {
		c.LLM.GeminiModel = "gemini-2.5-flash"
	}
	if c.LLM.GroqModel == "" {
		c.LLM.GroqModel = "llama-3.3-70b-versatile"
	}
	if c.Index.Path == "" {
		c.Index.Path = "data/index.db"
	}
	if c.Index.EmbedModel == "" {
		c.Index.EmbedModel = "gemini-embedding-001"
	}
	if c.Index.TopK == 0 {
		c.Index.TopK = 5
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
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
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

// applyEnv overlays secrets from the environment over file values.
// Environment wins so credentials never have to live in config.yaml.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.LLM.GeminiAPIKeys = nil
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				c.LLM.GeminiAPIKeys = append(c.LLM.GeminiAPIKeys, key)
			}
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.LLM.GroqAPIKey = v
	}
	if v := os.Getenv("HF_TOKEN"); v != "" {
		c.Diarize.AuthToken = v
	}
}
