package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type TelemetryConfig struct {
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
	PrometheusBind string `yaml:"prometheus_bind"`
}

type AudioConfig struct {
	StagingDir string `yaml:"staging_dir"`
	KeepStaged bool   `yaml:"keep_staged"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type STTConfig struct {
	Mode      string `yaml:"mode"` // mock, exec, whisper
	Command   string `yaml:"command"`
	ModelPath string `yaml:"model_path"`
	Language  string `yaml:"language"`
}

type ProfileConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

type LLMConfig struct {
	Mode        string  `yaml:"mode"` // mock, openai, ollama, exec
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Endpoint    string  `yaml:"endpoint"`
	Command     string  `yaml:"command"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type Config struct {
	ServiceName string          `yaml:"service_name"`
	Environment string          `yaml:"environment"`
	HTTP        HTTPConfig      `yaml:"http"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Audio       AudioConfig     `yaml:"audio"`
	STT         STTConfig       `yaml:"stt"`
	Profile     ProfileConfig   `yaml:"profile"`
	LLM         LLMConfig       `yaml:"llm"`
}

func Default() Config {
	return Config{
		ServiceName: "mealplan-service",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 5001,
		},
		Telemetry: TelemetryConfig{
			LogLevel:       "info",
			OTLPEndpoint:   "",
			OTLPInsecure:   true,
			PrometheusBind: ":9091",
		},
		Audio: AudioConfig{
			StagingDir: "./audio_cache",
			KeepStaged: false,
			SampleRate: 16000,
			Channels:   1,
		},
		STT: STTConfig{
			Mode:     "mock",
			Language: "en",
		},
		Profile: ProfileConfig{
			BaseURL:   "http://localhost:8080",
			TimeoutMS: 5000,
		},
		LLM: LLMConfig{
			Mode:        "mock",
			Model:       "gpt-4o-mini",
			Endpoint:    "http://localhost:11434",
			MaxTokens:   2048,
			Temperature: 0.7,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.ServiceName, "VOICEPLATE_SERVICE_NAME")
	overrideString(&cfg.Environment, "VOICEPLATE_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "VOICEPLATE_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "VOICEPLATE_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "VOICEPLATE_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "VOICEPLATE_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "VOICEPLATE_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telemetry.PrometheusBind, "VOICEPLATE_TELEMETRY_PROMETHEUS_BIND")
	overrideString(&cfg.Audio.StagingDir, "VOICEPLATE_AUDIO_STAGING_DIR")
	overrideBool(&cfg.Audio.KeepStaged, "VOICEPLATE_AUDIO_KEEP_STAGED")
	overrideInt(&cfg.Audio.SampleRate, "VOICEPLATE_AUDIO_SAMPLE_RATE")
	overrideInt(&cfg.Audio.Channels, "VOICEPLATE_AUDIO_CHANNELS")
	overrideString(&cfg.STT.Mode, "VOICEPLATE_STT_MODE")
	overrideString(&cfg.STT.Command, "VOICEPLATE_STT_COMMAND")
	overrideString(&cfg.STT.ModelPath, "VOICEPLATE_STT_MODEL_PATH")
	overrideString(&cfg.STT.Language, "VOICEPLATE_STT_LANGUAGE")
	overrideString(&cfg.Profile.BaseURL, "VOICEPLATE_PROFILE_BASE_URL")
	overrideInt(&cfg.Profile.TimeoutMS, "VOICEPLATE_PROFILE_TIMEOUT_MS")
	overrideString(&cfg.LLM.Mode, "VOICEPLATE_LLM_MODE")
	overrideString(&cfg.LLM.APIKey, "VOICEPLATE_LLM_API_KEY")
	overrideString(&cfg.LLM.Model, "VOICEPLATE_LLM_MODEL")
	overrideString(&cfg.LLM.Endpoint, "VOICEPLATE_LLM_ENDPOINT")
	overrideString(&cfg.LLM.Command, "VOICEPLATE_LLM_COMMAND")
	overrideInt(&cfg.LLM.MaxTokens, "VOICEPLATE_LLM_MAX_TOKENS")
	overrideFloat(&cfg.LLM.Temperature, "VOICEPLATE_LLM_TEMPERATURE")

	// Conventional fallback so a plain OPENAI_API_KEY works out of the box.
	if cfg.LLM.APIKey == "" {
		overrideString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	}
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.ServiceName == "" {
		return errors.New("service_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Telemetry.PrometheusBind == "" {
		return errors.New("telemetry.prometheus_bind must not be empty")
	}
	if cfg.Audio.StagingDir == "" {
		return errors.New("audio.staging_dir must not be empty")
	}
	if cfg.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if cfg.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	switch cfg.STT.Mode {
	case "mock", "exec", "whisper":
	default:
		return errors.New("stt.mode must be one of mock|exec|whisper")
	}
	if cfg.STT.Mode == "exec" && cfg.STT.Command == "" {
		return errors.New("stt.command must be set when mode=exec")
	}
	if cfg.STT.Mode == "whisper" && cfg.STT.ModelPath == "" {
		return errors.New("stt.model_path must be set when mode=whisper")
	}
	if cfg.Profile.BaseURL == "" {
		return errors.New("profile.base_url must not be empty")
	}
	if cfg.Profile.TimeoutMS <= 0 {
		return errors.New("profile.timeout_ms must be positive")
	}
	switch cfg.LLM.Mode {
	case "mock", "openai", "ollama", "exec":
	default:
		return errors.New("llm.mode must be one of mock|openai|ollama|exec")
	}
	if cfg.LLM.Mode == "openai" && cfg.LLM.Model == "" {
		return errors.New("llm.model must be set when mode=openai")
	}
	if cfg.LLM.Mode == "ollama" && cfg.LLM.Endpoint == "" {
		return errors.New("llm.endpoint must be set when mode=ollama")
	}
	if cfg.LLM.Mode == "exec" && cfg.LLM.Command == "" {
		return errors.New("llm.command must be set when mode=exec")
	}
	if cfg.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must be >= 0")
	}
	return nil
}
