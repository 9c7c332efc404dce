// Command pilotassistant runs the Maritime Pilot Report assistant API:
// conversational form filling over HTTP plus the WebSocket voice channel.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/api"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/genai"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/util"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/voice"
)

// DefaultAPIAddr is the default listen address for the API server.
const DefaultAPIAddr = ":8000"

func main() {
	// Load environment configuration before the logger so DEBUG applies
	config := loadEnvironmentConfig()

	initializeLogger(config.Debug)

	flags := parseCommandLineFlags(config)

	registry, err := buildRegistry(flags)
	if err != nil {
		slog.Error("Failed to configure model backends", "error", err)
		os.Exit(1)
	}

	voiceCap := buildVoiceCapability(flags)

	slog.Info("Bootstrapping pilot assistant", "api_addr", *flags.apiAddr, "voice_enabled", voiceCap != nil)
	if err := api.Run(api.Opts{Addr: *flags.apiAddr}, registry, voiceCap); err != nil {
		slog.Error("Pilot assistant failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Pilot assistant exited successfully")
}

// Config holds environment configuration
type Config struct {
	OpenAIKey string
	GeminiKey string
	APIAddr   string
	Debug     bool
}

// Flags holds command line flag values
type Flags struct {
	openaiKey *string
	geminiKey *string
	apiAddr   *string
	noVoice   *bool
}

// initializeLogger sets up structured logging
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	return Config{
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
		APIAddr:   util.EnvOrDefault("API_ADDR", DefaultAPIAddr),
		Debug:     util.ParseBoolEnv("DEBUG", false),
	}
}

// parseCommandLineFlags parses command line flags with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides OPENAI_API_KEY)"),
		geminiKey: flag.String("gemini-api-key", config.GeminiKey, "Gemini API key (overrides GEMINI_API_KEY)"),
		apiAddr:   flag.String("addr", config.APIAddr, "API server listen address"),
		noVoice:   flag.Bool("no-voice", false, "disable the WebSocket voice channel"),
	}
	flag.Parse()
	return flags
}

// buildRegistry configures the provider adapters that have credentials.
// At least one backend must be configured.
func buildRegistry(flags Flags) (*genai.Registry, error) {
	var openAI, gemini genai.ClientInterface

	if *flags.openaiKey != "" {
		client, err := genai.NewOpenAIClient(genai.WithAPIKey(*flags.openaiKey))
		if err != nil {
			return nil, err
		}
		openAI = client
		slog.Info("OpenAI backend configured")
	}

	if *flags.geminiKey != "" {
		client, err := genai.NewGeminiClient(genai.WithGeminiAPIKey(*flags.geminiKey))
		if err != nil {
			return nil, err
		}
		gemini = client
		slog.Info("Gemini backend configured")
	}

	if openAI == nil && gemini == nil {
		slog.Warn("No model backend credentials found; chat endpoints will report unavailable")
	}
	return genai.NewRegistry(openAI, gemini), nil
}

// buildVoiceCapability wires the speech pipeline. Voice requires the OpenAI
// key for transcription and synthesis.
func buildVoiceCapability(flags Flags) *voice.Capability {
	if *flags.noVoice {
		slog.Info("Voice channel disabled by flag")
		return nil
	}
	if *flags.openaiKey == "" {
		slog.Warn("Voice channel disabled: no OpenAI API key for speech services")
		return nil
	}

	sttConfig := voice.DefaultWhisperConfig()
	sttConfig.APIKey = *flags.openaiKey
	ttsConfig := voice.DefaultSpeechConfig()
	ttsConfig.APIKey = *flags.openaiKey

	return voice.NewCapability(
		voice.NewWhisperProvider(sttConfig),
		voice.NewSpeechProvider(ttsConfig),
		nil,
		func() { slog.Info("Voice capability released by last connection") },
	)
}
