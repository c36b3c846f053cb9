package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Kb     KnowledgeBaseConfig
	Keys   APIKeys
	Ai     AIConfig
	Speech SpeechConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	VoiceLogFilePath   string
	CorsAllowedOrigins string
}

type KnowledgeBaseConfig struct {
	URL            string
	AcceptLanguage string
	CacheTTLMin    int
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	LLMModel      string // e.g. "gemini-1.5-flash", "llama3"
	OllamaBaseURL string
	AnswerTimeout int    // seconds, bound on one answer pipeline round trip
	AssistantMode string // "auto": direct answers allowed; "llm": always delegate
}

type SpeechConfig struct {
	Locale string
	Rate   float64
	Pitch  float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			VoiceLogFilePath:   getEnv("VOICE_LOG_FILE_PATH", "voice.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Kb: KnowledgeBaseConfig{
			URL:            getEnv("KB_API_URL", "https://www.thexnova.com/api/category-for-web"),
			AcceptLanguage: getEnv("KB_ACCEPT_LANGUAGE", "en"),
			CacheTTLMin:    getEnvAsInt("KB_CACHE_TTL_MINUTES", 5),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			AnswerTimeout: getEnvAsInt("ANSWER_TIMEOUT_SECONDS", 30),
			AssistantMode: getEnv("ASSISTANT_MODE", "auto"),
		},
		Speech: SpeechConfig{
			Locale: getEnv("SPEECH_LOCALE", "my-MM"),
			Rate:   getEnvAsFloat("SPEECH_RATE", 0.95),
			Pitch:  getEnvAsFloat("SPEECH_PITCH", 1.0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
