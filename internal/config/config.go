package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Dialogue DialogueConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	DialogueLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ImageUploadDir     string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string
	VisionModel       string // multimodal model for image extraction
	OllamaBaseURL     string
	HuggingFaceAPIKey string

	EmbeddingProvider string // "jina" or "ollama"
	JinaAPIKey        string
	JinaModel         string
	OllamaEmbedModel  string
	EmbeddingDim      int
}

// DialogueConfig names every threshold of the conversation engine. The
// defaults are tuned for a 1024-dim shared text/image space.
type DialogueConfig struct {
	THigh             float64 // high-confidence score bound
	TMin              float64 // presentation floor
	AmbiguityBound    int     // high-confidence matches that force a question
	MaxClarifications int     // questions per session
	ImageWeight       float64
	TextWeight        float64
	TopK              int
}

type TopicConfig struct {
	ProductEmbed string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			DialogueLogPath:    getEnv("DIALOGUE_LOG_PATH", "logs/dialogue.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ImageUploadDir:     getEnv("IMAGE_UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "qwen2.5"),
			VisionModel:       getEnv("VISION_MODEL", "llava"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "jina"),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			JinaModel:         getEnv("JINA_MODEL", "jina-clip-v2"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 1024),
		},
		Dialogue: DialogueConfig{
			THigh:             getEnvAsFloat("DIALOGUE_T_HIGH", 0.7),
			TMin:              getEnvAsFloat("DIALOGUE_T_MIN", 0.6),
			AmbiguityBound:    getEnvAsInt("DIALOGUE_AMBIGUITY_BOUND", 8),
			MaxClarifications: getEnvAsInt("DIALOGUE_MAX_CLARIFICATIONS", 3),
			ImageWeight:       getEnvAsFloat("SEARCH_IMAGE_WEIGHT", 0.8),
			TextWeight:        getEnvAsFloat("SEARCH_TEXT_WEIGHT", 0.2),
			TopK:              getEnvAsInt("SEARCH_TOP_K", 20),
		},
		Topics: TopicConfig{
			ProductEmbed: getEnv("EMBED_PRODUCT_TOPIC_NAME", "EMBED_PRODUCT"),
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
