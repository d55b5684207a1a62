package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcription backends
const (
	BackendAssemblyAI = "assemblyai"
	BackendOpenAI     = "openai"
	BackendLocal      = "local"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Cache         CacheConfig
	Storage       StorageConfig
	Fetcher       FetcherConfig
	Transcription TranscriptionConfig
	Embedding     EmbeddingConfig
	LLM           LLMConfig
	Pipeline      PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled        bool
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int
	MinConns       int
	AutoMigrate    bool
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

// CacheConfig holds embedding cache configuration
type CacheConfig struct {
	Prefix string
	TTL    time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
	PresignExpiry   time.Duration
}

// FetcherConfig holds the audio downloader configuration
type FetcherConfig struct {
	Binary    string
	OutputDir string
	Format    string
}

// TranscriptionConfig holds speech-to-text configuration
type TranscriptionConfig struct {
	Backend  string // "assemblyai", "openai" or "local"
	Language string

	AssemblyAIKey string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	WhisperBinary string
	WhisperModel  string
}

// EmbeddingConfig holds embedding model configuration
type EmbeddingConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
}

// LLMConfig holds chat model configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// PipelineConfig holds per-run pipeline knobs, read with the PIPELINE_ prefix
type PipelineConfig struct {
	Window       time.Duration `envconfig:"WINDOW" default:"30s"`
	GroupingMode string        `split_words:"true" default:"gap"`
	StageTimeout time.Duration `split_words:"true" default:"15m"`
	TopK         int           `split_words:"true" default:"4"`
	KeepAudio    bool          `split_words:"true" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Enabled:        getEnvAsBool("DB_ENABLED", false),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "video_chat"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate:    getEnvAsBool("DB_AUTO_MIGRATE", true),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", "30s"),
		},
		Redis: RedisConfig{
			Enabled:        getEnvAsBool("REDIS_ENABLED", false),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			ConnectTimeout: getEnvAsDuration("REDIS_CONNECT_TIMEOUT", "15s"),
		},
		Cache: CacheConfig{
			Prefix: getEnv("CACHE_PREFIX", "video-chat:emb:"),
			TTL:    getEnvAsDuration("CACHE_TTL", "168h"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "video-chat"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			PresignExpiry:   getEnvAsDuration("STORAGE_PRESIGN_EXPIRY", "1h"),
		},
		Fetcher: FetcherConfig{
			Binary:    getEnv("YTDLP_BINARY", "yt-dlp"),
			OutputDir: getEnv("AUDIO_OUTPUT_DIR", os.TempDir()),
			Format:    getEnv("YTDLP_FORMAT", "bestaudio[ext=webm][abr<=160]/bestaudio"),
		},
		Transcription: TranscriptionConfig{
			Backend:       strings.ToLower(getEnv("TRANSCRIBE_BACKEND", BackendOpenAI)),
			Language:      getEnv("TRANSCRIBE_LANGUAGE", ""),
			AssemblyAIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("WHISPER_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:   getEnv("WHISPER_MODEL", "whisper-1"),
			WhisperBinary: getEnv("WHISPER_BINARY", "whisper"),
			WhisperModel:  getEnv("WHISPER_LOCAL_MODEL", "base"),
		},
		Embedding: EmbeddingConfig{
			APIKey:    getEnv("EMBEDDING_API_KEY", getEnv("OPENAI_API_KEY", "")),
			BaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
			Model:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			BatchSize: getEnvAsInt("EMBEDDING_BATCH_SIZE", 64),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("LLM_API_KEY", getEnv("GROQ_API_KEY", "")),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.5),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 512),
		},
	}

	if err := envconfig.Process("PIPELINE", &config.Pipeline); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Transcription.Backend {
	case BackendAssemblyAI:
		if c.Transcription.AssemblyAIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required for the assemblyai backend")
		}
	case BackendOpenAI:
		if c.Transcription.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
		}
	case BackendLocal:
	default:
		return fmt.Errorf("unknown TRANSCRIBE_BACKEND %q", c.Transcription.Backend)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("EMBEDDING_API_KEY is required")
	}
	if c.Pipeline.TopK <= 0 {
		return fmt.Errorf("PIPELINE_TOP_K must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
