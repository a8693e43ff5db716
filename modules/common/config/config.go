package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"

	DefaultGeminiModel     = "gemini-2.0-flash-exp"
	DefaultMaxRequestBytes = 20 << 20
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Port            string
	MaxRequestBytes int64

	// Gemini API
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBackend  string
	GeminiBaseURL  string
	GeminiProject  string
	GeminiLocation string

	// Vertex AI 인증 (GeminiBackend == "vertex")
	VertexCredentialsJSON string
	VertexCredentialsPath string

	// Redis (비어있으면 통계 비활성화)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (비어있으면 아카이브 비활성화)
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string
	ArchiveBucket          string
	ArchiveWebPQuality     float32
}

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	cfg := FromEnv()

	// 필수 환경변수 검증
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: %s (backend: %s)", cfg.GeminiModel, cfg.GeminiBackend)
	if cfg.StatsEnabled() {
		log.Printf("   Redis: %s (TLS: %v)", cfg.GetRedisAddr(), cfg.RedisUseTLS)
	} else {
		log.Println("   Redis: disabled")
	}
	if cfg.ArchiveEnabled() {
		log.Printf("   Supabase: %s (bucket: %s)", cfg.SupabaseURL, cfg.ArchiveBucket)
	} else {
		log.Println("   Supabase: disabled")
	}

	return cfg, nil
}

// FromEnv - .env 로드 없이 현재 환경변수만으로 Config 생성
func FromEnv() *Config {
	return &Config{
		// Server
		Port:            getEnv("PORT", "8080"),
		MaxRequestBytes: getEnvInt64("MAX_REQUEST_BYTES", DefaultMaxRequestBytes),

		// Gemini API
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiBackend:  strings.ToLower(getEnv("GEMINI_BACKEND", BackendGemini)),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", ""),
		GeminiProject:  getEnv("GEMINI_PROJECT", ""),
		GeminiLocation: getEnv("GEMINI_LOCATION", "us-central1"),

		VertexCredentialsJSON: getEnv("VERTEXAI_CREDENTIALS_JSON", ""),
		VertexCredentialsPath: getEnv("VERTEXAI_CREDENTIALS_PATH", ""),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   getEnvBool("REDIS_USE_TLS", false),

		// Supabase
		SupabaseURL:            strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),
		ArchiveBucket:          getEnv("ARCHIVE_BUCKET", "attachments"),
		ArchiveWebPQuality:     getEnvFloat32("ARCHIVE_WEBP_QUALITY", 90),
	}
}

// Validate - 필수 환경변수 검증
func (c *Config) Validate() error {
	switch c.GeminiBackend {
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case BackendVertex:
		if c.GeminiProject == "" {
			return fmt.Errorf("GEMINI_PROJECT is required for the vertex backend")
		}
	default:
		return fmt.Errorf("unknown GEMINI_BACKEND: %s", c.GeminiBackend)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive")
	}
	if c.ArchiveWebPQuality <= 0 || c.ArchiveWebPQuality > 100 {
		return fmt.Errorf("ARCHIVE_WEBP_QUALITY must be in (0, 100]")
	}
	return nil
}

// StatsEnabled - Redis 통계 사용 여부
func (c *Config) StatsEnabled() bool {
	return c.RedisHost != ""
}

// ArchiveEnabled - Supabase 아카이브 사용 여부
func (c *Config) ArchiveEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if s := os.Getenv(key); s != "" {
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed
		}
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, s, defaultValue)
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if s := os.Getenv(key); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			return parsed
		}
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, s, defaultValue)
	}
	return defaultValue
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	if s := os.Getenv(key); s != "" {
		if parsed, err := strconv.ParseFloat(s, 32); err == nil {
			return float32(parsed)
		}
		log.Printf("⚠️  Invalid %s=%q, using default %.1f", key, s, defaultValue)
	}
	return defaultValue
}
