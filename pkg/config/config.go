package config

import (
	"log"
	"os"
	"time"

	"HealthPortal/pkg/cache"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/util"
)

// Config 进程级配置，全部来自环境变量
type Config struct {
	Addr          string `env:"ADDR"`
	Mode          string `env:"MODE"`
	APIPrefix     string `env:"API_PREFIX"`
	MetricsPath   string `env:"METRICS_PATH"`
	SessionSecret string `env:"SESSION_SECRET"`
	Log           logger.LogConfig
	Cache         cache.Config

	// 聊天助手
	ChatBackend  string        `env:"CHAT_BACKEND"` // endpoint | openai
	ChatEndpoint string        `env:"CHAT_ENDPOINT"`
	ChatTimeout  time.Duration `env:"CHAT_TIMEOUT"` // 0 表示不设超时
	LLMApiKey    string        `env:"LLM_API_KEY"`
	LLMBaseURL   string        `env:"LLM_BASE_URL"`
	LLMModel     string        `env:"LLM_MODEL"`
	LLMPrompt    string        `env:"LLM_SYSTEM_PROMPT"`

	RateLimit           string        `env:"RATE_LIMIT"`
	ReportAnalysisDelay time.Duration `env:"REPORT_ANALYSIS_DELAY"`
	SSEPingInterval     time.Duration `env:"SSE_PING_INTERVAL"`
	SpeechLocale        string        `env:"SPEECH_LOCALE"`

	// 提醒通知
	SMSSender      string `env:"SMS_SENDER"`
	WhatsAppNumber string `env:"WHATSAPP_NUMBER"`
	WhatsAppText   string `env:"WHATSAPP_TEXT"`

	// WhatsApp Cloud API，token 和 phone id 都设置时才启用
	WhatsAppAPIURL  string `env:"WHATSAPP_API_URL"`
	WhatsAppToken   string `env:"WHATSAPP_TOKEN"`
	WhatsAppPhoneID string `env:"WHATSAPP_PHONE_ID"`
}

func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg := &Config{
		Addr:          util.GetEnvDefault("ADDR", ":8080"),
		Mode:          util.GetEnvDefault("MODE", "release"),
		APIPrefix:     util.GetEnvDefault("API_PREFIX", "/api"),
		MetricsPath:   util.GetEnvDefault("METRICS_PATH", "/metrics"),
		SessionSecret: util.GetEnvDefault("SESSION_SECRET", "healthportal-dev-secret"),
		Log: logger.LogConfig{
			Level:      util.GetEnvDefault("LOG_LEVEL", "info"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnvDefault("LOG_MAX_SIZE", 100)),
			MaxAge:     int(util.GetIntEnvDefault("LOG_MAX_AGE", 7)),
			MaxBackups: int(util.GetIntEnvDefault("LOG_MAX_BACKUPS", 3)),
		},
		Cache: cache.Config{
			Type: util.GetEnvDefault("CACHE_TYPE", "gocache"),
			Redis: cache.RedisConfig{
				Addr:     util.GetEnvDefault("REDIS_ADDR", "localhost:6379"),
				Password: util.GetEnv("REDIS_PASSWORD"),
				DB:       int(util.GetIntEnv("REDIS_DB")),
				PoolSize: int(util.GetIntEnvDefault("REDIS_POOL_SIZE", 10)),
			},
			Local: cache.LocalConfig{
				DefaultExpiration: util.GetDurationEnv("LOCAL_CACHE_DEFAULT_EXPIRATION", 10*time.Minute),
				CleanupInterval:   util.GetDurationEnv("LOCAL_CACHE_CLEANUP_INTERVAL", 10*time.Minute),
			},
		},
		ChatBackend:         util.GetEnvDefault("CHAT_BACKEND", "endpoint"),
		ChatEndpoint:        util.GetEnvDefault("CHAT_ENDPOINT", "http://localhost:5000/chat"),
		ChatTimeout:         util.GetDurationEnv("CHAT_TIMEOUT", 0),
		LLMApiKey:           util.GetEnv("LLM_API_KEY"),
		LLMBaseURL:          util.GetEnv("LLM_BASE_URL"),
		LLMModel:            util.GetEnvDefault("LLM_MODEL", "gpt-4o-mini"),
		LLMPrompt:           util.GetEnvDefault("LLM_SYSTEM_PROMPT", "You are a friendly health assistant. Give general guidance only and recommend a doctor for anything serious."),
		RateLimit:           util.GetEnvDefault("RATE_LIMIT", "30-M"),
		ReportAnalysisDelay: util.GetDurationEnv("REPORT_ANALYSIS_DELAY", 3*time.Second),
		SSEPingInterval:     util.GetDurationEnv("SSE_PING_INTERVAL", 30*time.Second),
		SpeechLocale:        util.GetEnvDefault("SPEECH_LOCALE", "en-IN"),
		SMSSender:           util.GetEnvDefault("SMS_SENDER", "log"),
		WhatsAppNumber:      util.GetEnvDefault("WHATSAPP_NUMBER", "919876543210"),
		WhatsAppText:        util.GetEnvDefault("WHATSAPP_TEXT", "Hi, I need health assistance"),
		WhatsAppAPIURL:      util.GetEnvDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
		WhatsAppToken:       util.GetEnv("WHATSAPP_TOKEN"),
		WhatsAppPhoneID:     util.GetEnv("WHATSAPP_PHONE_ID"),
	}
	return cfg, nil
}
