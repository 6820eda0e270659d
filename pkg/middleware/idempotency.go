package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"time"

	"HealthPortal/pkg/cache"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IdempotencyConfig struct {
	HeaderName string        // Idempotency-Key 的请求头名
	TTL        time.Duration // 重复请求的拒绝窗口
	Prefix     string        // 缓存键前缀
	// HashBody 没有请求头时以 method+path+body 的哈希为键
	HashBody bool
}

// IdempotencyMiddleware rejects a repeated key with 409 while it is cached.
func IdempotencyMiddleware(store cache.Cache, cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "Idempotency-Key"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "idem:"
	}
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(cfg.HeaderName))
		if key == "" && cfg.HashBody {
			b, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(b))
			h := sha256.New()
			h.Write([]byte(c.Request.Method + " " + c.Request.URL.Path + "\n"))
			h.Write(b)
			key = hex.EncodeToString(h.Sum(nil))
		}
		if key == "" {
			c.Next()
			return
		}

		ok, err := store.Add(c, cfg.Prefix+key, time.Now().Unix(), cfg.TTL)
		if err != nil {
			// 缓存不可用时不阻塞业务
			logger.Warn("idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.Error(c, errors.WithCode(errors.CodeConflict, "duplicate request").WithContext("key", key))
			return
		}
		c.Next()

		// 业务失败时释放键，修正后可用同一个键重试
		if c.Writer.Status() >= 400 {
			if err := store.Delete(c, cfg.Prefix+key); err != nil {
				logger.Warn("idempotency key release failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
