package logger

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig 日志配置
type LogConfig struct {
	Level      string `env:"LOG_LEVEL"`
	Filename   string `env:"LOG_FILENAME"`
	MaxSize    int    `env:"LOG_MAX_SIZE"`
	MaxAge     int    `env:"LOG_MAX_AGE"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS"`
}

// Lg 全局日志实例，Init 之前是 no-op
var (
	Lg   = zap.NewNop()
	skip = Lg
)

// Init 初始化日志，Filename 为空时只写 stdout
func Init(cfg LogConfig, mode string) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil || cfg.Level == "" {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if mode == "debug" || mode == "development" {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.Filename != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	Lg = zap.New(core, zap.AddCaller())
	skip = Lg.WithOptions(zap.AddCallerSkip(1))
	zap.ReplaceGlobals(Lg)
	return nil
}

func Debug(msg string, fields ...zap.Field) { skip.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { skip.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { skip.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { skip.Error(msg, fields...) }

// Sync 刷新缓冲
func Sync() {
	_ = Lg.Sync()
}
