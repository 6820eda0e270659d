package websocket

import (
	"fmt"
	"time"

	"HealthPortal/pkg/util"
)

// Config WebSocket配置
type Config struct {
	// 最大连接数
	MaxConnections int64
	// 心跳间隔
	HeartbeatInterval time.Duration
	// 读超时，收到 pong 后顺延
	ConnectionTimeout time.Duration
	// 发送缓冲区大小
	MessageBufferSize int
	ReadBufferSize    int
	WriteBufferSize   int
	// 最大消息大小
	MaxMessageSize int
}

func DefaultConfig() *Config {
	return &Config{
		MaxConnections:    DefaultMaxConnections,
		HeartbeatInterval: DefaultHeartbeatInterval * time.Second,
		ConnectionTimeout: DefaultConnectionTimeout * time.Second,
		MessageBufferSize: DefaultMessageBufferSize,
		ReadBufferSize:    DefaultReadBufferSize,
		WriteBufferSize:   DefaultWriteBufferSize,
		MaxMessageSize:    DefaultMaxMessageSize,
	}
}

// LoadConfigFromEnv 从环境变量加载WebSocket配置
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	if v := util.GetIntEnv(EnvWebSocketMaxConnections); v > 0 {
		config.MaxConnections = v
	}
	if v := util.GetIntEnv(EnvWebSocketHeartbeatInterval); v > 0 {
		config.HeartbeatInterval = time.Duration(v) * time.Second
	}
	if v := util.GetIntEnv(EnvWebSocketConnectionTimeout); v > 0 {
		config.ConnectionTimeout = time.Duration(v) * time.Second
	}
	if v := util.GetIntEnv(EnvWebSocketMessageBufferSize); v > 0 {
		config.MessageBufferSize = int(v)
	}
	if v := util.GetIntEnv(EnvWebSocketReadBufferSize); v > 0 {
		config.ReadBufferSize = int(v)
	}
	if v := util.GetIntEnv(EnvWebSocketWriteBufferSize); v > 0 {
		config.WriteBufferSize = int(v)
	}
	if v := util.GetIntEnv(EnvWebSocketMaxMessageSize); v > 0 {
		config.MaxMessageSize = int(v)
	}
	return config
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.MaxConnections <= 0 {
		return fmt.Errorf("max connections must be positive")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive")
	}
	if c.ConnectionTimeout <= c.HeartbeatInterval {
		return fmt.Errorf("connection timeout must exceed heartbeat interval")
	}
	if c.MessageBufferSize <= 0 || c.MaxMessageSize <= 0 {
		return fmt.Errorf("buffer sizes must be positive")
	}
	return nil
}
