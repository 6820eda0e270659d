package websocket

// WebSocket消息类型常量
const (
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
	MessageTypeChat  = "chat"
	MessageTypeError = "error"

	// 默认配置值
	DefaultMaxConnections    = 1000
	DefaultHeartbeatInterval = 30
	DefaultConnectionTimeout = 60
	DefaultMessageBufferSize = 64
	DefaultReadBufferSize    = 1024
	DefaultWriteBufferSize   = 1024
	DefaultMaxMessageSize    = 4096

	// 环境变量配置键
	EnvWebSocketMaxConnections    = "WEBSOCKET_MAX_CONNECTIONS"
	EnvWebSocketHeartbeatInterval = "WEBSOCKET_HEARTBEAT_INTERVAL"
	EnvWebSocketConnectionTimeout = "WEBSOCKET_CONNECTION_TIMEOUT"
	EnvWebSocketMessageBufferSize = "WEBSOCKET_MESSAGE_BUFFER_SIZE"
	EnvWebSocketReadBufferSize    = "WEBSOCKET_READ_BUFFER_SIZE"
	EnvWebSocketWriteBufferSize   = "WEBSOCKET_WRITE_BUFFER_SIZE"
	EnvWebSocketMaxMessageSize    = "WEBSOCKET_MAX_MESSAGE_SIZE"

	// 错误消息
	ErrConnectionLimitExceeded = "connection limit exceeded"
	ErrInvalidMessageType      = "invalid message type"
	ErrInvalidMessageData      = "invalid message data"
)
