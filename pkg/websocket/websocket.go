package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Message 定义WebSocket消息结构
type Message struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Data      interface{}     `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// TextHandler 处理一条入站聊天文本，ctx 随连接关闭而取消
type TextHandler func(ctx context.Context, text string) (interface{}, error)

// Connection 表示一个WebSocket连接
type Connection struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	ctx    context.Context
	cancel context.CancelFunc
	inbox  chan string
	once   sync.Once

	mu       sync.RWMutex
	LastPing time.Time
}

// Context 连接生命周期，断开即取消
func (c *Connection) Context() context.Context { return c.ctx }

// Hub 管理所有WebSocket连接
type Hub struct {
	connections     map[string]*Connection
	connectionCount int64
	config          *Config
	logger          *logrus.Logger
	mu              sync.RWMutex
	wg              sync.WaitGroup
}

func NewHub(cfg *Config, logger *logrus.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{connections: make(map[string]*Connection), config: cfg, logger: logger}
}

func (h *Hub) register(c *Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int64(len(h.connections)) >= h.config.MaxConnections {
		return false
	}
	h.connections[c.ID] = c
	atomic.StoreInt64(&h.connectionCount, int64(len(h.connections)))
	return true
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[c.ID]; ok {
		delete(h.connections, c.ID)
		atomic.StoreInt64(&h.connectionCount, int64(len(h.connections)))
	}
	h.mu.Unlock()
}

// GetConnectionCount 当前连接数
func (h *Hub) GetConnectionCount() int64 {
	return atomic.LoadInt64(&h.connectionCount)
}

// Broadcast 推送给所有连接，缓冲区满的连接跳过
func (h *Hub) Broadcast(msg Message) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorf("广播消息序列化失败: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		c.trySend(data)
	}
}

// Close 断开所有连接并等待协程退出
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		c.close()
	}
	h.wg.Wait()
}
