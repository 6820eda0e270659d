package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"HealthPortal/pkg/util"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// newUpgrader 根据配置创建WebSocket升级器
func newUpgrader(cfg *Config) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// HandleWebSocket 升级连接并阻塞到连接结束；每条 chat 文本按顺序交给 handle
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, handle TextHandler) {
	upgrader := newUpgrader(hub.config)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Errorf("WebSocket升级失败: %v", err)
		return
	}

	// 连接上下文不继承请求上下文：升级后请求 ctx 的取消时机由 net/http 决定
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		ID:       util.NewID(),
		Conn:     conn,
		Send:     make(chan []byte, hub.config.MessageBufferSize),
		Hub:      hub,
		ctx:      ctx,
		cancel:   cancel,
		inbox:    make(chan string, 8),
		LastPing: time.Now(),
	}

	if !hub.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ErrConnectionLimitExceeded),
			time.Now().Add(writeWait))
		_ = conn.Close()
		cancel()
		return
	}

	hub.wg.Add(3)
	go func() { defer hub.wg.Done(); c.writePump() }()
	go func() { defer hub.wg.Done(); c.dispatch(handle) }()
	func() { defer hub.wg.Done(); c.readPump() }()
}

func (c *Connection) close() {
	c.once.Do(func() {
		c.cancel()
		c.Hub.unregister(c)
		_ = c.Conn.Close()
	})
}

func (c *Connection) trySend(data []byte) {
	select {
	case <-c.ctx.Done():
	case c.Send <- data:
	default:
		c.Hub.logger.Warnf("连接 %s 发送缓冲区已满，丢弃消息", c.ID)
	}
}

func (c *Connection) reply(msg Message) {
	msg.Timestamp = time.Now().Unix()
	data, err := json.Marshal(msg)
	if err != nil {
		c.Hub.logger.Errorf("消息序列化失败: %v", err)
		return
	}
	c.trySend(data)
}

// readPump 读取消息的协程
func (c *Connection) readPump() {
	defer c.close()

	cfg := c.Hub.config
	c.Conn.SetReadLimit(int64(cfg.MaxMessageSize))
	_ = c.Conn.SetReadDeadline(time.Now().Add(cfg.ConnectionTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.mu.Lock()
		c.LastPing = time.Now()
		c.mu.Unlock()
		return c.Conn.SetReadDeadline(time.Now().Add(cfg.ConnectionTimeout))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Errorf("WebSocket读取错误: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(Message{Type: MessageTypeError, Text: ErrInvalidMessageData})
			continue
		}
		switch msg.Type {
		case MessageTypePing:
			c.reply(Message{Type: MessageTypePong})
		case MessageTypeChat:
			select {
			case c.inbox <- msg.Text:
			case <-c.ctx.Done():
				return
			}
		default:
			c.reply(Message{Type: MessageTypeError, Text: ErrInvalidMessageType})
		}
	}
}

// dispatch 串行处理聊天文本，连接关闭后丢弃未完成的结果
func (c *Connection) dispatch(handle TextHandler) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case text := <-c.inbox:
			data, err := handle(c.ctx, text)
			if c.ctx.Err() != nil {
				return
			}
			if err != nil {
				c.reply(Message{Type: MessageTypeError, Text: err.Error()})
				continue
			}
			c.reply(Message{Type: MessageTypeChat, Data: data})
		}
	}
}

// writePump 发送消息的协程
func (c *Connection) writePump() {
	interval := c.Hub.config.HeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case message := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
