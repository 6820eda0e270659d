package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Event 面板状态变更事件，Topic 对应面板名
type Event struct {
	ID    uint64      `json:"id"`
	Topic string      `json:"topic"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data,omitempty"`
}

// Publisher is what panel controllers depend on.
type Publisher interface {
	Publish(topic, name string, data interface{})
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(string, string, interface{}) {}

type client struct {
	id     string
	topics map[string]bool // 空表示订阅全部
	ch     chan Event
	done   chan struct{}
}

func (c *client) wants(topic string) bool {
	return len(c.topics) == 0 || c.topics[topic]
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	seq      uint64
	history  []Event // 最近事件，用于 Last-Event-ID 重放
	maxHist  int
	interval time.Duration
	retryMs  int
}

func NewHub(interval time.Duration) *Hub {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Hub{clients: make(map[string]*client), maxHist: 128, interval: interval, retryMs: 5000}
}

func newClient(id string, topics []string) *client {
	c := &client{id: id, topics: make(map[string]bool), ch: make(chan Event, 64), done: make(chan struct{})}
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			c.topics[t] = true
		}
	}
	return c
}

func (h *Hub) addClient(id string, topics []string) *client {
	c := newClient(id, topics)
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	return c
}

// subscribe 登记与历史快照在同一把锁内完成，
// 之后发布的事件只进 channel，之前的只在返回的重放列表里
func (h *Hub) subscribe(id string, topics []string, last uint64) (*client, []Event) {
	c := newClient(id, topics)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = c
	return c, h.historyAfter(last, c)
}

func (h *Hub) removeClient(id string) {
	h.mu.Lock()
	if c, ok := h.clients[id]; ok {
		close(c.done)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

// Close 断开所有订阅者，用于优雅退出
func (h *Hub) Close() {
	h.mu.Lock()
	for id, c := range h.clients {
		close(c.done)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish fans the event out without blocking; slow clients drop events.
func (h *Hub) Publish(topic, name string, data interface{}) {
	h.mu.Lock()
	h.seq++
	ev := Event{ID: h.seq, Topic: topic, Name: name, Data: data}
	h.history = append(h.history, ev)
	if len(h.history) > h.maxHist {
		h.history = h.history[len(h.history)-h.maxHist:]
	}
	for _, c := range h.clients {
		if !c.wants(topic) {
			continue
		}
		select {
		case c.ch <- ev:
		default:
			logger.Debug("sse client lagging, event dropped", zap.String("client", c.id), zap.Uint64("event", ev.ID))
		}
	}
	h.mu.Unlock()
}

// since returns buffered events after id that the client subscribes to
func (h *Hub) since(id uint64, c *client) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.historyAfter(id, c)
}

// historyAfter 调用方持有 h.mu
func (h *Hub) historyAfter(id uint64, c *client) []Event {
	var out []Event
	for _, ev := range h.history {
		if ev.ID > id && c.wants(ev.Topic) {
			out = append(out, ev)
		}
	}
	return out
}

func writeEvent(w gin.ResponseWriter, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", ev.ID, ev.Topic, b)
	return err
}

// Serve streams events until the request context ends.
// ?topics=alerts,forum narrows the subscription.
func (h *Hub) Serve(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	fmt.Fprintf(c.Writer, "retry: %d\n\n", h.retryMs)

	var topics []string
	if q := c.Query("topics"); q != "" {
		topics = strings.Split(q, ",")
	}
	var (
		cl     *client
		replay []Event
	)
	if last, err := strconv.ParseUint(c.GetHeader("Last-Event-ID"), 10, 64); err == nil {
		cl, replay = h.subscribe(util.NewID(), topics, last)
	} else {
		cl = h.addClient(util.NewID(), topics)
	}
	defer h.removeClient(cl.id)

	for _, ev := range replay {
		_ = writeEvent(c.Writer, ev)
	}
	flusher.Flush()

	ping := time.NewTicker(h.interval)
	defer ping.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			fmt.Fprintf(c.Writer, "event: ping\ndata: {}\n\n")
			flusher.Flush()
		case ev := <-cl.ch:
			if err := writeEvent(c.Writer, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
