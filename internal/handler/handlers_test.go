package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthPortal/internal/panel"
	"HealthPortal/pkg/cache"
	"HealthPortal/pkg/config"
	"HealthPortal/pkg/llm"
	"HealthPortal/pkg/metrics"
	"HealthPortal/pkg/speech"
	"HealthPortal/pkg/sse"
	"HealthPortal/pkg/websocket"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() *config.Config {
	return &config.Config{
		APIPrefix:      "/api",
		MetricsPath:    "/metrics",
		SessionSecret:  "test-secret",
		RateLimit:      "1000-M",
		WhatsAppNumber: "919876543210",
		WhatsAppText:   "Hi, I need health assistance",
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *panel.Portal) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.NewMetrics()
	events := sse.NewHub(time.Hour)
	portal := panel.New(panel.Config{
		Assistant: llm.AssistantFunc(func(_ context.Context, text string) (string, error) {
			return "echo: " + text, nil
		}),
		ReportAnalysisDelay: time.Hour,
		Location:            time.UTC,
		Publisher:           events,
		Observer:            m,
	})
	require.NoError(t, portal.Start(context.Background()))

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	ws := websocket.NewHub(websocket.DefaultConfig(), quiet)
	store := cache.NewGoCache(cache.LocalConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute})
	opts, err := speech.NewOptions("")
	require.NoError(t, err)

	t.Cleanup(func() {
		ws.Close()
		events.Close()
		_ = store.Close()
		_ = portal.Close()
	})

	h := NewHandlers(Deps{
		Config:  testConfig(),
		Portal:  portal,
		Events:  events,
		Metrics: m,
		Cache:   store,
		Chat:    ws,
		Speech:  opts,
	})
	r := gin.New()
	h.Register(r)
	return r, portal
}

func doJSON(r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestNavigationSession(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/navigation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nav struct {
		View string `json:"view"`
		Menu []struct {
			ID string `json:"id"`
		} `json:"menu"`
	}
	decode(t, w, &nav)
	assert.Equal(t, "dashboard", nav.View)
	assert.NotEmpty(t, nav.Menu)

	w = doJSON(r, http.MethodPut, "/api/navigation", map[string]string{"view": "forum"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)

	w = doJSON(r, http.MethodGet, "/api/navigation", nil, "Cookie", strings.Split(cookie, ";")[0])
	decode(t, w, &nav)
	assert.Equal(t, "forum", nav.View)

	// 未知视图回到 dashboard
	w = doJSON(r, http.MethodPut, "/api/navigation", map[string]string{"view": "admin"})
	decode(t, w, &nav)
	assert.Equal(t, "dashboard", nav.View)
}

func TestAlertRoutes(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPut, "/api/alerts/1/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/alerts", nil)
	var body struct {
		Stats struct {
			Unread int `json:"unread"`
		} `json:"stats"`
	}
	decode(t, w, &body)
	assert.Equal(t, 1, body.Stats.Unread)

	w = doJSON(r, http.MethodPut, "/api/alerts/nope/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReminderRoutes(t *testing.T) {
	r, portal := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/reminders", map[string]string{"title": "", "time": "08:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, portal.Reminders.List(), 3)

	form := map[string]string{"title": "Evening walk", "time": "18:30", "frequency": "daily", "method": "sms"}
	w = doJSON(r, http.MethodPost, "/api/reminders", form, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	// 重复提交
	w = doJSON(r, http.MethodPost, "/api/reminders", form, "Idempotency-Key", "k-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, portal.Reminders.List(), 4)

	w = doJSON(r, http.MethodPut, "/api/reminders/"+created.ID, map[string]string{"title": "Evening walk", "time": "19:00"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, portal.Reminders.List()[0].ID)
	assert.Equal(t, "19:00", portal.Reminders.List()[0].Time)

	w = doJSON(r, http.MethodPut, "/api/reminders/missing", map[string]string{"title": "x", "time": "19:00"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/api/reminders/1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodDelete, "/api/reminders/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodDelete, "/api/reminders/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaccinationReminderRequiresPhone(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/vaccinations/1/reminder", map[string]string{"phoneNumber": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/vaccinations/1/reminder", map[string]string{"phoneNumber": "+919876543210"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/vaccinations", nil)
	var body struct {
		Stats struct {
			CompletionRate int `json:"completionRate"`
		} `json:"stats"`
	}
	decode(t, w, &body)
	assert.Equal(t, 25, body.Stats.CompletionRate)
}

func TestAssessRoute(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/symptoms/assess", map[string][]string{"names": {"Chest pain"}})
	require.Equal(t, http.StatusOK, w.Code)
	var a struct {
		Urgency string `json:"urgency"`
	}
	decode(t, w, &a)
	assert.Equal(t, "high", a.Urgency)

	w = doJSON(r, http.MethodPost, "/api/symptoms/assess", map[string][]string{"ids": {"1", "10"}})
	decode(t, w, &a)
	assert.Equal(t, "medium", a.Urgency)

	w = doJSON(r, http.MethodPost, "/api/symptoms/assess", map[string][]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForumRoutes(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/forum/posts", map[string]string{"title": "Yoga", "content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/forum/posts", map[string]string{"title": "Yoga group", "content": "Saturday mornings"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		Author   string `json:"author"`
		Category string `json:"category"`
	}
	decode(t, w, &post)
	assert.Equal(t, "You", post.Author)
	assert.Equal(t, "General", post.Category)

	w = doJSON(r, http.MethodPut, "/api/forum/posts/1/like", nil)
	var liked struct {
		Likes   int  `json:"likes"`
		IsLiked bool `json:"isLiked"`
	}
	decode(t, w, &liked)
	assert.Equal(t, 25, liked.Likes)
	assert.True(t, liked.IsLiked)

	w = doJSON(r, http.MethodGet, "/api/forum/search?q=yoga", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []struct {
		Title string `json:"title"`
	}
	decode(t, w, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Yoga group", found[0].Title)
}

func upload(r http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	_, _ = fw.Write(content)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReportRoutes(t *testing.T) {
	r, portal := newTestServer(t)

	w := upload(r, "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(r, "blood_panel.pdf", bytes.Repeat([]byte("x"), 1536))
	require.Equal(t, http.StatusCreated, w.Code)
	var rep struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Size   string `json:"size"`
		Status string `json:"status"`
	}
	decode(t, w, &rep)
	assert.Equal(t, "Blood Test", rep.Type)
	assert.Equal(t, "1.5 KB", rep.Size)
	assert.Equal(t, "processing", rep.Status)
	assert.Equal(t, 1, portal.Reports.Pending())

	w = doJSON(r, http.MethodDelete, "/api/reports/"+rep.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, portal.Reports.Pending())
}

func TestExerciseRoutes(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/exercises/2/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var s struct {
		State         string `json:"state"`
		TimeRemaining int    `json:"timeRemaining"`
		CurrentStep   int    `json:"currentStep"`
	}
	decode(t, w, &s)
	assert.Equal(t, "running", s.State)

	w = doJSON(r, http.MethodPost, "/api/exercises/session/toggle", nil)
	decode(t, w, &s)
	assert.Equal(t, "paused", s.State)

	w = doJSON(r, http.MethodPost, "/api/exercises/session/step", map[string]int{"step": 99})
	decode(t, w, &s)
	assert.Equal(t, 4, s.CurrentStep)

	w = doJSON(r, http.MethodPost, "/api/exercises/session/reset", nil)
	decode(t, w, &s)
	assert.Equal(t, 300, s.TimeRemaining)

	w = doJSON(r, http.MethodPost, "/api/exercises/session/stop", nil)
	decode(t, w, &s)
	assert.Equal(t, "idle", s.State)

	w = doJSON(r, http.MethodPost, "/api/exercises/99/start", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedeemRoute(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/rewards/2/redeem", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/rewards/2/redeem", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w, nil)
	assert.Contains(t, env.Message, "not enough points")
}

func TestChatRoutes(t *testing.T) {
	r, portal := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/chat/messages", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/chat/messages", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var added []struct {
		Text   string `json:"text"`
		Sender string `json:"sender"`
	}
	decode(t, w, &added)
	require.Len(t, added, 2)
	assert.Equal(t, "echo: hello", added[1].Text)
	assert.Len(t, portal.Chat.Messages(), 3)

	w = doJSON(r, http.MethodGet, "/api/chat/speech", nil)
	var opts struct {
		Locale     string `json:"locale"`
		Continuous bool   `json:"continuous"`
	}
	decode(t, w, &opts)
	assert.Equal(t, "en-IN", opts.Locale)
	assert.False(t, opts.Continuous)
}

func TestChatSendAfterCloseUnavailable(t *testing.T) {
	r, portal := newTestServer(t)
	portal.Chat.Close()

	w := doJSON(r, http.MethodPost, "/api/chat/messages", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "chat is closed", env.Message)
	assert.Len(t, portal.Chat.Messages(), 1)
}

func TestWhatsAppLink(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/contact/whatsapp", nil)
	var body struct {
		URL string `json:"url"`
	}
	decode(t, w, &body)
	assert.Equal(t, "https://wa.me/919876543210?text=Hi%2C%20I%20need%20health%20assistance", body.URL)

	w = doJSON(r, http.MethodGet, "/api/contact/whatsapp?redirect=1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/system/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	doJSON(r, http.MethodPut, "/api/alerts/1/read", nil)
	w = doJSON(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portal_panel_operations_total{operation="read",panel="alerts"} 1`)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestUpdateRateLimiterConfig(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/system/rate-limiter/config", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/system/rate-limiter/config", map[string]interface{}{"rate": "1-M", "deny_status": 429})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/chat/messages", map[string]string{"text": "one"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/chat/messages", map[string]string{"text": "two"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
