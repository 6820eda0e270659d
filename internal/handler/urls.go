package handlers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"HealthPortal/internal/panel"
	"HealthPortal/pkg/cache"
	"HealthPortal/pkg/config"
	"HealthPortal/pkg/metrics"
	"HealthPortal/pkg/middleware"
	"HealthPortal/pkg/speech"
	"HealthPortal/pkg/sse"
	"HealthPortal/pkg/websocket"
)

const sessionName = "healthportal"

type Deps struct {
	Config  *config.Config
	Portal  *panel.Portal
	Events  *sse.Hub
	Metrics *metrics.Metrics
	Cache   cache.Cache
	Chat    *websocket.Hub
	Limiter *middleware.RateLimiter
	Speech  speech.Options
}

type Handlers struct {
	cfg     *config.Config
	portal  *panel.Portal
	events  *sse.Hub
	metrics *metrics.Metrics
	cache   cache.Cache
	ws      *websocket.Handler
	limiter *middleware.RateLimiter
	speech  speech.Options
}

func NewHandlers(d Deps) *Handlers {
	h := &Handlers{
		cfg:     d.Config,
		portal:  d.Portal,
		events:  d.Events,
		metrics: d.Metrics,
		cache:   d.Cache,
		limiter: d.Limiter,
		speech:  d.Speech,
	}
	if h.limiter == nil {
		h.limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: d.Config.RateLimit, AddHeaders: true}, nil)
		if h.metrics != nil {
			h.limiter.WithObserver(middleware.NewPrometheusObserver(h.metrics.Registry()))
		}
	}
	if d.Chat != nil {
		h.ws = websocket.NewHandler(d.Chat, h.chatText)
	}
	return h
}

func (h *Handlers) Register(engine *gin.Engine) {
	if h.metrics != nil {
		engine.Use(metrics.Middleware(h.metrics))
		engine.GET(h.cfg.MetricsPath, gin.WrapH(h.metrics.Handler()))
	}

	r := engine.Group(h.cfg.APIPrefix)
	r.Use(middleware.AccessLogMiddleware(h.cfg.APIPrefix + "/system/health"))
	r.Use(sessions.Sessions(sessionName, cookie.NewStore([]byte(h.cfg.SessionSecret))))

	// Register System Module Routes
	h.registerSystemRoutes(r)

	// Register Panel Routes
	h.registerProfileRoutes(r)
	h.registerAlertRoutes(r)
	h.registerReminderRoutes(r)
	h.registerVaccinationRoutes(r)
	h.registerSymptomRoutes(r)
	h.registerForumRoutes(r)
	h.registerReportRoutes(r)
	h.registerExerciseRoutes(r)
	h.registerRewardRoutes(r)
	h.registerChatRoutes(r)

	r.GET("/events", h.handleEvents)
}

// idempotent 创建类接口，带 Idempotency-Key 的重复请求返回 409
func (h *Handlers) idempotent() gin.HandlerFunc {
	if h.cache == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.IdempotencyMiddleware(h.cache, middleware.IdempotencyConfig{TTL: 10 * time.Minute})
}

func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("system")
	{
		system.POST("/rate-limiter/config", h.UpdateRateLimiterConfig)

		system.GET("/health", h.HealthCheck)
	}
}

func (h *Handlers) registerProfileRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.handleProfile)
	r.GET("/dashboard", h.handleDashboard)
	r.GET("/navigation", h.handleGetNavigation)
	r.PUT("/navigation", h.handleSelectNavigation)
	r.GET("/contact/whatsapp", h.handleWhatsAppLink)
}

func (h *Handlers) registerAlertRoutes(r *gin.RouterGroup) {
	alerts := r.Group("alerts")
	{
		alerts.GET("", h.handleListAlerts)

		alerts.PUT("/:id/read", h.handleMarkAlertRead)
	}
}

func (h *Handlers) registerReminderRoutes(r *gin.RouterGroup) {
	reminders := r.Group("reminders")
	{
		reminders.GET("", h.handleListReminders)

		reminders.POST("", h.idempotent(), h.handleCreateReminder)

		reminders.PUT("/:id", h.handleUpdateReminder)

		reminders.PUT("/:id/toggle", h.handleToggleReminder)

		reminders.DELETE("/:id", h.handleDeleteReminder)
	}
}

func (h *Handlers) registerVaccinationRoutes(r *gin.RouterGroup) {
	vaccinations := r.Group("vaccinations")
	{
		vaccinations.GET("", h.handleListVaccinations)

		vaccinations.POST("/:id/reminder", h.idempotent(), h.handleVaccinationReminder)
	}
}

func (h *Handlers) registerSymptomRoutes(r *gin.RouterGroup) {
	symptoms := r.Group("symptoms")
	{
		symptoms.GET("", h.handleListSymptoms)

		symptoms.POST("/assess", h.handleAssessSymptoms)
	}
}

func (h *Handlers) registerForumRoutes(r *gin.RouterGroup) {
	forum := r.Group("forum")
	{
		forum.GET("/posts", h.handleListPosts)

		forum.POST("/posts", h.idempotent(), h.handleCreatePost)

		forum.PUT("/posts/:id/like", h.handleTogglePostLike)

		forum.GET("/search", h.handleSearchPosts)
	}
}

func (h *Handlers) registerReportRoutes(r *gin.RouterGroup) {
	reports := r.Group("reports")
	{
		reports.GET("", h.handleListReports)

		reports.POST("", h.idempotent(), h.handleUploadReport)

		reports.DELETE("/:id", h.handleDeleteReport)
	}
}

func (h *Handlers) registerExerciseRoutes(r *gin.RouterGroup) {
	exercises := r.Group("exercises")
	{
		exercises.GET("", h.handleListExercises)

		exercises.GET("/session", h.handleExerciseSession)

		exercises.POST("/:id/start", h.handleStartExercise)

		exercises.POST("/session/toggle", h.handleToggleExercise)

		exercises.POST("/session/reset", h.handleResetExercise)

		exercises.POST("/session/stop", h.handleStopExercise)

		exercises.POST("/session/step", h.handleExerciseStep)
	}
}

func (h *Handlers) registerRewardRoutes(r *gin.RouterGroup) {
	rewards := r.Group("rewards")
	{
		rewards.GET("", h.handleRewards)

		rewards.POST("/:id/redeem", h.idempotent(), h.handleRedeemReward)
	}
}

func (h *Handlers) registerChatRoutes(r *gin.RouterGroup) {
	chat := r.Group("chat")
	{
		chat.GET("/messages", h.handleChatMessages)

		chat.POST("/messages", h.limiter.Middleware(), h.handleSendChat)

		chat.GET("/ws", h.limiter.Middleware(), h.handleChatSocket)

		chat.GET("/speech", h.handleSpeechOptions)
	}
}
