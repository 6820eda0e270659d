package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	handlers "HealthPortal/internal/handler"
	"HealthPortal/internal/panel"
	"HealthPortal/pkg/cache"
	"HealthPortal/pkg/config"
	"HealthPortal/pkg/llm"
	"HealthPortal/pkg/logger"
	"HealthPortal/pkg/metrics"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/scheduler"
	"HealthPortal/pkg/search"
	"HealthPortal/pkg/speech"
	"HealthPortal/pkg/sse"
	"HealthPortal/pkg/websocket"
)

const (
	shutdownTimeout       = 10 * time.Second
	systemMetricsInterval = 15 * time.Second
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(cfg.Log, cfg.Mode); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	gin.SetMode(cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cache.NewCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer store.Close()

	m := metrics.NewMetrics()
	events := sse.NewHub(cfg.SSEPingInterval)

	index, err := search.New(search.Config{
		DefaultSearchFields: []string{"title", "content", "category"},
		QueryTimeout:        2 * time.Second,
		ResultCacheSize:     128,
	}, search.BuildIndexMapping(""))
	if err != nil {
		return fmt.Errorf("init search: %w", err)
	}

	llmLog := logrus.New()
	if verbose {
		llmLog.SetLevel(logrus.DebugLevel)
	}

	portal := panel.New(panel.Config{
		Assistant:           newAssistant(cfg, llmLog),
		Notifier:            newNotifier(cfg),
		Search:              index,
		ReportAnalysisDelay: cfg.ReportAnalysisDelay,
		ChatTimeout:         cfg.ChatTimeout,
		Publisher:           events,
		Observer:            m,
	})
	if err := portal.Start(ctx); err != nil {
		return fmt.Errorf("start portal: %w", err)
	}
	defer portal.Close()

	speechOpts, err := speech.NewOptions(cfg.SpeechLocale)
	if err != nil {
		return err
	}

	wsConfig := websocket.LoadConfigFromEnv()
	if err := wsConfig.Validate(); err != nil {
		return fmt.Errorf("websocket config: %w", err)
	}
	chatHub := websocket.NewHub(wsConfig, llmLog)
	defer chatHub.Close()

	// 定期采集主机资源
	jobs := scheduler.New()
	defer jobs.Stop()
	jobs.Every(systemMetricsInterval, scheduler.FuncJob(func(context.Context) {
		m.Observe(metrics.Collect())
		m.SetSSEClients(events.Clients())
	}))

	engine := gin.New()
	engine.Use(gin.Recovery())
	handlers.NewHandlers(handlers.Deps{
		Config:  cfg,
		Portal:  portal,
		Events:  events,
		Metrics: m,
		Cache:   store,
		Chat:    chatHub,
		Speech:  speechOpts,
	}).Register(engine)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Addr), zap.String("api_prefix", cfg.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	// SSE 和 websocket 是长连接，先断开，否则 Shutdown 会一直等待
	events.Close()
	chatHub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
		return err
	}
	return nil
}

func newAssistant(cfg *config.Config, log *logrus.Logger) llm.Assistant {
	if cfg.ChatBackend == "openai" && cfg.LLMApiKey != "" {
		logger.Info("chat backend: openai", zap.String("model", cfg.LLMModel))
		return llm.NewOpenAIAssistant(cfg.LLMApiKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMPrompt, log)
	}
	logger.Info("chat backend: endpoint", zap.String("url", cfg.ChatEndpoint))
	return llm.NewEndpointAssistant(cfg.ChatEndpoint, &http.Client{}, log)
}

// newNotifier 配置了 Cloud API 时 WhatsApp 走真实发送，其余渠道写日志
func newNotifier(cfg *config.Config) *notification.Dispatcher {
	d := notification.NewDispatcher(notification.LogSender{})
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		cloud := notification.NewWhatsAppCloud(notification.WhatsAppCloudConfig{
			APIURL:  cfg.WhatsAppAPIURL,
			Token:   cfg.WhatsAppToken,
			PhoneID: cfg.WhatsAppPhoneID,
		}, &http.Client{Timeout: 10 * time.Second})
		d.Register(notification.ChannelWhatsApp, notification.NewWhatsApp(cloud))
		logger.Info("whatsapp sender: cloud api", zap.String("phoneId", cfg.WhatsAppPhoneID))
	}
	if cfg.SMSSender != "log" {
		logger.Warn("sms sender not available, falling back to log", zap.String("sender", cfg.SMSSender))
	}
	return d
}
