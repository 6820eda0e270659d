package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthPortal/pkg/config"
	"HealthPortal/pkg/notification"
)

func TestNewNotifierRegistersWhatsAppCloud(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phone-1/messages", r.URL.Path)
		hits.Add(1)
	}))
	defer srv.Close()

	d := newNotifier(&config.Config{
		SMSSender:       "log",
		WhatsAppAPIURL:  srv.URL,
		WhatsAppToken:   "tok",
		WhatsAppPhoneID: "phone-1",
	})
	ctx := context.Background()
	require.NoError(t, d.Send(ctx, notification.Message{Channel: notification.ChannelWhatsApp, Phone: "+91987", Body: "hi"}))
	require.NoError(t, d.Send(ctx, notification.Message{Channel: notification.ChannelSMS, Phone: "+91987", Body: "hi"}))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewNotifierWithoutCredentialsLogsOnly(t *testing.T) {
	d := newNotifier(&config.Config{SMSSender: "aliyun", WhatsAppAPIURL: "http://127.0.0.1:1"})
	assert.NoError(t, d.Send(context.Background(), notification.Message{Channel: notification.ChannelWhatsApp, Phone: "+91987", Body: "hi"}))
}
