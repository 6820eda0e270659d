package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSender struct {
	got []Message
	err error
}

func (r *recordSender) Send(_ context.Context, msg Message) error {
	r.got = append(r.got, msg)
	return r.err
}

type fakeSMS struct {
	phone  string
	params map[string]string
}

func (f *fakeSMS) Send(_ context.Context, phone, _, _ string, params map[string]string) error {
	f.phone, f.params = phone, params
	return nil
}

type fakeWA struct{ to, text string }

func (f *fakeWA) SendText(_ context.Context, to, text string) error {
	f.to, f.text = to, text
	return nil
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/919876543210?text=Hi%2C%20I%20need%20health%20assistance",
		WhatsAppLink("919876543210", "Hi, I need health assistance"))
	assert.Equal(t, "https://wa.me/911", WhatsAppLink("+911", ""))
	assert.Equal(t,
		"https://wa.me/911?text=BP%20%3D%20120%2F80%20%26%20sugar%2B%3F%23",
		WhatsAppLink("911", "BP = 120/80 & sugar+?#"))
}

func TestDispatcherRoutes(t *testing.T) {
	fallback := &recordSender{}
	sms := &recordSender{}
	d := NewDispatcher(fallback)
	d.Register(ChannelSMS, sms)

	require.NoError(t, d.Send(context.Background(), Message{Channel: ChannelSMS, Phone: "1"}))
	require.NoError(t, d.Send(context.Background(), Message{Channel: ChannelWhatsApp, Phone: "2"}))

	assert.Len(t, sms.got, 1)
	assert.Len(t, fallback.got, 1)
	assert.Equal(t, "2", fallback.got[0].Phone)
}

func TestDispatcherWrapsError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(&recordSender{err: boom})
	err := d.Send(context.Background(), Message{Channel: ChannelSMS, Phone: "1"})
	assert.ErrorIs(t, err, boom)
}

func TestAliyunSMS(t *testing.T) {
	cli := &fakeSMS{}
	s := NewAliyunSMS(AliyunSMSConfig{SignName: "portal"}, cli)
	require.NoError(t, s.Send(context.Background(), Message{Phone: "98", Title: "BP", Body: "take pill"}))
	assert.Equal(t, "98", cli.phone)
	assert.Equal(t, "take pill", cli.params["body"])

	assert.Error(t, NewAliyunSMS(AliyunSMSConfig{}, nil).Send(context.Background(), Message{Phone: "1"}))
	assert.Error(t, s.Send(context.Background(), Message{}))
}

func TestWhatsAppSender(t *testing.T) {
	cli := &fakeWA{}
	require.NoError(t, NewWhatsApp(cli).Send(context.Background(), Message{Phone: "91", Title: "Doctor", Body: "14:00"}))
	assert.Equal(t, "91", cli.to)
	assert.Equal(t, "Doctor\n14:00", cli.text)
}

func TestWhatsAppCloudSendText(t *testing.T) {
	var (
		path, auth string
		got        waTextMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cli := NewWhatsAppCloud(WhatsAppCloudConfig{APIURL: srv.URL + "/", Token: "tok", PhoneID: "42"}, srv.Client())
	require.NoError(t, NewWhatsApp(cli).Send(context.Background(), Message{
		Channel: ChannelWhatsApp, Phone: "+919812345678", Title: "BP Medicine", Body: "08:00",
	}))

	assert.Equal(t, "/42/messages", path)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "919812345678", got.To)
	assert.Equal(t, "BP Medicine\n08:00", got.Text.Body)
}

func TestWhatsAppCloudErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewWhatsAppCloud(WhatsAppCloudConfig{APIURL: srv.URL, PhoneID: "42"}, nil).SendText(context.Background(), "91", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid token")
}
