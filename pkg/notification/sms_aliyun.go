package notification

import (
	"context"
	"fmt"
)

type AliyunSMSConfig struct {
	AccessKeyId     string
	AccessKeySecret string
	SignName        string
	TemplateCode    string
	Endpoint        string // 默认 cn-hangzhou
}

type AliyunSMS struct {
	cfg AliyunSMSConfig
	cli AliyunSMSClient
}

// AliyunSMSClient 便于替换/注入的发送接口（适配真实 SDK）
type AliyunSMSClient interface {
	Send(ctx context.Context, phone, sign, template string, params map[string]string) error
}

func NewAliyunSMS(cfg AliyunSMSConfig, cli AliyunSMSClient) *AliyunSMS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "cn-hangzhou"
	}
	return &AliyunSMS{cfg: cfg, cli: cli}
}

// Send 提醒内容通过模板参数 title/body 下发
func (a *AliyunSMS) Send(ctx context.Context, msg Message) error {
	if a.cli == nil {
		return fmt.Errorf("AliyunSMSClient not configured")
	}
	if msg.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	params := map[string]string{"title": msg.Title, "body": msg.Body}
	return a.cli.Send(ctx, msg.Phone, a.cfg.SignName, a.cfg.TemplateCode, params)
}
