// Package mail 提供邮件发送服务，目前用于找回密码
package mail

import (
	"context"
	"fmt"
	"regexp"

	"venturedeck/internal/config"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Sender 邮件发送接口，Service 层依赖此接口
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSender 按配置创建发送器，未配置 SMTP 时只记录日志
func NewSender(conf config.MailConfig) Sender {
	if conf.Host == "" {
		zap.L().Warn("SMTP host not configured, mails are logged only")
		return logSender{}
	}
	return &smtpSender{conf: conf}
}

// smtpSender 基于 go-mail 的 SMTP 实现
type smtpSender struct {
	conf config.MailConfig
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(s.conf.From, to, subject, body)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.conf.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.conf.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.conf.Username),
			gomail.WithPassword(s.conf.Password),
		)
	}
	client, err := gomail.NewClient(s.conf.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}

// logSender 本地开发用，邮件内容写入日志
type logSender struct{}

func (logSender) Send(_ context.Context, to, subject, body string) error {
	zap.L().Info("mail (not sent)", zap.String("to", to), zap.String("subject", subject), zap.String("body", redactTokens(body)))
	return nil
}

var tokenParam = regexp.MustCompile(`([?&]token=)[^&\s]+`)

// redactTokens 隐去链接中的一次性 token
func redactTokens(body string) string {
	return tokenParam.ReplaceAllString(body, "${1}***")
}
