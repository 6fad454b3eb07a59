package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends operational notices. All sends are best-effort; the
// callers log failures and carry on.
type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendLeaveNotice(ctx context.Context, to, staffName, date, reason string) error
}

// Config holds SMTP settings. An empty Host disables sending.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendWelcome(_ context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour sub-center staff account has been created. You can now log in with your registered phone number.\n",
		name,
	)
	return s.send(to, "Welcome to the sub-center portal", body)
}

func (s *smtpService) SendLeaveNotice(_ context.Context, to, staffName, date, reason string) error {
	body := fmt.Sprintf(
		"Leave request\n\nStaff: %s\nDate: %s\nReason: %s\n",
		staffName, date, reason,
	)
	return s.send(to, fmt.Sprintf("Leave request from %s", staffName), body)
}

type noopService struct{}

// NewNoop returns a Service that silently drops all mail. Used when
// SMTP is not configured.
func NewNoop() Service {
	return noopService{}
}

func (noopService) SendWelcome(context.Context, string, string) error { return nil }

func (noopService) SendLeaveNotice(context.Context, string, string, string, string) error {
	return nil
}
