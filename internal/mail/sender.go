package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Sender delivers account emails.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, link, name string) error
	SendPasswordResetEmail(ctx context.Context, to, link, name string) error
}

const (
	verificationSubject = "Verify your email address"
	resetSubject        = "Reset your password"
)

var templates = template.Must(template.New("verification").Parse(`<p>Hello {{.Name}},</p>
<p>Thanks for signing up. Please confirm your email address:</p>
<p><a href="{{.Link}}">Verify email</a></p>
<p>If you did not create an account you can ignore this message.</p>
`))

func init() {
	template.Must(templates.New("reset").Parse(`<p>Hello {{.Name}},</p>
<p>We received a request to reset your password:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not ask for a reset you can ignore this message.</p>
`))
}

type templateData struct {
	Name string
	Link string
}

func render(name, link, recipient string) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, templateData{Name: recipient, Link: link}); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends HTML emails through an SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender configures a go-mail client. No connection is opened until a
// message is sent.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, link, name string) error {
	return s.send(ctx, to, verificationSubject, "verification", link, name)
}

func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, to, link, name string) error {
	return s.send(ctx, to, resetSubject, "reset", link, name)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, tpl, link, name string) error {
	msg, err := buildMessage(s.from, to, subject, tpl, link, name)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", tpl, err)
	}
	return nil
}

func buildMessage(from, to, subject, tpl, link, name string) (*gomail.Msg, error) {
	body, err := render(tpl, link, name)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return msg, nil
}

// LogSender writes emails to the log instead of delivering them. Used when no
// SMTP host is configured.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerificationEmail(_ context.Context, to, link, name string) error {
	s.log.Info("verification email", zap.String("to", to), zap.String("name", name), zap.String("link", link))
	return nil
}

func (s *LogSender) SendPasswordResetEmail(_ context.Context, to, link, name string) error {
	s.log.Info("password reset email", zap.String("to", to), zap.String("name", name), zap.String("link", link))
	return nil
}
