package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/localization"
	"labourdesk/backend/internal/validation"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// mailDialer is the part of *mail.Dialer the Mailer uses.
type mailDialer interface {
	DialAndSend(m ...*mail.Message) error
}

// paragraphs lists the catalog keys that make up each email body.
var paragraphs = map[string][]string{
	TemplateComplaintReceived: {
		"email.complaint_received.intro",
		"email.complaint_received.reference",
	},
	TemplateComplaintStatusChanged: {
		"email.complaint_status_changed.intro",
	},
}

var emailLayout = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<p style="color: #666; font-size: 12px;">{{.Footer}}</p>
</body>
</html>`))

// Mailer is the email Sender, built on gopkg.in/mail.v2.
type Mailer struct {
	cfg     config.SMTP
	hotline string
	loc     *localization.Localizer
	logger  *zap.Logger
	dialer  mailDialer
}

var _ Sender = (*Mailer)(nil)

// NewMailer returns a Mailer; when SMTP is not configured every Send is a
// logged no-op.
func NewMailer(cfg config.SMTP, hotline string, loc *localization.Localizer, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, hotline: hotline, loc: loc, logger: logger}
	if cfg.Enabled() {
		m.dialer = mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// IsEnabled returns whether email functionality is enabled.
func (m *Mailer) IsEnabled() bool {
	return m.dialer != nil
}

func (m *Mailer) Send(_ context.Context, job Job) error {
	if !m.IsEnabled() {
		m.logger.Info("email disabled, skipping", zap.String("template", job.Template))
		return nil
	}
	if !validation.IsValidEmail(job.To) {
		return fmt.Errorf("invalid recipient %q", job.To)
	}

	subject, body, err := m.render(job)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", job.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent", zap.String("template", job.Template))
	return nil
}

func (m *Mailer) render(job Job) (string, string, error) {
	keys, ok := paragraphs[job.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", job.Template)
	}

	lang := job.Data["lang"]
	if lang == "" {
		lang = localization.DefaultLanguage
	}

	data := map[string]string{"hotline": m.hotline}
	for k, v := range job.Data {
		data[k] = v
	}

	view := struct {
		Paragraphs []string
		Footer     string
	}{
		Footer: m.loc.Render(lang, "email.footer", data),
	}
	for _, key := range keys {
		view.Paragraphs = append(view.Paragraphs, m.loc.Render(lang, key, data))
	}

	var buf bytes.Buffer
	if err := emailLayout.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("failed to render email: %w", err)
	}

	subject := m.loc.Render(lang, "email."+job.Template+".subject", data)
	return subject, buf.String(), nil
}
