package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"studio_landing_go/config"
	"studio_landing_go/services/i18n"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	if email.HTMLBody != "" {
		log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	}
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so the caller is not blocked
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildSecurityAlertEmail creates the operator notification for a security alert.
// The IP comes from request headers, so the HTML body is sanitized.
func BuildSecurityAlertEmail(to string, alert SecurityAlert, lang string) *Email {
	ts := alert.Timestamp.Format(time.RFC1123)
	htmlBody := fmt.Sprintf("<h2>%s</h2><ul><li>IP Address: %s</li><li>Level: %s</li><li>Time: %s</li></ul>",
		alert.Reason, alert.IP, alert.Level, ts)

	return &Email{
		To:       []string{to},
		Subject:  i18n.Translate(lang, "email.subject.security_alert", map[string]interface{}{"reason": alert.Reason}),
		HTMLBody: bluemonday.UGCPolicy().Sanitize(htmlBody),
		TextBody: fmt.Sprintf("System detected a security event:\n\nType: %s\nIP Address: %s\nLevel: %s\nTime: %s\n",
			alert.Reason, alert.IP, alert.Level, ts),
	}
}

// SecurityAlertMailer returns a SecurityEventMonitor callback that mails
// alerts to cfg.AlertEmail. It returns nil when no address is configured.
func SecurityAlertMailer(cfg *config.Config) func(SecurityAlert) {
	if cfg.AlertEmail == "" {
		return nil
	}
	return func(alert SecurityAlert) {
		SendEmailAsync(cfg, BuildSecurityAlertEmail(cfg.AlertEmail, alert, i18n.DefaultLang))
	}
}
