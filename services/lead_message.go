package services

import (
	"strings"

	"studio_landing_go/models"
)

const (
	emptyContactPlaceholder = "-"
	emptyMessagePlaceholder = "_"
)

// FormatLeadMessage renders the chat notification for a lead
func FormatLeadMessage(siteLabel string, lead models.LeadSubmission) string {
	var b strings.Builder
	if siteLabel != "" {
		b.WriteString(siteLabel)
		b.WriteString("\n")
	}
	email, phone := emptyContactPlaceholder, emptyContactPlaceholder
	if lead.HasEmail() {
		email = lead.Email
	}
	if lead.HasPhone() {
		phone = lead.Phone
	}
	message := lead.MessageText
	if message == "" {
		message = emptyMessagePlaceholder
	}
	b.WriteString("👤 Имя: " + lead.Name + "\n")
	b.WriteString("📧 Email: " + email + "\n")
	b.WriteString("📱 Телефон: " + phone + "\n")
	b.WriteString("💬 Сообщение: " + message)
	return b.String()
}

// FormatSubscriptionMessage renders the chat notification for a new subscriber
func FormatSubscriptionMessage(email string) string {
	return "Новая подписка: " + email
}
