package services

import (
	"testing"

	"studio_landing_go/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatLeadMessage(t *testing.T) {
	t.Run("All fields", func(t *testing.T) {
		msg := FormatLeadMessage("barbarisstudio.vercel", models.LeadSubmission{
			Name:        "Anna",
			Email:       "a@b.co",
			Phone:       "+7 (912) 345-67-89",
			MessageText: "Hello.",
		})
		assert.Equal(t, "barbarisstudio.vercel\n"+
			"👤 Имя: Anna\n"+
			"📧 Email: a@b.co\n"+
			"📱 Телефон: +7 (912) 345-67-89\n"+
			"💬 Сообщение: Hello.", msg)
	})

	t.Run("Placeholders for missing fields", func(t *testing.T) {
		msg := FormatLeadMessage("site", models.LeadSubmission{Name: "Ivan", Phone: "89123456789"})
		assert.Contains(t, msg, "📧 Email: -\n")
		assert.Contains(t, msg, "📱 Телефон: 89123456789\n")
		assert.Contains(t, msg, "💬 Сообщение: _")
	})

	t.Run("No label", func(t *testing.T) {
		msg := FormatLeadMessage("", models.LeadSubmission{Name: "Ivan", Email: "i@v.ru"})
		assert.Equal(t, "👤 Имя: Ivan\n📧 Email: i@v.ru\n📱 Телефон: -\n💬 Сообщение: _", msg)
	})
}

func TestFormatSubscriptionMessage(t *testing.T) {
	assert.Equal(t, "Новая подписка: a@b.co", FormatSubscriptionMessage("a@b.co"))
}
