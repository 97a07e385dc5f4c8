package leadform

import (
	"os"
	"strings"
	"testing"

	"studio_landing_go/models"
	"studio_landing_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const contactRequired = "Необходимо указать либо телефон, либо адрес электронной почты."

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+7 (987) 654-32-10", true},
		{"89876543210", true},
		{"9876543210", true},
		{"+79876543210", true},
		{"8 (987) 6543210", true},
		{"+7 (012) 345-67-89", false},
		{"+7 (987) 654-32-1", false},
		{"+1 (987) 654-32-10", false},
		{"phone", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhone(tt.phone))
		})
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"Hello world", 1},
		{"Hi there. How are you?", 2},
		{"Wait... what?!", 2},
		{"One. Two! Three?", 3},
		{" . ! ? ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountSentences(tt.text))
		})
	}
}

func TestNormalize(t *testing.T) {
	d := Normalize(models.LeadDraft{
		Name:        "  <b>Анна</b> ",
		Email:       " anna@example.com ",
		Phone:       " 89876543210",
		MessageText: " Tom & Jerry <script>alert(1)</script>\n",
	})

	assert.Equal(t, "<b>Анна</b>", d.Name)
	assert.Equal(t, "anna@example.com", d.Email)
	assert.Equal(t, "89876543210", d.Phone)
	assert.Equal(t, "Tom & Jerry <script>alert(1)</script>", d.MessageText)
}

func TestValidateKeepsMarkupText(t *testing.T) {
	t.Run("Tags are part of the lead", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{
			Name:        "Anna<dev>",
			Email:       "anna@example.com",
			MessageText: "Need a page with <table> and <section> blocks",
		})
		require.True(t, res.Valid())
		assert.Equal(t, "Anna<dev>", res.Lead.Name)
		assert.Equal(t, "Need a page with <table> and <section> blocks", res.Lead.MessageText)
	})

	t.Run("Tags count toward the length limit", func(t *testing.T) {
		msg := strings.Repeat("<section>", 34)
		require.Greater(t, len([]rune(msg)), MaxMessageLength)
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "anna@example.com", MessageText: msg})
		assert.False(t, res.Valid())
		assert.Contains(t, res.Errors, models.FieldMessageText)
	})

	t.Run("Tags count toward the name limit", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "<b>" + strings.Repeat("я", 28) + "</b>", Email: "anna@example.com"})
		assert.Equal(t, "Не более 30 знаков", res.Errors[models.FieldName])
	})
}

func TestValidate(t *testing.T) {
	t.Run("Valid with email only", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "anna@example.com"})
		require.True(t, res.Valid())
		assert.Equal(t, "Анна", res.Lead.Name)
		assert.True(t, res.Lead.HasEmail())
		assert.False(t, res.Lead.HasPhone())
	})

	t.Run("Valid with phone only", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Phone: "+7 (987) 654-32-10"})
		require.True(t, res.Valid())
		assert.Equal(t, "+7 (987) 654-32-10", res.Lead.Phone)
	})

	t.Run("Both contacts allowed", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "anna@example.com", Phone: "89876543210"})
		assert.True(t, res.Valid())
	})

	t.Run("Missing both contacts flags both fields", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна"})
		assert.False(t, res.Valid())
		assert.Nil(t, res.Lead)
		assert.Equal(t, contactRequired, res.Errors[models.FieldEmail])
		assert.Equal(t, contactRequired, res.Errors[models.FieldPhone])
	})

	t.Run("Empty name", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "   ", Email: "anna@example.com"})
		assert.Equal(t, "Укажите имя", res.Errors[models.FieldName])
		assert.Len(t, res.Errors, 1)
	})

	t.Run("Name too long", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: strings.Repeat("я", 31), Email: "anna@example.com"})
		assert.Equal(t, "Не более 30 знаков", res.Errors[models.FieldName])

		res = Validate("ru", models.LeadDraft{Name: strings.Repeat("я", 30), Email: "anna@example.com"})
		assert.True(t, res.Valid())
	})

	t.Run("Invalid email", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "not-an-email"})
		assert.Equal(t, "Укажите корректный email", res.Errors[models.FieldEmail])
		_, hasPhone := res.Errors[models.FieldPhone]
		assert.False(t, hasPhone)
	})

	t.Run("Invalid phone with leading zero code", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Phone: "+7 (012) 345-67-89"})
		assert.Equal(t, "Введите корректный номер телефона", res.Errors[models.FieldPhone])
	})

	t.Run("Two sentences pass", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "a@b.ru", MessageText: "Нужен сайт. Когда сможете?"})
		assert.True(t, res.Valid())
	})

	t.Run("Three sentences fail", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "a@b.ru", MessageText: "Один. Два. Три."})
		assert.Equal(t, "Не более 2 предложений", res.Errors[models.FieldMessageText])
	})

	t.Run("Message too long", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "Анна", Email: "a@b.ru", MessageText: strings.Repeat("ж", 301)})
		assert.Equal(t, "Не более 300 знаков", res.Errors[models.FieldMessageText])
	})

	t.Run("All fields checked independently", func(t *testing.T) {
		res := Validate("ru", models.LeadDraft{Name: "", Email: "bad", Phone: "123", MessageText: "A. B. C."})
		assert.Len(t, res.Errors, 4)
	})

	t.Run("English messages", func(t *testing.T) {
		res := Validate("en", models.LeadDraft{})
		assert.Equal(t, "Please enter your name", res.Errors[models.FieldName])
		assert.Equal(t, "Please provide either a phone number or an email address.", res.Errors[models.FieldPhone])
	})
}

func TestValidateSubscription(t *testing.T) {
	email, errs := ValidateSubscription("ru", "  reader@example.com ")
	assert.Nil(t, errs)
	assert.Equal(t, "reader@example.com", email)

	_, errs = ValidateSubscription("ru", "")
	assert.Equal(t, "Укажите email", errs[models.FieldEmail])

	_, errs = ValidateSubscription("ru", "reader@")
	assert.Equal(t, "Укажите корректный email", errs[models.FieldEmail])
}

func TestFieldErrorsAdd(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("email", "first")
	fe.Add("email", "second")
	assert.Equal(t, "first", fe["email"])
}
