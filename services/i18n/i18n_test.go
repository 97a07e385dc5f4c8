package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"lead": map[string]interface{}{
			"sent": "Sent",
			"errors": map[string]interface{}{
				"name": "Name",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "Sent", flat["lead.sent"])
	assert.Equal(t, "Name", flat["lead.errors.name"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "No placeholders",
			text:     "Hello World",
			args:     nil,
			expected: "Hello World",
		},
		{
			name:     "Single placeholder",
			text:     "Ошибка при отправке: {error}",
			args:     map[string]interface{}{"error": "timeout"},
			expected: "Ошибка при отправке: timeout",
		},
		{
			name:     "Missing argument",
			text:     "Hello {name}",
			args:     map[string]interface{}{"other": "val"},
			expected: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetLocale(t *testing.T) {
	t.Run("Default locale", func(t *testing.T) {
		assert.Equal(t, "ru", GetLocale(context.Background()))
	})

	t.Run("Locale from context", func(t *testing.T) {
		assert.Equal(t, "en", GetLocale(WithLocale(context.Background(), "en")))
	})

	t.Run("Empty locale falls back", func(t *testing.T) {
		assert.Equal(t, "ru", GetLocale(WithLocale(context.Background(), "")))
	})
}

func TestTranslateLogic(t *testing.T) {
	mutex.Lock()
	oldTrans := translations
	translations = map[string]map[string]string{
		"ru": {
			"test.hello":   "Привет",
			"test.welcome": "Добро пожаловать, {name}",
		},
		"en": {
			"test.hello": "Hello",
		},
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	t.Run("Direct lookup", func(t *testing.T) {
		assert.Equal(t, "Hello", Translate("en", "test.hello"))
		assert.Equal(t, "Привет", Translate("ru", "test.hello"))
	})

	t.Run("Fallback to default", func(t *testing.T) {
		assert.Equal(t, "Добро пожаловать, Анна", Translate("en", "test.welcome", map[string]interface{}{"name": "Анна"}))
	})

	t.Run("Fallback to key", func(t *testing.T) {
		assert.Equal(t, "missing.key", Translate("en", "missing.key"))
	})

	t.Run("T uses context locale", func(t *testing.T) {
		assert.Equal(t, "Hello", T(WithLocale(context.Background(), "en"), "test.hello"))
	})
}

func TestLoadExecution(t *testing.T) {
	assert.NoError(t, Load())
	assert.NoError(t, Load())

	assert.True(t, IsSupported("ru"))
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("fr"))

	// every Russian key must exist in English too
	mutex.RLock()
	defer mutex.RUnlock()
	for key := range translations["ru"] {
		_, ok := translations["en"][key]
		assert.True(t, ok, "missing en translation for %s", key)
	}
}
