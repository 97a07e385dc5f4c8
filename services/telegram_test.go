package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSendMessage(t *testing.T) {
	ctx := t.Context()

	t.Run("Posts chat id and text", func(t *testing.T) {
		var gotPath string
		var got telegramMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := NewTelegramClient(server.URL+"/", "123:abc", "-100", time.Second)
		require.NoError(t, client.SendMessage(ctx, "hello"))
		assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
		assert.Equal(t, telegramMessage{ChatID: "-100", Text: "hello"}, got)
	})

	t.Run("API error keeps body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
		}))
		defer server.Close()

		err := NewTelegramClient(server.URL, "123:abc", "-100", time.Second).SendMessage(ctx, "hi")
		var apiErr *TelegramAPIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "chat not found")
	})

	t.Run("Transport error hides token", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		err := NewTelegramClient(url, "secret-bot-token", "-100", time.Second).SendMessage(ctx, "hi")
		require.Error(t, err)
		assert.False(t, strings.Contains(err.Error(), "secret-bot-token"))
	})

	t.Run("Not configured", func(t *testing.T) {
		err := NewTelegramClient("http://127.0.0.1:1", "", "-100", time.Second).SendMessage(ctx, "hi")
		assert.Error(t, err)
	})
}
