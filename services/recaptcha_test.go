package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recaptchaServer(t *testing.T, resp RecaptchaResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRecaptchaVerify(t *testing.T) {
	ctx := t.Context()

	t.Run("Missing inputs", func(t *testing.T) {
		v := NewRecaptchaVerifier("secret", "http://127.0.0.1:1", time.Second)
		resp, err := v.Verify(ctx, "", "127.0.0.1")
		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing token")

		v = NewRecaptchaVerifier("", "http://127.0.0.1:1", time.Second)
		_, err = v.Verify(ctx, "token", "127.0.0.1")
		assert.Error(t, err)
	})

	t.Run("Sends form fields", func(t *testing.T) {
		var got map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			got = map[string]string{
				"secret":   r.PostForm.Get("secret"),
				"response": r.PostForm.Get("response"),
				"remoteip": r.PostForm.Get("remoteip"),
			}
			json.NewEncoder(w).Encode(RecaptchaResponse{Success: true, Score: 0.9})
		}))
		defer server.Close()

		v := NewRecaptchaVerifier("secret", server.URL, time.Second)
		resp, err := v.Verify(ctx, "tok", "1.1.1.1")
		require.NoError(t, err)
		assert.Equal(t, 0.9, resp.Score)
		assert.Equal(t, map[string]string{"secret": "secret", "response": "tok", "remoteip": "1.1.1.1"}, got)
	})

	t.Run("Score at threshold passes", func(t *testing.T) {
		server := recaptchaServer(t, RecaptchaResponse{Success: true, Score: RecaptchaMinScore})
		_, err := NewRecaptchaVerifier("secret", server.URL, time.Second).Verify(ctx, "tok", "")
		assert.NoError(t, err)
	})

	t.Run("Low score", func(t *testing.T) {
		server := recaptchaServer(t, RecaptchaResponse{Success: true, Score: 0.3})
		resp, err := NewRecaptchaVerifier("secret", server.URL, time.Second).Verify(ctx, "tok", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLowRecaptchaScore))
		require.NotNil(t, resp)
		assert.Equal(t, 0.3, resp.Score)
	})

	t.Run("Verification failure with error codes", func(t *testing.T) {
		server := recaptchaServer(t, RecaptchaResponse{
			Success:    false,
			ErrorCodes: []string{"invalid-input-response", "timeout-or-duplicate"},
		})
		resp, err := NewRecaptchaVerifier("secret", server.URL, time.Second).Verify(ctx, "tok", "")
		assert.NotNil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid-input-response")
	})

	t.Run("Malformed JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{ malformed json }"))
		}))
		defer server.Close()

		resp, err := NewRecaptchaVerifier("secret", server.URL, time.Second).Verify(ctx, "tok", "")
		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("Unreachable provider", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		resp, err := NewRecaptchaVerifier("secret", url, time.Second).Verify(ctx, "tok", "")
		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to verify token")
	})
}
