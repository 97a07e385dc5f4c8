package partials

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	err := LeadFieldErrors([]string{"name", "email"}, map[string]string{"email": "<bad>"}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<p id="error-name" class="field-error" role="alert" hx-swap-oob="true"></p>`)
	assert.Contains(t, html, `<p id="error-email" class="field-error" role="alert" hx-swap-oob="true">&lt;bad&gt;</p>`)
}

func TestFieldErrorInline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FieldError("phone", "", false).Render(context.Background(), &buf))
	assert.Equal(t, `<p id="error-phone" class="field-error" role="alert"></p>`, buf.String())
}
