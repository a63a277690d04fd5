package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(TemplateWelcome, map[string]any{"FirstName": "Ivan"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the marketplace", subject)
	assert.Contains(t, text, "Ivan")
	assert.Contains(t, html, "Ivan")
}

func TestRenderWelcomeWithoutName(t *testing.T) {
	_, text, _, err := Render(TemplateWelcome, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Welcome")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password_reset", nil)
	assert.Error(t, err)
}
