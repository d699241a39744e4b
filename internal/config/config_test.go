package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "csrftoken", cfg.CSRF.CookieName)
	assert.Equal(t, "X-CSRFToken", cfg.CSRF.HeaderName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Output.Colors)
	assert.NotEmpty(t, cfg.Session.JarPath)
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  base_url: https://kolik.example.com/api
  timeout: 30s
csrf:
  cookie_name: csrftoken
  header_name: X-CSRFToken
session:
  jar_path: /tmp/kolik-cookies.json
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "https://kolik.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/kolik-cookies.json", cfg.Session.JarPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad base url",
			content: "api:\n  base_url: not-a-url\n",
			wantErr: "invalid api.base_url",
		},
		{
			name:    "negative timeout",
			content: "api:\n  timeout: -5s\n",
			wantErr: "timeout must be positive",
		},
		{
			name:    "empty csrf header",
			content: "csrf:\n  header_name: \"\"\n",
			wantErr: "cannot be empty",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			wantErr: "invalid logging level",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			wantErr: "invalid logging format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBaseURL(t *testing.T) {
	cfg, err := Load(writeConfig(t, "api:\n  base_url: https://kolik.example.com/api\n"))
	require.NoError(t, err)

	u := cfg.BaseURL()
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "kolik.example.com", u.Host)
	assert.Equal(t, "/api", u.Path)
}
