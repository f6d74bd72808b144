package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		chatPath string
		want     string
		wantErr  bool
	}{
		{
			name:     "defaults",
			baseURL:  DefaultBaseURL,
			chatPath: DefaultChatPath,
			want:     "http://localhost:5000/api/chat",
		},
		{
			name:     "trailing slash on base",
			baseURL:  "https://chat.example.com/",
			chatPath: "/api/chat",
			want:     "https://chat.example.com/api/chat",
		},
		{
			name:     "path without leading slash",
			baseURL:  "http://localhost:5000",
			chatPath: "v2/chat",
			want:     "http://localhost:5000/v2/chat",
		},
		{
			name:     "empty path falls back to default",
			baseURL:  "http://localhost:5000",
			chatPath: "",
			want:     "http://localhost:5000/api/chat",
		},
		{
			name:    "empty base url",
			baseURL: "",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://localhost",
			wantErr: true,
		},
		{
			name:    "missing host",
			baseURL: "http://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{BaseURL: tt.baseURL, ChatPath: tt.chatPath}
			got, err := c.ChatURL()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetChatPath(t *testing.T) {
	tests := []struct {
		chatPath string
		want     string
	}{
		{chatPath: "/api/chat", want: "/api/chat"},
		{chatPath: "api/chat", want: "/api/chat"},
		{chatPath: "  v2/chat ", want: "/v2/chat"},
		{chatPath: "", want: DefaultChatPath},
	}

	for _, tt := range tests {
		t.Run(tt.chatPath, func(t *testing.T) {
			c := &Config{BaseURL: DefaultBaseURL, ChatPath: tt.chatPath}
			assert.Equal(t, tt.want, c.GetChatPath())

			// The client URL and the served path must agree
			chatURL, err := c.ChatURL()
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL+tt.want, chatURL)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "0", want: 0},
		{input: "60s", want: 60 * time.Second},
		{input: "1m30s", want: 90 * time.Second},
		{input: "-5s", wantErr: true},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := &Config{Timeout: tt.input}
			got, err := c.RequestTimeout()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTheme(t *testing.T) {
	for input, want := range map[string]string{"": ThemeLight, "light": ThemeLight, "dark": ThemeDark} {
		got, err := (&Config{Theme: input}).GetTheme()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := (&Config{Theme: "solarized"}).GetTheme()
	assert.Error(t, err)
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("CHATC_TEST_URL", "http://backend:8080")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "http://localhost:5000", want: "http://localhost:5000"},
		{input: "$CHATC_TEST_URL", want: "http://backend:8080"},
		{input: "${CHATC_TEST_URL}", want: "http://backend:8080"},
		{input: "$CHATC_TEST_UNSET_VARIABLE", want: ""},
		{input: "$", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := expandEnvVar(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.toml")
	content := `
base_url = "$CHATC_TEST_BACKEND"
chat_path = "/api/chat"
timeout = "5s"
theme = "dark"
save_transcripts = true
transcript_dir = "transcripts"
log_file = "/var/log/chatc.log"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv("CHATC_TEST_BACKEND", "http://127.0.0.1:9999")

	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.SaveTranscripts)
	assert.Equal(t, filepath.Join(dir, "transcripts"), cfg.TranscriptDir)
	assert.Equal(t, "/var/log/chatc.log", cfg.LogFile)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig("/tmp/transcripts")

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultChatPath, cfg.ChatPath)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.False(t, cfg.SaveTranscripts)
	assert.Equal(t, "/tmp/transcripts", cfg.TranscriptDir)

	url, err := cfg.ChatURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api/chat", url)
}
