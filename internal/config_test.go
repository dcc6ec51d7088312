package internal

import (
	"log/slog"
	"testing"
)

func TestAuthConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  AuthConfig
		wantErr bool
	}{
		{
			name:    "disabled mode is valid",
			config:  AuthConfig{Mode: AuthModeDisabled},
			wantErr: false,
		},
		{
			name:    "empty mode normalises to disabled",
			config:  AuthConfig{},
			wantErr: false,
		},
		{
			name:    "token mode with token is valid",
			config:  AuthConfig{Mode: AuthModeToken, Token: "secret"},
			wantErr: false,
		},
		{
			name:    "token mode without token is invalid",
			config:  AuthConfig{Mode: AuthModeToken},
			wantErr: true,
		},
		{
			name:    "unknown mode is invalid",
			config:  AuthConfig{Mode: "basic"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthEnabled(t *testing.T) {
	c := AuthConfig{Mode: AuthModeDisabled}
	if c.AuthEnabled() {
		t.Error("disabled mode must not report enabled")
	}
	c = AuthConfig{Mode: AuthModeToken, Token: "secret"}
	if !c.AuthEnabled() {
		t.Error("token mode must report enabled")
	}
}

func TestHTTPConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 8080, false},
		{"zero port", 0, true},
		{"negative port", -1, true},
		{"port too large", 70000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := HTTPConfig{Port: tt.port}
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfigAddress(t *testing.T) {
	c := HTTPConfig{Port: 9090}
	if got := c.Address(); got != ":9090" {
		t.Errorf("Address() = %q, want %q", got, ":9090")
	}
}

func TestRepoConfigValidate(t *testing.T) {
	c := RepoConfig{Path: "/repo"}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	c = RepoConfig{}
	if err := c.Validate(); err == nil {
		t.Error("empty path must be rejected")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.App.LogLevel)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.App.HTTP.Port)
	}
	if cfg.Repo.Path != "." {
		t.Errorf("Repo.Path = %q, want %q", cfg.Repo.Path, ".")
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth must default to disabled")
	}
	if cfg.Cache.Path != "" {
		t.Errorf("Cache.Path = %q, want empty", cfg.Cache.Path)
	}
}
