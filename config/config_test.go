package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		RTBHouse: RTBHouseConfig{
			Token:          "api-token",
			BaseURL:        "https://api.panel.rtbhouse.com",
			TimeoutSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		token    string
		wantErr  bool
	}{
		{
			name:    "token only",
			token:   "api-token",
			wantErr: false,
		},
		{
			name:     "basic auth only",
			username: "user",
			password: "pass",
			wantErr:  false,
		},
		{
			name:    "no credentials",
			wantErr: true,
		},
		{
			name:     "username without password",
			username: "user",
			wantErr:  true,
		},
		{
			name:     "token and basic auth",
			username: "user",
			password: "pass",
			token:    "api-token",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.RTBHouse.Username = tt.username
			cfg.RTBHouse.Password = tt.password
			cfg.RTBHouse.Token = tt.token

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"defaults", "info", "console", false},
		{"json format", "debug", "json", false},
		{"invalid level", "verbose", "console", true},
		{"invalid format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.RTBHouse.TimeoutSeconds = -1
	if err := validate(cfg); err == nil {
		t.Error("validate() expected error for negative timeout")
	}
}
