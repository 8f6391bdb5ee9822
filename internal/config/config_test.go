package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{
		DatabasePath:     "/tmp/dispatch.db",
		DefaultPriority:  5,
		MaxTasksPerAgent: 5,
		LogLevel:         "info",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty database path rejected",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: "database_path",
		},
		{
			name:    "negative default priority rejected",
			mutate:  func(c *Config) { c.DefaultPriority = -1 },
			wantErr: "default_priority",
		},
		{
			name:    "zero agent ceiling rejected",
			mutate:  func(c *Config) { c.MaxTasksPerAgent = 0 },
			wantErr: "max_tasks_per_agent",
		},
		{
			name:    "unknown log level rejected",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultPriority != 5 {
		t.Errorf("DefaultPriority = %d, want 5", cfg.DefaultPriority)
	}
	if cfg.MaxTasksPerAgent != 5 {
		t.Errorf("MaxTasksPerAgent = %d, want 5", cfg.MaxTasksPerAgent)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want \"info\"", cfg.LogLevel)
	}
	if cfg.DatabasePath == "" {
		t.Error("DatabasePath is empty, want default under ~/.dispatch")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DISPATCH_MAX_TASKS_PER_AGENT", "2")
	t.Setenv("DISPATCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MaxTasksPerAgent != 2 {
		t.Errorf("MaxTasksPerAgent = %d, want 2 (env override)", cfg.MaxTasksPerAgent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want \"debug\" (env override)", cfg.LogLevel)
	}
}
