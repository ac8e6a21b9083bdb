package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Output.Format != "pdf" {
		t.Errorf("Output.Format = %q, want pdf", cfg.Output.Format)
	}
	if cfg.Render.Method != "chrome" {
		t.Errorf("Render.Method = %q, want chrome", cfg.Render.Method)
	}
	if cfg.Render.Workers != 0 {
		t.Errorf("Render.Workers = %d, want 0 (auto)", cfg.Render.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid pptx weasyprint",
			mutate: func(c *Config) { c.Output.Format = "pptx"; c.Render.Method = "weasyprint" },
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "docx" },
			wantErr: "output.format",
		},
		{
			name:    "bad method",
			mutate:  func(c *Config) { c.Render.Method = "playwright" },
			wantErr: "render.method",
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Render.Timeout = "soon" },
			wantErr: "render.timeout",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Render.Timeout = "-5s" },
			wantErr: "render.timeout",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Render.Workers = -1 },
			wantErr: "render.workers",
		},
		{
			name:    "workers above cap",
			mutate:  func(c *Config) { c.Render.Workers = MaxWorkers + 1 },
			wantErr: "render.workers",
		},
		{
			name:    "name too long",
			mutate:  func(c *Config) { c.Output.Name = strings.Repeat("x", MaxNameLength+1) },
			wantErr: "output.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig(missing) error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("valid file merges over defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "conf.yaml")
		content := `input:
  slidesDir: decks/q3
output:
  format: pptx
render:
  timeout: 45s
  workers: 2
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if cfg.Input.SlidesDir != "decks/q3" {
			t.Errorf("Input.SlidesDir = %q", cfg.Input.SlidesDir)
		}
		if cfg.Output.Format != "pptx" {
			t.Errorf("Output.Format = %q", cfg.Output.Format)
		}
		if cfg.Render.Workers != 2 {
			t.Errorf("Render.Workers = %d", cfg.Render.Workers)
		}
		// Untouched keys keep defaults.
		if cfg.Render.Method != "chrome" {
			t.Errorf("Render.Method = %q, want default chrome", cfg.Render.Method)
		}
		if cfg.Timeout() != 45*time.Second {
			t.Errorf("Timeout() = %s, want 45s", cfg.Timeout())
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "conf.yaml")
		if err := os.WriteFile(path, []byte("bogus: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig(unknown field) error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "conf.yaml")
		if err := os.WriteFile(path, []byte("output:\n  format: docx\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig(bad format) succeeded")
		}
	})
}

func TestConfig_TimeoutFallback(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %s, want 30s fallback", cfg.Timeout())
	}
}
