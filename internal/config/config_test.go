package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.Engine != "vector" {
		t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, "vector")
	}
	if cfg.Render.Padding != nil {
		t.Errorf("Render.Padding = %v, want nil", *cfg.Render.Padding)
	}
	if cfg.Input.MaxBytes != 0 {
		t.Errorf("Input.MaxBytes = %d, want 0", cfg.Input.MaxBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "full valid config",
			cfg: Config{
				Render: RenderConfig{
					Engine:     "browser",
					FontSize:   64,
					Color:      "#333",
					Background: "#ffffff",
					Padding:    floatPtr(0),
					Timeout:    "1m",
				},
				Input: InputConfig{MaxBytes: 4096},
			},
		},
		{
			name: "engine is case insensitive",
			cfg:  Config{Render: RenderConfig{Engine: "Vector"}},
		},
		{
			name:    "unknown engine",
			cfg:     Config{Render: RenderConfig{Engine: "cairo"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "engine too long",
			cfg:     Config{Render: RenderConfig{Engine: strings.Repeat("v", MaxEngineLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "font size below range",
			cfg:     Config{Render: RenderConfig{FontSize: 4}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "font size above range",
			cfg:     Config{Render: RenderConfig{FontSize: 401}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "named color",
			cfg:     Config{Render: RenderConfig{Color: "black"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "color too long",
			cfg:     Config{Render: RenderConfig{Color: "#0000000"}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "bad background",
			cfg:     Config{Render: RenderConfig{Background: "#12"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative padding",
			cfg:     Config{Render: RenderConfig{Padding: floatPtr(-1)}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "padding too large",
			cfg:     Config{Render: RenderConfig{Padding: floatPtr(2.5)}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparsable timeout",
			cfg:     Config{Render: RenderConfig{Timeout: "soon"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative timeout",
			cfg:     Config{Render: RenderConfig{Timeout: "-5s"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative max bytes",
			cfg:     Config{Input: InputConfig{MaxBytes: -1}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderConfig_TimeoutDuration(t *testing.T) {
	d, err := RenderConfig{}.TimeoutDuration()
	if err != nil || d != 0 {
		t.Errorf("empty timeout = %v, %v; want 0, nil", d, err)
	}

	d, err = RenderConfig{Timeout: "90s"}.TimeoutDuration()
	if err != nil || d != 90*time.Second {
		t.Errorf("90s timeout = %v, %v; want 1m30s, nil", d, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "render.yaml")
		writeFile(t, path, `
render:
  engine: browser
  fontSize: 48
  color: "#222222"
  padding: 0.5
  timeout: 45s
input:
  maxBytes: 1024
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Render.Engine != "browser" {
			t.Errorf("Engine = %q, want browser", cfg.Render.Engine)
		}
		if cfg.Render.FontSize != 48 {
			t.Errorf("FontSize = %v, want 48", cfg.Render.FontSize)
		}
		if cfg.Render.Color != "#222222" {
			t.Errorf("Color = %q, want #222222", cfg.Render.Color)
		}
		if cfg.Render.Padding == nil || *cfg.Render.Padding != 0.5 {
			t.Errorf("Padding = %v, want 0.5", cfg.Render.Padding)
		}
		if d, _ := cfg.Render.TimeoutDuration(); d != 45*time.Second {
			t.Errorf("Timeout = %v, want 45s", d)
		}
		if cfg.Input.MaxBytes != 1024 {
			t.Errorf("MaxBytes = %d, want 1024", cfg.Input.MaxBytes)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "render:\n  engine: vector\n  dpi: 300\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		writeFile(t, path, "render: [unclosed\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		writeFile(t, path, "")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs after parse", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		writeFile(t, path, "render:\n  fontSize: 2\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("name in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "local.yml"), "render:\n  color: \"#ff0000\"\n")

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to change directory: %v", err)
		}

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Render.Color != "#ff0000" {
			t.Errorf("Color = %q, want #ff0000", cfg.Render.Color)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to change directory: %v", err)
		}

		_, err = LoadConfig("nonexistent-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nonexistent-config-name.yaml") {
			t.Errorf("error %q should list the searched paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("math")

	if len(paths) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(paths))
	}
	if paths[0] != "math.yaml" || paths[1] != "math.yml" {
		t.Errorf("local paths = %v, want math.yaml then math.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDirName) {
			t.Errorf("user path %q does not contain %q", p, AppDirName)
		}
	}
}
