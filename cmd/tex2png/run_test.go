package main

// Notes:
// - runMain: exercised end to end with the vector engine and in-memory
//   stdio. The browser engine is covered by the library's integration tests.
// - Signal-driven cancellation is not triggered here; see signal_test.go.
// - Tests that call t.Setenv cannot use t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ---------------------------------------------------------------------------
// Test Infrastructure - In-memory environment
// ---------------------------------------------------------------------------

func newTestEnv(stdin io.Reader) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:             time.Now,
		Stdin:           stdin,
		Stdout:          &stdout,
		Stderr:          &stderr,
		StdinIsTerminal: func() bool { return false },
	}, &stdout, &stderr
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and stream contents
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantCode     int
		wantPNG      bool
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:     "inline expression",
			args:     []string{"tex2png"},
			stdin:    "x^2 + y^2 = z^2\n",
			wantCode: ExitSuccess,
			wantPNG:  true,
		},
		{
			name:     "display expression",
			args:     []string{"tex2png", "--display"},
			stdin:    `\sum_{k=1}^{n} k = \frac{n(n+1)}{2}`,
			wantCode: ExitSuccess,
			wantPNG:  true,
		},
		{
			name:     "unknown flags and arguments are ignored",
			args:     []string{"tex2png", "--dpi=300", "positional", "--display"},
			stdin:    `\sqrt{2}`,
			wantCode: ExitSuccess,
			wantPNG:  true,
		},
		{
			name:         "malformed markup",
			args:         []string{"tex2png"},
			stdin:        `\frac{1`,
			wantCode:     ExitMarkup,
			wantInStderr: []string{"error:", "invalid math markup", "^"},
		},
		{
			name:         "unknown command",
			args:         []string{"tex2png"},
			stdin:        `\notacommand x`,
			wantCode:     ExitMarkup,
			wantInStderr: []string{`\notacommand`},
		},
		{
			name:         "empty input",
			args:         []string{"tex2png"},
			stdin:        "",
			wantCode:     ExitMarkup,
			wantInStderr: []string{"input is empty", "hint:"},
		},
		{
			name:         "whitespace only",
			args:         []string{"tex2png", "--display"},
			stdin:        " \n\t ",
			wantCode:     ExitMarkup,
			wantInStderr: []string{"input is empty"},
		},
		{
			name:         "invalid UTF-8",
			args:         []string{"tex2png"},
			stdin:        "x\xff",
			wantCode:     ExitMarkup,
			wantInStderr: []string{"invalid UTF-8 at byte 1"},
		},
		{
			name:         "help",
			args:         []string{"tex2png", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: tex2png", "--display"},
		},
		{
			name:         "version",
			args:         []string{"tex2png", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"tex2png " + Version},
		},
		{
			name:         "unknown engine",
			args:         []string{"tex2png", "--engine", "cairo"},
			stdin:        "x",
			wantCode:     ExitUsage,
			wantInStderr: []string{"render.engine"},
		},
		{
			name:         "unparsable timeout",
			args:         []string{"tex2png", "--timeout", "soon"},
			stdin:        "x",
			wantCode:     ExitUsage,
			wantInStderr: []string{"render.timeout"},
		},
		{
			name:         "missing config name",
			args:         []string{"tex2png", "--config", "tex2png-test-missing-config"},
			stdin:        "x",
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "--config"},
		},
		{
			name:         "image taller than the height limit",
			args:         []string{"tex2png"},
			stdin:        strings.Repeat(`\overset{x}{`, 50) + "x" + strings.Repeat("}", 50),
			wantCode:     ExitRaster,
			wantInStderr: []string{"rasterization failed", "image too tall"},
		},
		{
			name:         "verbose timings",
			args:         []string{"tex2png", "-v"},
			stdin:        "a+b",
			wantCode:     ExitSuccess,
			wantPNG:      true,
			wantInStderr: []string{"read 3 bytes", "converted in", "vector engine"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(strings.NewReader(tt.stdin))

			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if tt.wantPNG {
				assertPNG(t, stdout.Bytes())
			} else if tt.wantInStdout == nil && stdout.Len() != 0 {
				t.Errorf("stdout should be empty on failure, got %d bytes", stdout.Len())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	if !bytes.HasPrefix(data, pngSignature) {
		t.Fatalf("stdout does not start with the PNG signature: % x", data[:min(len(data), 8)])
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if cfg.Width != 2000 {
		t.Errorf("width = %d, want 2000", cfg.Width)
	}
	if cfg.Height < 1 {
		t.Errorf("height = %d, want >= 1", cfg.Height)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Display - The flag changes the image
// ---------------------------------------------------------------------------

func TestRunMain_Display(t *testing.T) {
	t.Parallel()

	render := func(args ...string) []byte {
		env, stdout, stderr := newTestEnv(strings.NewReader(`\int_0^1 f(x)\,dx`))
		if code := runMain(append([]string{"tex2png"}, args...), env); code != ExitSuccess {
			t.Fatalf("runMain(%v) = %d\nstderr: %s", args, code, stderr.String())
		}
		return stdout.Bytes()
	}

	inline := render()
	display := render("--display")
	again := render("-d")
	trailing := render("--", "--display")

	if bytes.Equal(inline, display) {
		t.Error("inline and display output should differ")
	}
	if !bytes.Equal(display, again) {
		t.Error("--display and -d should produce identical bytes")
	}
	if !bytes.Equal(display, trailing) {
		t.Error("--display after -- should still select display mode")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_IO - Stream failures
// ---------------------------------------------------------------------------

func TestRunMain_IO(t *testing.T) {
	t.Parallel()

	t.Run("stdin read error", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv(iotest.ErrReader(errors.New("device gone")))
		if code := runMain([]string{"tex2png"}, env); code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if stdout.Len() != 0 {
			t.Error("stdout should be empty")
		}
		if !strings.Contains(stderr.String(), "device gone") {
			t.Errorf("stderr = %q, want cause", stderr.String())
		}
	})

	t.Run("stdout write error", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv(strings.NewReader("x"))
		env.Stdout = failingWriter{}
		if code := runMain([]string{"tex2png"}, env); code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "failed to write output") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("terminal stdin prints hint", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv(strings.NewReader("x"))
		env.StdinIsTerminal = func() bool { return true }
		if code := runMain([]string{"tex2png"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), "Ctrl-D") {
			t.Errorf("stderr = %q, want terminal hint", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_SVG - Intermediate SVG side output
// ---------------------------------------------------------------------------

func TestRunMain_SVG(t *testing.T) {
	t.Parallel()

	t.Run("writes svg and png", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "expr.svg")
		env, stdout, stderr := newTestEnv(strings.NewReader(`\alpha`))
		if code := runMain([]string{"tex2png", "--svg", path}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
		}
		assertPNG(t, stdout.Bytes())

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading svg: %v", err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("svg file content = %q", data)
		}
	})

	t.Run("unwritable path leaves stdout empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "expr.svg")
		env, stdout, _ := newTestEnv(strings.NewReader(`\alpha`))
		if code := runMain([]string{"tex2png", "--svg", path}, env); code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if stdout.Len() != 0 {
			t.Error("stdout should be empty when the svg cannot be written")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Config - Config file wiring
// ---------------------------------------------------------------------------

func TestRunMain_Config(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "render.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		return path
	}

	t.Run("background from config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render:\n  background: \"#ffffff\"\n")
		env, stdout, stderr := newTestEnv(strings.NewReader("x"))
		if code := runMain([]string{"tex2png", "-c", path}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
		}
		img, err := png.Decode(bytes.NewReader(stdout.Bytes()))
		if err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0xffff {
			t.Errorf("corner alpha = %#x, want opaque background", a)
		}
	})

	t.Run("input size limit", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "input:\n  maxBytes: 2\n")
		env, stdout, stderr := newTestEnv(strings.NewReader("x^2"))
		if code := runMain([]string{"tex2png", "--config", path}, env); code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if stdout.Len() != 0 {
			t.Error("stdout should be empty")
		}
		if !strings.Contains(stderr.String(), "exceeds 2 bytes") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render:\n  dpi: 300\n")
		env, _, stderr := newTestEnv(strings.NewReader("x"))
		if code := runMain([]string{"tex2png", "--config", path}, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitUsage, stderr.String())
		}
	})
}
