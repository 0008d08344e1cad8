package yamlutil_test

// Notes:
// - DecodeStrict read error branch: covered with a failing reader; any
//   io.Reader error takes the same path.
// - Error text from the YAML library is not asserted beyond the prefix and
//   the source line, since its exact wording is owned upstream.

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/eea/tex2png/internal/yamlutil"
)

type renderSection struct {
	Engine   string  `yaml:"engine"`
	FontSize float64 `yaml:"fontSize"`
	Display  bool    `yaml:"display"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "known fields only",
			data: []byte("engine: vector\nfontSize: 48\ndisplay: true"),
			dest: &renderSection{},
			check: func(t *testing.T, v any) {
				r := v.(*renderSection)
				if r.Engine != "vector" {
					t.Errorf("Engine = %q, want %q", r.Engine, "vector")
				}
				if r.FontSize != 48 {
					t.Errorf("FontSize = %v, want 48", r.FontSize)
				}
				if !r.Display {
					t.Error("Display = false, want true")
				}
			},
		},
		{
			name:    "unknown field causes error",
			data:    []byte("engine: vector\ndpi: 300"),
			dest:    &renderSection{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "type mismatch",
			data:    []byte("fontSize: large"),
			dest:    &renderSection{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "invalid syntax",
			data:    []byte("engine: [unclosed"),
			dest:    &renderSection{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &renderSection{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &renderSection{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("engine: vector"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name: "unicode content",
			data: []byte("engine: \"véctor\""),
			dest: &renderSection{},
			check: func(t *testing.T, v any) {
				if got := v.(*renderSection).Engine; got != "véctor" {
					t.Errorf("Engine = %q, want %q", got, "véctor")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.HasPrefix(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want prefix %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict_ShowsSource(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("engine: vector\ncolour: red\n"), &renderSection{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q should quote the offending key", err)
	}
}

// ---------------------------------------------------------------------------
// TestDecodeStrict - Reads from an io.Reader
// ---------------------------------------------------------------------------

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	t.Run("reads whole stream", func(t *testing.T) {
		t.Parallel()

		var r renderSection
		if err := yamlutil.DecodeStrict(strings.NewReader("engine: browser\n"), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Engine != "browser" {
			t.Errorf("Engine = %q, want browser", r.Engine)
		}
	})

	t.Run("empty stream", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.DecodeStrict(strings.NewReader(""), &renderSection{})
		if !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("error = %v, want ErrNilData", err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		err := yamlutil.DecodeStrict(iotest.ErrReader(boom), &renderSection{})
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want wrapped boom", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	padded := func(n int) []byte {
		data := []byte("engine: vector\n")
		return append(data, []byte(strings.Repeat(" ", n-len(data)))...)
	}

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		var r renderSection
		if err := yamlutil.UnmarshalStrict(padded(100), &r); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		err := yamlutil.UnmarshalStrict(padded(101), &renderSection{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		err := yamlutil.UnmarshalStrict(padded(100), &renderSection{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		msg := err.Error()
		if !strings.Contains(msg, "100 bytes") {
			t.Errorf("error should contain actual size, got: %s", msg)
		}
		if !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain max size, got: %s", msg)
		}
	})

	t.Run("DecodeStrict stops one byte past the limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		err := yamlutil.DecodeStrict(strings.NewReader(string(padded(5000))), &renderSection{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "101 bytes") {
			t.Errorf("reader should be capped at limit+1, got: %v", err)
		}
	})
}
