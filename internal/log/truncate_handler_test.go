package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncateHandler_CapsLongValues tests that oversized string attributes
// are truncated and short ones pass through.
func TestTruncateHandler_CapsLongValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantCap bool
	}{
		{
			name:    "short url is untouched",
			key:     "url",
			value:   "https://wikimapia.org/15002/Arad",
			wantCap: false,
		},
		{
			name:    "value at the limit is untouched",
			key:     "description",
			value:   strings.Repeat("a", MaxAttrLen),
			wantCap: false,
		},
		{
			name:    "value over the limit is capped",
			key:     "description",
			value:   strings.Repeat("a", MaxAttrLen+1),
			wantCap: true,
		},
		{
			name:    "long scraped text is capped",
			key:     "description",
			value:   strings.Repeat("lorem ipsum ", 200),
			wantCap: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, true)

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantCap {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value to be truncated, but found in full: %s", output)
				}
				if !strings.Contains(output, truncationMark) {
					t.Errorf("expected truncation mark in output, but not found: %s", output)
				}
			} else {
				if !strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
				}
				if strings.Contains(output, truncationMark) {
					t.Errorf("expected no truncation mark, but found one: %s", output)
				}
			}
		})
	}
}

// TestTruncateHandler_MultibyteSafety tests that truncation never splits a
// multibyte character.
func TestTruncateHandler_MultibyteSafety(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.Info("test message", "description", strings.Repeat("å", MaxAttrLen*2))

	output := buf.String()
	if !strings.Contains(output, truncationMark) {
		t.Fatalf("expected truncation mark in output: %s", output)
	}
	if strings.Contains(output, "�") {
		t.Errorf("truncation produced a broken rune: %s", output)
	}
}

// TestTruncateHandler_Groups tests that grouped attributes are capped too.
func TestTruncateHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.Info("test message",
		slog.Group("page",
			"url", "https://wikimapia.org/15002/Arad",
			"body", strings.Repeat("x", MaxAttrLen*2),
		),
	)

	output := buf.String()
	if !strings.Contains(output, "https://wikimapia.org/15002/Arad") {
		t.Errorf("expected short grouped value to survive: %s", output)
	}
	if !strings.Contains(output, truncationMark) {
		t.Errorf("expected long grouped value to be capped: %s", output)
	}
}

// TestLoggerLevels tests the verbose switch.
func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger emits debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("debug message")

		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("quiet logger suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info message")

		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got: %s", buf.String())
		}
	})
}

// TestNewJSONLogger tests the JSON variant caps values as well.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)

	logger.Info("test message", "description", strings.Repeat("y", MaxAttrLen*2))

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, truncationMark) {
		t.Errorf("expected truncated value in JSON output: %s", output)
	}
}
