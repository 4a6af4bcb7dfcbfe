package formatting_test

import (
	"strings"
	"testing"

	"github.com/inkwell-io/inkwell/pkg/formatting"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     string
	}{
		{"short text unchanged", "morning pages", 240, "morning pages"},
		{"whitespace collapsed", "woke  up\n\nearly   today", 240, "woke up early today"},
		{"leading and trailing trimmed", "  slept in  ", 240, "slept in"},
		{"empty", "", 240, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.Snippet(tt.input, tt.maxChars); got != tt.want {
				t.Errorf("Snippet(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSnippetTruncation(t *testing.T) {
	input := strings.Repeat("a", 300)
	got := formatting.Snippet(input, 240)

	runes := []rune(got)
	if len(runes) != 240 {
		t.Errorf("truncated length = %d, want 240", len(runes))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated snippet should end with ellipsis: %q", got)
	}
}

func TestSnippetMultibyteSafe(t *testing.T) {
	input := strings.Repeat("é", 300)
	got := formatting.Snippet(input, 240)

	if len([]rune(got)) != 240 {
		t.Errorf("rune length = %d, want 240", len([]rune(got)))
	}
	if strings.ContainsRune(got, '�') {
		t.Error("snippet should not contain replacement characters")
	}
}

func TestTimeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"opening clock time", "6:45 AM\nSlept well last night.", 405},
		{"midday", "Lunch at 12:30 with Sam.", 750},
		{"clock on later line", "Tuesday\nRaining again.\n9:15 coffee first", 555},
		{"no clock time", "A quiet day with nothing scheduled.", -1},
		{"empty", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.TimeKey(tt.input); got != tt.want {
				t.Errorf("TimeKey(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeKeyScanBound(t *testing.T) {
	body := strings.Repeat("no clocks here\n", 20) + "7:30 far too late in the page"
	if got := formatting.TimeKey(body); got != -1 {
		t.Errorf("TimeKey = %d, want -1 for clock beyond scan window", got)
	}
}
