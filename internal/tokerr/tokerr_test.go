package tokerr_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-scanlex/internal/tokerr"
)

func TestFormatWithSourceContext(t *testing.T) {
	err := tokerr.NewConfigError(
		tokerr.Position{Line: 2, Column: 5},
		"duplicate token id \"Plus\"",
		"singles:\n  - id: Plus\n",
		"lang.yaml",
	)
	out := err.Format(false)
	if !strings.Contains(out, "lang.yaml:2:5") {
		t.Fatalf("output missing file:line:col header: %q", out)
	}
	if !strings.Contains(out, "  - id: Plus") {
		t.Fatalf("output missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("output missing caret: %q", out)
	}
	if !strings.Contains(out, "duplicate token id") {
		t.Fatalf("output missing message: %q", out)
	}
}

func TestFormatWithoutFileOrPosition(t *testing.T) {
	err := tokerr.NewConfigError(tokerr.Position{}, "limit with empty name", "", "")
	out := err.Format(false)
	if strings.Contains(out, ":0:0") {
		t.Fatalf("unexpected zero-position header in %q", out)
	}
	if !strings.Contains(out, "limit with empty name") {
		t.Fatalf("output missing message: %q", out)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	err := tokerr.NewConfigError(tokerr.Position{}, "bad input", "", "")
	var _ error = err
	if err.Error() != err.Format(false) {
		t.Fatalf("Error() should match Format(false)")
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	errs := []*tokerr.ConfigError{tokerr.NewConfigError(tokerr.Position{}, "bad input", "", "")}
	out := tokerr.FormatErrors(errs, false)
	if strings.Contains(out, "error(s)") {
		t.Fatalf("single error should not use the batch header: %q", out)
	}
}

func TestFormatErrorsBatch(t *testing.T) {
	errs := []*tokerr.ConfigError{
		tokerr.NewConfigError(tokerr.Position{}, "first problem", "", ""),
		tokerr.NewConfigError(tokerr.Position{}, "second problem", "", ""),
	}
	out := tokerr.FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("output missing batch count: %q", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("output missing numbered headers: %q", out)
	}
}

func TestFormatErrorsEmpty(t *testing.T) {
	if out := tokerr.FormatErrors(nil, false); out != "" {
		t.Fatalf("got %q, want empty string for no errors", out)
	}
}
