package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "missing suspense boundary",
			code:    "E101",
			wantMsg: "Component suspended without a Suspense boundary",
			wantCat: CategoryLifecycle,
		},
		{
			name:    "portal without host",
			code:    "E103",
			wantMsg: "Portal has no host",
			wantCat: CategoryReconcile,
		},
		{
			name:    "surface error",
			code:    "E104",
			wantMsg: "Surface invariant violated",
			wantCat: CategorySurface,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	cause := errors.New("boom")
	err := New("E102").WithComponent("Profile").Wrap(cause)

	want := "E102: Component view failed (component Profile): boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestFromErrorAndCode(t *testing.T) {
	if FromError(nil, "E104") != nil {
		t.Error("FromError(nil) should return nil")
	}

	coded := New("E103")
	wrapped := fmt.Errorf("attach: %w", coded)
	if got := FromError(wrapped, "E104"); got != coded {
		t.Error("FromError should return the *Error already in the chain")
	}
	if got := Code(wrapped); got != "E103" {
		t.Errorf("Code = %q, want E103", got)
	}

	plain := errors.New("plain")
	if got := FromError(plain, "E104"); got.Code != "E104" || !errors.Is(got, plain) {
		t.Errorf("FromError(plain) = %v", got)
	}
	if Code(plain) != "" {
		t.Error("Code of a plain error should be empty")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E101").WithComponent("Avatar")
	out := err.Format()

	for _, want := range []string{"ERROR E101:", "component Avatar", "Hint:", "Learn more: https://vango.dev/docs/errors/E101"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E101: Component suspended without a Suspense boundary [Avatar]" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, errors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("ctx: %w", New("E180")))
	if !strings.Contains(buf.String(), "ERROR E180:") {
		t.Errorf("PrintError output = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if len(lines) != 3 {
		t.Errorf("len(lines) = %d, want 3", len(lines))
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty text should be nil")
	}
}

func TestRegistry(t *testing.T) {
	if len(GetAllCodes()) == 0 {
		t.Fatal("registry is empty")
	}
	Register("E998", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	if tpl, ok := GetTemplate("E998"); !ok || tpl.Message != "custom" {
		t.Error("registered template not found")
	}
}
