package errors

import (
	"bytes"
	stderrors "errors"
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
			name:    "list index",
			code:    "E101",
			wantMsg: "List index out of range",
			wantCat: CategoryReactive,
		},
		{
			name:    "mount",
			code:    "E202",
			wantMsg: "Mount container missing",
			wantCat: CategoryComponent,
		},
		{
			name:    "config",
			code:    "E302",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
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

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("remove: %w", New("E101").With("index", 4))

	if !stderrors.Is(err, New("E101")) {
		t.Error("expected wrapped E101 to match E101")
	}
	if stderrors.Is(err, New("E102")) {
		t.Error("E101 should not match E102")
	}
	if stderrors.Is(err, Newf(CategoryReactive, "no code")) {
		t.Error("an uncoded target should never match")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("bucket missing")
	err := New("E301").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if got := err.Error(); got != "E301: Snapshot export failed: bucket missing" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E301") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E302")
	if FromError(orig, "E301") != orig {
		t.Error("FromError should return coded errors unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E303")
	if wrapped.Code != "E303" || wrapped.Wrapped == nil {
		t.Errorf("unexpected wrap: %+v", wrapped)
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E101").With("len", 3).With("index", 5)
	want := "E101: List index out of range index=5 len=3"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatWithoutColors(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E302").With("field", "server.port").WithSuggestion("use a port between 1 and 65535").Format()
	for _, want := range []string{"ERROR E302: Invalid configuration", "field: server.port", "Hint: use a port"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain escape codes when colors are disabled")
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("loading: %w", New("E303")))
	if !strings.Contains(buf.String(), "E303") {
		t.Errorf("expected coded output, got %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("expected plain output, got %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("E101"); !ok {
		t.Error("E101 should be registered")
	}
}
