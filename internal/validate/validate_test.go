package validate

import (
	"errors"
	"testing"

	"github.com/launchdeck/launchdeck/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Example", "Example", false},
		{"  padded  ", "padded", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		got, err := Title(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Title(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://example.com", "https://example.com", false},
		{"example.com", "https://example.com", false},
		{"example.com/path?q=1", "https://example.com/path?q=1", false},
		{"http://example.com", "http://example.com", false},
		{"mailto:user@example.com", "mailto:user@example.com", false},
		{"ftp://files.example.com", "ftp://files.example.com", false},
		{"file:///usr/bin/editor", "file:///usr/bin/editor", false},
		{"  example.com  ", "https://example.com", false},
		{"", "", true},
		{"https://", "", true},
	}

	for _, tt := range tests {
		got, err := URL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("URL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestURL_ErrorNamesField(t *testing.T) {
	_, err := URL("")
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.Field != "url" {
		t.Errorf("expected field url, got %q", verr.Field)
	}
}

func TestCategory(t *testing.T) {
	if got := Category("Work"); got != "Work" {
		t.Errorf("Category(Work) = %q", got)
	}
	if got := Category("  "); got != model.DefaultCategory {
		t.Errorf("expected default category for blank input, got %q", got)
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trim and keep order", []string{" go ", "web"}, []string{"go", "web"}},
		{"drop empties", []string{"", "  ", "go"}, []string{"go"}},
		{"dedupe case-insensitive first wins", []string{"Go", "go", "GO", "web"}, []string{"Go", "web"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Tags(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tags(%v) = %v, want %v", tt.in, got, tt.want)
					break
				}
			}
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", model.DefaultColor, false},
		{"#FFFFFF", "#ffffff", false},
		{"#abc", "#abc", false},
		{"#1A2b3C", "#1a2b3c", false},
		{"red", "", true},
		{"#12345", "", true},
		{"123456", "", true},
	}

	for _, tt := range tests {
		got, err := Color(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Color(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Color(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReminderDays(t *testing.T) {
	if got, err := ReminderDays(nil); err != nil || got != nil {
		t.Errorf("ReminderDays(nil) = %v, %v", got, err)
	}

	valid := 30
	got, err := ReminderDays(&valid)
	if err != nil || got == nil || *got != 30 {
		t.Errorf("ReminderDays(30) = %v, %v", got, err)
	}
	// The result is a copy, not an alias of the caller's pointer.
	valid = 99
	if *got != 30 {
		t.Error("ReminderDays must copy the value")
	}

	for _, days := range []int{0, -1, 366} {
		d := days
		if _, err := ReminderDays(&d); err == nil {
			t.Errorf("ReminderDays(%d) expected error", days)
		}
	}
}

func TestTypeForURL(t *testing.T) {
	tests := []struct {
		in   string
		want model.BookmarkType
	}{
		{"https://example.com", model.TypeWebsite},
		{"http://example.com", model.TypeWebsite},
		{"file:///usr/bin/editor", model.TypeProgram},
		{"steam://run/123", model.TypeProtocol},
		{"mailto:user@example.com", model.TypeProtocol},
	}

	for _, tt := range tests {
		if got := TypeForURL(tt.in); got != tt.want {
			t.Errorf("TypeForURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFaviconURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/deep/path", "https://example.com/favicon.ico"},
		{"http://example.com", "http://example.com/favicon.ico"},
		{"mailto:user@example.com", ""},
	}

	for _, tt := range tests {
		if got := FaviconURL(tt.in); got != tt.want {
			t.Errorf("FaviconURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
