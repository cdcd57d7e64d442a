package upload

import (
	"regexp"
	"testing"

	"weblarek/pkg/errors"
)

func TestValidateDeclared(t *testing.T) {
	allowed := []string{"image/png", "image/jpg", "image/jpeg", "image/gif", "image/svg+xml", "image/webp"}
	for _, mime := range allowed {
		if err := ValidateDeclared(mime); err != nil {
			t.Errorf("ValidateDeclared(%q) = %v, want nil", mime, err)
		}
	}

	rejected := []string{"", "application/pdf", "text/html", "image/bmp", "video/mp4", "image/PNG"}
	for _, mime := range rejected {
		err := ValidateDeclared(mime)
		if err == nil {
			t.Errorf("ValidateDeclared(%q) = nil, want rejection", mime)
			continue
		}
		if !errors.Is(err, errors.CodeInvalidFileType) {
			t.Errorf("ValidateDeclared(%q) code = %v, want INVALID_FILE_TYPE", mime, err)
		}
	}
}

func TestValidateSize(t *testing.T) {
	const min, max = 2 * 1024, 10 * 1024 * 1024

	tests := []struct {
		name string
		size int64
		ok   bool
	}{
		{"empty", 0, false},
		{"below minimum", min - 1, false},
		{"at minimum", min, true},
		{"normal", 500 * 1024, true},
		{"at maximum", max, true},
		{"above maximum", max + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.size, min, max)
			if tt.ok && err != nil {
				t.Errorf("size %d rejected: %v", tt.size, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("size %d accepted, want rejection", tt.size)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		sniffed  string
		want     string
		wantErr  bool
	}{
		{"png", "image/png", "image/png", "png", false},
		{"jpeg stored as jpg", "image/jpeg", "image/jpeg", "jpg", false},
		{"gif", "image/gif", "image/gif", "gif", false},
		{"webp", "image/webp", "image/webp", "webp", false},
		{"extension follows bytes not declaration", "image/png", "image/jpeg", "jpg", false},
		{"svg sniffed as xml", "image/svg+xml", "text/xml; charset=utf-8", "svg", false},
		{"svg sniffed as plain text", "image/svg+xml", "text/plain; charset=utf-8", "svg", false},
		{"xml without svg declaration", "image/png", "text/xml; charset=utf-8", "", true},
		{"html payload", "image/png", "text/html; charset=utf-8", "", true},
		{"binary junk", "image/png", "application/octet-stream", "", true},
		{"pdf bytes", "image/jpeg", "application/pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ExtensionFor(tt.declared, tt.sniffed)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtensionFor(%q, %q) accepted, want rejection", tt.declared, tt.sniffed)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtensionFor(%q, %q) rejected: %v", tt.declared, tt.sniffed, err)
			}
			if ext != tt.want {
				t.Errorf("ExtensionFor(%q, %q) = %q, want %q", tt.declared, tt.sniffed, ext, tt.want)
			}
		})
	}
}

func TestNewGeneratedName(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name, err := NewGeneratedName()
		if err != nil {
			t.Fatalf("NewGeneratedName() error: %v", err)
		}
		if !shape.MatchString(name) {
			t.Fatalf("generated name %q is not 32 hex chars", name)
		}
		if seen[name] {
			t.Fatalf("generated name %q repeated", name)
		}
		seen[name] = true
	}
}
