/*
Package upload holds the lifecycle entity and the pure validation policy
for incoming file uploads. Everything here is decided before or
independently of any I/O, the filesystem work lives in the application
layer.
*/
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"weblarek/pkg/errors"
)

// State is the lifecycle position of an upload ticket.
type State string

const (
	StateReceived  State = "received"
	StateValidated State = "validated"
	StateStaged    State = "staged"
	StateCommitted State = "committed"
	StateRejected  State = "rejected"
)

// Ticket tracks one upload from arrival to promotion or rejection. It is
// request-scoped and discarded once the response is sent; the stored
// file and its public path are the only durable outcome.
type Ticket struct {
	DeclaredType  string
	SniffedType   string
	Size          int64
	GeneratedName string
	StagingPath   string
	FinalPath     string
	State         State
}

// allowedDeclared is the declared content type allow-list.
var allowedDeclared = map[string]bool{
	"image/png":     true,
	"image/jpg":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

// extBySniffed maps validated sniffed types to the stored extension.
// The extension never comes from the client-supplied filename.
var extBySniffed = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ValidateDeclared checks the declared content type against the allow-list.
func ValidateDeclared(declared string) error {
	if !allowedDeclared[declared] {
		return errors.InvalidFileType(fmt.Sprintf("file type %q is not allowed", declared))
	}
	return nil
}

// ValidateSize checks the payload size against the configured bounds.
// Undersized files guard against empty or truncated uploads.
func ValidateSize(size, min, max int64) error {
	if size < min {
		return errors.Validation(fmt.Sprintf("file size must be at least %d bytes", min))
	}
	if size > max {
		return errors.Validation(fmt.Sprintf("file size must not exceed %d bytes", max))
	}
	return nil
}

// ExtensionFor resolves the stored extension from the sniffed content
// type, rejecting payloads whose bytes do not match an allowed image
// format. SVG cannot be identified by content sniffing, so it is
// accepted only when declared as SVG and sniffed as XML or plain text.
func ExtensionFor(declared, sniffed string) (string, error) {
	normalized := normalizeMime(sniffed)

	if ext, ok := extBySniffed[normalized]; ok {
		return ext, nil
	}

	if declared == "image/svg+xml" &&
		(strings.HasPrefix(normalized, "text/xml") || strings.HasPrefix(normalized, "text/plain")) {
		return "svg", nil
	}

	return "", errors.InvalidFileType(fmt.Sprintf("file content detected as %q is not an allowed image type", normalized))
}

// NewGeneratedName returns a collision-resistant random file name,
// 16 bytes of entropy hex-encoded. The original filename plays no part
// in it, so the final path can never carry traversal sequences.
func NewGeneratedName() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// normalizeMime strips parameters such as "; charset=utf-8".
func normalizeMime(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
