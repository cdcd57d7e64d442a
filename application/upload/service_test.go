package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"weblarek/config"
	uploaddomain "weblarek/domain/upload"
	"weblarek/infrastructure/storage/local"
	"weblarek/pkg/errors"
)

func testConfig(t *testing.T) config.UploadConfig {
	t.Helper()
	root := t.TempDir()
	return config.UploadConfig{
		Dir:          filepath.Join(root, "images"),
		TempDir:      filepath.Join(root, "temp"),
		PublicPrefix: "images",
		MinFileSize:  2 * 1024,
		MaxFileSize:  10 * 1024 * 1024,
	}
}

// pngPayload is a sniffable PNG: the real signature followed by padding
// to clear the minimum size gate.
func pngPayload(size int) []byte {
	payload := make([]byte, size)
	copy(payload, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return payload
}

func jpegPayload(size int) []byte {
	payload := make([]byte, size)
	copy(payload, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return payload
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAcceptAndCommit(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())
	payload := pngPayload(4 * 1024)

	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/png", int64(len(payload)))
	if err != nil {
		t.Fatalf("Accept() error: %v", err)
	}
	if ticket.State != uploaddomain.StateValidated {
		t.Errorf("ticket state = %q, want validated", ticket.State)
	}
	if ticket.SniffedType != "image/png" {
		t.Errorf("sniffed type = %q, want image/png", ticket.SniffedType)
	}
	if len(dirEntries(t, cfg.TempDir)) != 1 {
		t.Fatalf("staging dir entries = %v, want exactly one", dirEntries(t, cfg.TempDir))
	}

	fileName, err := svc.Commit(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	shape := regexp.MustCompile(`^/images/[0-9a-f]{32}\.png$`)
	if !shape.MatchString(fileName) {
		t.Errorf("public path %q does not match /images/<32 hex>.png", fileName)
	}

	// Staged copy is gone, promoted copy holds the original bytes.
	if got := dirEntries(t, cfg.TempDir); len(got) != 0 {
		t.Errorf("staging dir not empty after commit: %v", got)
	}
	finalName := filepath.Base(fileName)
	stored, err := os.ReadFile(filepath.Join(cfg.Dir, finalName))
	if err != nil {
		t.Fatalf("promoted file missing: %v", err)
	}
	if !bytes.Equal(stored, payload) {
		t.Error("promoted file content differs from upload")
	}
	if ticket.State != uploaddomain.StateCommitted {
		t.Errorf("ticket state = %q, want committed", ticket.State)
	}
}

func TestAcceptExtensionFollowsContent(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())
	payload := jpegPayload(4 * 1024)

	// Declared jpg, sniffed jpeg: stored extension comes from the bytes.
	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/jpg", int64(len(payload)))
	if err != nil {
		t.Fatalf("Accept() error: %v", err)
	}
	fileName, err := svc.Commit(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if filepath.Ext(fileName) != ".jpg" {
		t.Errorf("stored extension = %q, want .jpg", filepath.Ext(fileName))
	}
}

func TestAcceptRejectsTooSmall(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())
	payload := pngPayload(1024)

	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/png", int64(len(payload)))
	if err == nil {
		t.Fatal("undersized upload accepted")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("error code = %v, want VALIDATION_ERROR", err)
	}
	if ticket.State != uploaddomain.StateRejected {
		t.Errorf("ticket state = %q, want rejected", ticket.State)
	}

	// Nothing may remain on disk after a size rejection.
	if got := dirEntries(t, cfg.TempDir); len(got) != 0 {
		t.Errorf("staging dir not empty: %v", got)
	}
	if got := dirEntries(t, cfg.Dir); len(got) != 0 {
		t.Errorf("image dir not empty: %v", got)
	}
}

func TestAcceptRejectsDeclaredType(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())
	payload := pngPayload(4 * 1024)

	_, err := svc.Accept(context.Background(), bytes.NewReader(payload), "application/pdf", int64(len(payload)))
	if err == nil {
		t.Fatal("disallowed declared type accepted")
	}
	if !errors.Is(err, errors.CodeInvalidFileType) {
		t.Errorf("error code = %v, want INVALID_FILE_TYPE", err)
	}
	if got := dirEntries(t, cfg.TempDir); len(got) != 0 {
		t.Errorf("staging dir not empty: %v", got)
	}
}

func TestAcceptRejectsMismatchedContentAndCleansUp(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())

	payload := make([]byte, 4*1024)
	copy(payload, []byte("<html><body>not an image</body></html>"))

	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/png", int64(len(payload)))
	if err == nil {
		t.Fatal("html payload accepted as png")
	}
	if !errors.Is(err, errors.CodeInvalidFileType) {
		t.Errorf("error code = %v, want INVALID_FILE_TYPE", err)
	}
	if ticket.State != uploaddomain.StateRejected {
		t.Errorf("ticket state = %q, want rejected", ticket.State)
	}

	// The payload reached staging before sniffing; it must be cleaned up.
	if got := dirEntries(t, cfg.TempDir); len(got) != 0 {
		t.Errorf("staged file survived rejection: %v", got)
	}
	if got := dirEntries(t, cfg.Dir); len(got) != 0 {
		t.Errorf("image dir not empty: %v", got)
	}
}

func TestAcceptSVG(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())

	payload := make([]byte, 4*1024)
	svg := []byte(`<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	copy(payload, svg)
	for i := len(svg); i < len(payload); i++ {
		payload[i] = ' '
	}

	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/svg+xml", int64(len(payload)))
	if err != nil {
		t.Fatalf("Accept() rejected svg: %v", err)
	}
	fileName, err := svc.Commit(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if filepath.Ext(fileName) != ".svg" {
		t.Errorf("stored extension = %q, want .svg", filepath.Ext(fileName))
	}
}

func TestAcceptDistinctNames(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		payload := pngPayload(4 * 1024)
		ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/png", int64(len(payload)))
		if err != nil {
			t.Fatalf("Accept() error: %v", err)
		}
		fileName, err := svc.Commit(context.Background(), ticket)
		if err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
		if seen[fileName] {
			t.Fatalf("generated public path %q repeated", fileName)
		}
		seen[fileName] = true
	}
}

func TestAbortRemovesStagedFile(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg, local.New())
	payload := pngPayload(4 * 1024)

	ticket, err := svc.Accept(context.Background(), bytes.NewReader(payload), "image/png", int64(len(payload)))
	if err != nil {
		t.Fatalf("Accept() error: %v", err)
	}

	svc.Abort(ticket)

	if got := dirEntries(t, cfg.TempDir); len(got) != 0 {
		t.Errorf("staged file survived abort: %v", got)
	}
	if ticket.State != uploaddomain.StateRejected {
		t.Errorf("ticket state = %q, want rejected", ticket.State)
	}
}
