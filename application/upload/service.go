/*
Package upload orchestrates the upload lifecycle: validate the payload,
stage it, and promote it to permanent storage under a generated name.
A file becomes visible at its final path only after passing every
validation gate; staged bytes are removed on any rejection or failure.
*/
package upload

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"weblarek/config"
	uploaddomain "weblarek/domain/upload"
	apperrors "weblarek/pkg/errors"
	"weblarek/pkg/logger"

	"go.uber.org/zap"
)

// Storage is the filesystem port the pipeline writes through.
type Storage interface {
	Write(path string, data []byte) error
	Move(from, to string) error
	Delete(path string) error
	Exists(path string) bool
}

// Service runs upload tickets through their lifecycle.
type Service struct {
	cfg   config.UploadConfig
	store Storage
}

// NewService creates the upload service. All directories and limits come
// from the injected configuration, never from ambient process state.
func NewService(cfg config.UploadConfig, store Storage) *Service {
	return &Service{cfg: cfg, store: store}
}

// Accept validates and stages one incoming payload. On success the
// returned ticket is staged and carries the final path the commit will
// promote it to. On rejection after staging the staged bytes are
// already removed.
func (s *Service) Accept(ctx context.Context, r io.Reader, declaredType string, size int64) (*uploaddomain.Ticket, error) {
	ticket := &uploaddomain.Ticket{
		DeclaredType: declaredType,
		Size:         size,
		State:        uploaddomain.StateReceived,
	}

	if err := uploaddomain.ValidateSize(size, s.cfg.MinFileSize, s.cfg.MaxFileSize); err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, err
	}
	if err := uploaddomain.ValidateDeclared(declaredType); err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxFileSize+1))
	if err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, apperrors.Storage(err, "failed to read upload")
	}

	// The declared size is caller-supplied; the byte count is the truth.
	ticket.Size = int64(len(data))
	if err := uploaddomain.ValidateSize(ticket.Size, s.cfg.MinFileSize, s.cfg.MaxFileSize); err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, err
	}

	name, err := uploaddomain.NewGeneratedName()
	if err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, apperrors.Storage(err, "failed to stage upload")
	}
	ticket.GeneratedName = name
	ticket.StagingPath = filepath.Join(s.cfg.TempDir, name)

	if err := s.store.Write(ticket.StagingPath, data); err != nil {
		ticket.State = uploaddomain.StateRejected
		return ticket, apperrors.Storage(err, "failed to stage upload")
	}
	ticket.State = uploaddomain.StateStaged

	ticket.SniffedType = http.DetectContentType(data)
	ext, err := uploaddomain.ExtensionFor(declaredType, ticket.SniffedType)
	if err != nil {
		s.discard(ticket)
		return ticket, err
	}

	ticket.GeneratedName = name + "." + ext
	ticket.FinalPath = filepath.Join(s.cfg.Dir, ticket.GeneratedName)
	ticket.State = uploaddomain.StateValidated
	return ticket, nil
}

// Commit promotes a staged ticket to permanent storage and returns the
// public path handed back to the caller. The original filename never
// appears in it.
func (s *Service) Commit(ctx context.Context, ticket *uploaddomain.Ticket) (string, error) {
	if err := s.store.Move(ticket.StagingPath, ticket.FinalPath); err != nil {
		s.discard(ticket)
		return "", apperrors.Storage(err, "failed to save file")
	}
	ticket.State = uploaddomain.StateCommitted
	return "/" + s.cfg.PublicPrefix + "/" + ticket.GeneratedName, nil
}

// Abort removes whatever the ticket staged. Used when the surrounding
// request fails after Accept.
func (s *Service) Abort(ticket *uploaddomain.Ticket) {
	s.discard(ticket)
}

// discard deletes staged bytes best-effort. Cleanup failures are logged,
// never propagated, so they cannot mask the original error.
func (s *Service) discard(ticket *uploaddomain.Ticket) {
	ticket.State = uploaddomain.StateRejected
	if ticket.StagingPath == "" {
		return
	}
	// Reconstructed from configuration on purpose: the staging path is
	// always cfg.TempDir plus the generated name, never a value taken
	// from an upstream library.
	if err := s.store.Delete(ticket.StagingPath); err != nil {
		logger.Warn("Failed to clean up staged upload",
			zap.String("path", ticket.StagingPath),
			zap.Error(err))
	}
}
