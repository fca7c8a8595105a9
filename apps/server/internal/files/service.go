package files

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

// Options tunes the Service.
type Options struct {
	// Password is the shared write secret. It is compared server-side only.
	Password string
	// ValidateSyntax rejects commits whose content does not parse as YAML or
	// JSON (by file extension) before the content host is contacted.
	ValidateSyntax bool
}

// Service implements the editor's read and write use cases on top of a
// ContentStore. It depends only on port interfaces.
type Service struct {
	store    ContentStore
	registry Registry
	opts     Options
	metrics  instruments
}

// NewService creates a new Service.
func NewService(store ContentStore, registry Registry, opts Options) *Service {
	return &Service{
		store:    store,
		registry: registry,
		opts:     opts,
		metrics:  newInstruments(),
	}
}

// CommitRequest is an overwrite submitted from the editor.
type CommitRequest struct {
	Key      string
	Content  string
	SHA      string
	Password string
}

// Files lists the tracked files in registry order.
func (s *Service) Files() []TrackedFile {
	return s.registry.Files()
}

// Unlock checks a password against the shared secret.
func (s *Service) Unlock(password string) error {
	if !s.passwordMatches(password) {
		return ErrIncorrectPassword
	}
	return nil
}

// Get fetches the current content and SHA of the file named by key.
func (s *Service) Get(ctx context.Context, key string) (*Document, error) {
	f, ok := s.registry.Resolve(key)
	if !ok {
		return nil, ErrNoTrackedFiles
	}

	fc, err := s.store.GetFile(ctx, f.Path)
	if err != nil {
		var notFound FileNotFoundError
		if errors.As(err, &notFound) {
			s.metrics.read(ctx, f.Key, outcomeNotFound)
			return nil, err
		}
		s.metrics.read(ctx, f.Key, outcomeError)
		return nil, fmt.Errorf("get %s: %w", f.Path, err)
	}

	s.metrics.read(ctx, f.Key, outcomeOK)
	return &Document{File: f, Content: fc.Content, SHA: fc.SHA}, nil
}

// Commit overwrites the file named by req.Key with req.Content, provided the
// password matches and req.SHA is the file's current version. The returned
// document carries the SHA of the new version.
func (s *Service) Commit(ctx context.Context, req CommitRequest) (*Document, error) {
	f, ok := s.registry.Resolve(req.Key)
	if !ok {
		return nil, ErrNoTrackedFiles
	}

	if !s.passwordMatches(req.Password) {
		s.metrics.commit(ctx, f.Key, outcomeForbidden)
		return nil, ErrIncorrectPassword
	}

	if s.opts.ValidateSyntax {
		if err := checkSyntax(f, req.Content); err != nil {
			s.metrics.commit(ctx, f.Key, outcomeInvalid)
			return nil, err
		}
	}

	fc, err := s.store.UpdateFile(ctx, f.Path, UpdateRequest{
		Message: CommitMessage(f),
		Content: req.Content,
		SHA:     req.SHA,
	})
	if err != nil {
		var upstream UpstreamError
		if errors.As(err, &upstream) {
			s.metrics.commit(ctx, f.Key, outcomeRejected)
			return nil, err
		}
		s.metrics.commit(ctx, f.Key, outcomeError)
		return nil, fmt.Errorf("update %s: %w", f.Path, err)
	}

	s.metrics.commit(ctx, f.Key, outcomeOK)
	return &Document{File: f, Content: req.Content, SHA: fc.SHA}, nil
}

func (s *Service) passwordMatches(candidate string) bool {
	// An empty configured secret never matches; main refuses to start without one.
	if s.opts.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.opts.Password)) == 1
}
