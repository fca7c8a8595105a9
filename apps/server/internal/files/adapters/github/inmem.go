package github

import (
	"context"
	"sync"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
	"github.com/tilsley/linkdesk/pkg/gitblob"
)

// Compile-time check: *InMem implements files.ContentStore.
var _ files.ContentStore = (*InMem)(nil)

// Commit records an update accepted by InMem.
type Commit struct {
	Path    string
	Message string
	Content string
	SHA     string // blob SHA after the update
}

// InMem is an in-memory files.ContentStore for unit tests. It enforces the
// same SHA rules as the Contents API: updating an existing file requires its
// current blob SHA.
type InMem struct {
	mu      sync.Mutex
	files   map[string]string // path -> content
	commits []Commit
	calls   int
	err     error
}

// NewInMem creates an empty InMem store.
func NewInMem() *InMem {
	return &InMem{files: make(map[string]string)}
}

// SetFile seeds a file and returns its blob SHA.
func (m *InMem) SetFile(path, content string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	return BlobSHA(content)
}

// FailWith makes every subsequent call return err. Pass nil to reset.
func (m *InMem) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many store operations have been attempted.
func (m *InMem) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Commits returns all updates accepted so far.
func (m *InMem) Commits() []Commit {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Commit, len(m.commits))
	copy(out, m.commits)
	return out
}

// GetFile returns the file at path, or files.FileNotFoundError.
func (m *InMem) GetFile(_ context.Context, path string) (*files.FileContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, files.FileNotFoundError{Path: path}
	}
	return &files.FileContent{Path: path, Content: content, SHA: BlobSHA(content)}, nil
}

// UpdateFile overwrites path when req.SHA matches the current blob SHA, or
// creates it when it does not exist and no SHA is given.
func (m *InMem) UpdateFile(_ context.Context, path string, req files.UpdateRequest) (*files.FileContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	var current *string
	if c, ok := m.files[path]; ok {
		current = &c
	}
	if rej := gitblob.CheckUpdate(path, current, req.SHA); rej != nil {
		return nil, files.UpstreamError{StatusCode: rej.StatusCode, Message: rej.Message}
	}

	m.files[path] = req.Content
	sha := BlobSHA(req.Content)
	m.commits = append(m.commits, Commit{Path: path, Message: req.Message, Content: req.Content, SHA: sha})
	return &files.FileContent{Path: path, Content: req.Content, SHA: sha}, nil
}

// BlobSHA returns the sha the Contents API would report for content.
func BlobSHA(content string) string {
	return gitblob.SHA(content)
}
