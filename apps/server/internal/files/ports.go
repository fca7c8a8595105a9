package files

import "context"

// FileContent is a file as returned by the content host, already decoded.
type FileContent struct {
	Path    string
	Content string
	SHA     string
}

// UpdateRequest carries a full-file overwrite. SHA must be the blob SHA of the
// version being replaced; the host rejects the update otherwise.
type UpdateRequest struct {
	Message string
	Content string
	SHA     string
}

// ContentStore reads and overwrites single files in one repository.
// Implementations return FileNotFoundError for missing paths and UpstreamError
// when the host refuses a request.
type ContentStore interface {
	GetFile(ctx context.Context, path string) (*FileContent, error)
	UpdateFile(ctx context.Context, path string, req UpdateRequest) (*FileContent, error)
}
