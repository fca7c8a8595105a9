package files

import "fmt"

// Logical keys of the two tracked files. The browser only ever sends these;
// repository paths stay server-side.
const (
	KeyLinks       = "link.yml"
	KeyManualCheck = "manual_check.json"
)

// TrackedFile is one of the fixed files the editor can open.
type TrackedFile struct {
	Key   string // logical name sent by the client
	Label string // shown in the file picker
	Path  string // path inside the configured repository
}

// Document is a tracked file's content at a specific version.
type Document struct {
	File    TrackedFile
	Content string
	SHA     string // blob SHA required to update the file
}

// Registry is the ordered set of tracked files. The first entry is the default
// for reads and writes that name no file, or a file that is not tracked.
type Registry struct {
	files []TrackedFile
}

// NewRegistry builds a registry from files in priority order.
func NewRegistry(files ...TrackedFile) (Registry, error) {
	if len(files) == 0 {
		return Registry{}, fmt.Errorf("registry needs at least one file")
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.Key == "" || f.Path == "" {
			return Registry{}, fmt.Errorf("tracked file %+v: key and path are required", f)
		}
		if seen[f.Key] {
			return Registry{}, fmt.Errorf("tracked file %q registered twice", f.Key)
		}
		seen[f.Key] = true
	}
	out := make([]TrackedFile, len(files))
	copy(out, files)
	return Registry{files: out}, nil
}

// DefaultRegistry returns the link list and the manual-check overrides, with
// the link list as the default file. Both paths are required.
func DefaultRegistry(linksPath, manualCheckPath string) (Registry, error) {
	return NewRegistry(
		TrackedFile{Key: KeyLinks, Label: "Link Config", Path: linksPath},
		TrackedFile{Key: KeyManualCheck, Label: "Manual Check", Path: manualCheckPath},
	)
}

// Resolve maps a logical key to its tracked file, falling back to the default.
// It reports false only for an empty registry.
func (r Registry) Resolve(key string) (TrackedFile, bool) {
	for _, f := range r.files {
		if f.Key == key {
			return f, true
		}
	}
	if len(r.files) == 0 {
		return TrackedFile{}, false
	}
	return r.files[0], true
}

// Files returns the tracked files in registry order.
func (r Registry) Files() []TrackedFile {
	out := make([]TrackedFile, len(r.files))
	copy(out, r.files)
	return out
}

// CommitMessage is the commit message used for edits made through the editor.
func CommitMessage(f TrackedFile) string {
	return fmt.Sprintf("Update %s via web", f.Key)
}
