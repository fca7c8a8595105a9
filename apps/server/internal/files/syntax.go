package files

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// checkSyntax parses content in the format implied by the file's extension.
// Files with other extensions are accepted as-is.
func checkSyntax(f TrackedFile, content string) error {
	switch strings.ToLower(path.Ext(f.Path)) {
	case ".yml", ".yaml":
		var v any
		if err := yaml.Unmarshal([]byte(content), &v); err != nil {
			return InvalidContentError{Path: f.Path, Err: fmt.Errorf("invalid YAML: %w", err)}
		}
	case ".json":
		var v any
		if err := json.Unmarshal([]byte(content), &v); err != nil {
			return InvalidContentError{Path: f.Path, Err: fmt.Errorf("invalid JSON: %w", err)}
		}
	}
	return nil
}
