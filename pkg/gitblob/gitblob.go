// Package gitblob computes git blob object names and applies the GitHub
// Contents API rules for optimistic-concurrency writes.
package gitblob

import (
	"crypto/sha1" //nolint:gosec // git object names are SHA-1
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
)

// SHA returns the git blob object name for content, which is what the
// Contents API reports as a file's sha.
func SHA(content string) string {
	h := sha1.New() //nolint:gosec // git object names are SHA-1
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// Rejection is the Contents API's answer to a PUT whose sha does not fit the
// file's current state.
type Rejection struct {
	StatusCode int
	Message    string
}

func (r *Rejection) Error() string { return r.Message }

// CheckUpdate applies the PUT /contents rules. current is nil when path does
// not exist. A nil result means the write may proceed.
//
//   - existing file, no sha: 422
//   - existing file, different sha: 409
//   - missing file, any sha: 409
func CheckUpdate(path string, current *string, sha string) *Rejection {
	switch {
	case current != nil && sha == "":
		return &Rejection{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "Invalid request.\n\n\"sha\" wasn't supplied.",
		}
	case current != nil && sha != SHA(*current), current == nil && sha != "":
		return &Rejection{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("%s does not match %s", path, sha),
		}
	}
	return nil
}
