package main

import (
	"path"
	"sort"
	"sync"
	"time"

	"github.com/tilsley/linkdesk/pkg/gitblob"
)

// commit is one accepted PUT, kept for the dashboard.
type commit struct {
	Repo    string
	Path    string
	Message string
	SHA     string // blob SHA of the new content
	Commit  string // commit SHA reported to the client
	At      time.Time
}

// store holds file content keyed by "owner/repo" and path. The sha check and
// the write of a PUT happen under one lock.
type store struct {
	mu      sync.RWMutex
	files   map[string]map[string]string // repo key → path → content
	commits []commit
	now     func() time.Time
}

func newStore() *store {
	return &store{
		files: make(map[string]map[string]string),
		now:   time.Now,
	}
}

func (s *store) setFile(repoKey, p, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[repoKey] == nil {
		s.files[repoKey] = make(map[string]string)
	}
	s.files[repoKey][p] = content
}

func (s *store) getFile(repoKey, p string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[repoKey][p]
	return content, ok
}

// putFile applies the Contents API sha rules and writes content. created is
// true when the file did not exist before.
func (s *store) putFile(repoKey, p, content, sha, message string) (c commit, created bool, rej *gitblob.Rejection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *string
	if existing, ok := s.files[repoKey][p]; ok {
		current = &existing
	}
	if rej := gitblob.CheckUpdate(p, current, sha); rej != nil {
		return commit{}, false, rej
	}

	if s.files[repoKey] == nil {
		s.files[repoKey] = make(map[string]string)
	}
	s.files[repoKey][p] = content

	blob := gitblob.SHA(content)
	c = commit{
		Repo:    repoKey,
		Path:    p,
		Message: message,
		SHA:     blob,
		Commit:  gitblob.SHA(repoKey + "\x00" + p + "\x00" + blob + "\x00" + message + s.now().String()),
		At:      s.now(),
	}
	s.commits = append(s.commits, c)
	return c, current == nil, nil
}

// fileEntry is a row of the dashboard's file table.
type fileEntry struct {
	Repo    string
	Path    string
	Name    string
	SHA     string
	Size    int
	Content string
}

func (s *store) listFiles() []fileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []fileEntry
	for repoKey, files := range s.files {
		for p, content := range files {
			out = append(out, fileEntry{
				Repo:    repoKey,
				Path:    p,
				Name:    path.Base(p),
				SHA:     gitblob.SHA(content),
				Size:    len(content),
				Content: content,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Repo != out[j].Repo {
			return out[i].Repo < out[j].Repo
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// recentCommits returns up to n commits, newest first.
func (s *store) recentCommits(n int) []commit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]commit, 0, min(n, len(s.commits)))
	for i := len(s.commits) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.commits[i])
	}
	return out
}
