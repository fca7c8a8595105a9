package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/linkdesk/apps/linkcheck/internal/friends"
)

func TestRun_WritesReport(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/up" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer site.Close()

	dir := t.TempDir()
	links := filepath.Join(dir, "link.yml")
	manual := filepath.Join(dir, "manual_check.json")
	out := filepath.Join(dir, "public", "check_links.json")

	require.NoError(t, os.WriteFile(links, []byte(`
- class_name: 友情链接
  class_desc: d
  link_list:
    - {name: Up, link: "`+site.URL+`/up", avatar: a, descr: d}
    - {name: Down, link: "`+site.URL+`/down", avatar: a, descr: d}
    - {name: Held, link: "`+site.URL+`/held", avatar: a, descr: d}
`), 0o600))
	require.NoError(t, os.WriteFile(manual, []byte(`{"`+site.URL+`/held":"暂停"}`), 0o600))

	err := newApp().Run([]string{"linkcheck", "--links", links, "--manual", manual, "--out", out, "--log-level", "error"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report []friends.ReportSection
	require.NoError(t, json.Unmarshal(data, &report))

	require.Len(t, report, 2)
	statuses := map[string]string{}
	for _, l := range report[0].LinkList {
		statuses[l.Name] = l.Status
	}
	assert.Equal(t, map[string]string{"Up": "正常", "Down": "不可访问", "Held": "暂停"}, statuses)
	assert.Equal(t, friends.UnreachableClassName, report[1].ClassName)
	require.Len(t, report[1].LinkList, 1)
	assert.Equal(t, "Down", report[1].LinkList[0].Name)
}

func TestRun_MissingLinksFile(t *testing.T) {
	err := newApp().Run([]string{"linkcheck", "--links", filepath.Join(t.TempDir(), "nope.yml"), "--log-level", "error"})
	assert.Error(t, err)
}

func TestRun_CancelledKeepsExistingReport(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer site.Close()

	dir := t.TempDir()
	links := filepath.Join(dir, "link.yml")
	out := filepath.Join(dir, "check_links.json")
	previous := []byte(`[{"class_name":"友情链接","class_desc":"d","link_list":[]}]`)

	require.NoError(t, os.WriteFile(links, []byte(`
- class_name: 友情链接
  class_desc: d
  link_list:
    - {name: Up, link: "`+site.URL+`/up", avatar: a, descr: d}
`), 0o600))
	require.NoError(t, os.WriteFile(out, previous, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newApp().RunContext(ctx, []string{
		"linkcheck", "--links", links, "--manual", filepath.Join(dir, "none.json"), "--out", out, "--log-level", "error",
	})
	require.ErrorIs(t, err, context.Canceled)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, previous, data, "an interrupted run must not overwrite the last report")
}
