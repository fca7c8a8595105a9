package main

import (
	"fmt"
	"html"
	"strings"
)

const (
	cellStyle = "padding:10px 16px;border-bottom:1px solid #21262d;"
	headStyle = "padding:10px 16px;text-align:left;font-size:12px;color:#8b949e;border-bottom:1px solid #21262d;font-weight:500;"
)

func renderDashboard(files []fileEntry, commits []commit) string {
	var fileRows strings.Builder
	for _, f := range files {
		fmt.Fprintf(&fileRows, `
        <tr>
          <td style="%s"><code style="color:#79c0ff;">%s</code><div style="font-size:12px;color:#8b949e;">%s</div></td>
          <td style="%sfont-family:monospace;font-size:13px;color:#8b949e;">%s</td>
          <td style="%sfont-size:13px;color:#8b949e;">%d B</td>
        </tr>
        <tr><td colspan="3" style="%s"><pre style="margin:0;font-size:12px;color:#8b949e;white-space:pre-wrap;max-height:240px;overflow:auto;">%s</pre></td></tr>`,
			cellStyle, html.EscapeString(f.Path), html.EscapeString(f.Repo),
			cellStyle, shortSHA(f.SHA),
			cellStyle, f.Size,
			cellStyle, html.EscapeString(f.Content))
	}
	if len(files) == 0 {
		fileRows.WriteString(`<tr><td colspan="3" style="padding:40px 16px;text-align:center;color:#8b949e;">No files.</td></tr>`)
	}

	var commitRows strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&commitRows, `
        <tr>
          <td style="%s">%s</td>
          <td style="%s"><code style="color:#79c0ff;">%s</code></td>
          <td style="%sfont-family:monospace;font-size:13px;color:#8b949e;">%s</td>
          <td style="%sfont-size:13px;color:#8b949e;">%s</td>
        </tr>`,
			cellStyle, html.EscapeString(c.Message),
			cellStyle, html.EscapeString(c.Path),
			cellStyle, shortSHA(c.SHA),
			cellStyle, c.At.Format("15:04:05"))
	}
	if len(commits) == 0 {
		commitRows.WriteString(`<tr><td colspan="4" style="padding:40px 16px;text-align:center;color:#8b949e;">No commits yet. Save a file from the linkdesk editor.</td></tr>`)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>Mock GitHub</title>
  <meta http-equiv="refresh" content="5">
  <style>
    * { margin:0; padding:0; box-sizing:border-box; }
    body { background:#0d1117; color:#c9d1d9; font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif; }
    table { width:100%%; border-collapse:collapse; background:#161b22; border:1px solid #30363d; border-radius:6px; overflow:hidden; margin-bottom:32px; }
    h1 { font-size:20px; font-weight:600; margin-bottom:16px; }
  </style>
</head>
<body>
  <div style="max-width:960px;margin:0 auto;padding:32px 16px;">
    <h1>Files</h1>
    <table>
      <thead><tr><th style="%s">Path</th><th style="%s">SHA</th><th style="%s">Size</th></tr></thead>
      <tbody>%s</tbody>
    </table>
    <h1>Recent commits</h1>
    <table>
      <thead><tr><th style="%s">Message</th><th style="%s">Path</th><th style="%s">Blob</th><th style="%s">Time</th></tr></thead>
      <tbody>%s</tbody>
    </table>
  </div>
</body>
</html>`,
		headStyle, headStyle, headStyle, fileRows.String(),
		headStyle, headStyle, headStyle, headStyle, commitRows.String())
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
