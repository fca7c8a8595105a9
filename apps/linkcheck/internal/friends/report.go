package friends

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BuildReport annotates every link with its status. A non-empty manual
// override wins; otherwise the link is StatusUnreachable when it is in
// unreachable and StatusOK when not. Links whose final status is
// StatusUnreachable are repeated in a trailing section, which is omitted when
// empty.
func BuildReport(sections []Section, manual ManualChecks, unreachable map[string]bool) []ReportSection {
	report := make([]ReportSection, 0, len(sections)+1)
	broken := ReportSection{
		ClassName: UnreachableClassName,
		ClassDesc: UnreachableClassDesc,
		LinkList:  []ReportLink{},
	}

	for _, s := range sections {
		if !s.HasLinks {
			continue
		}
		out := ReportSection{
			ClassName: s.ClassName,
			ClassDesc: s.ClassDesc,
			LinkList:  make([]ReportLink, 0, len(s.Links)),
		}
		for _, l := range s.Links {
			status := manual[l.Link]
			if status == "" {
				status = StatusOK
				if unreachable[l.Link] {
					status = StatusUnreachable
				}
			}

			entry := ReportLink{Name: l.Name, Link: l.Link, Avatar: l.Avatar, Descr: l.Descr, Status: status}
			out.LinkList = append(out.LinkList, entry)
			if status == StatusUnreachable {
				broken.LinkList = append(broken.LinkList, entry)
			}
		}
		report = append(report, out)
	}

	if len(broken.LinkList) > 0 {
		report = append(report, broken)
	}
	return report
}

// WriteReport writes report to path as 4-space indented JSON, creating the
// parent directory. Non-ASCII and HTML characters are written as-is. The
// report is written to a temporary file in the same directory and renamed
// over path, so a failed write leaves any existing report intact.
func WriteReport(path string, report []ReportSection) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".check_links-*.json")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(report); err != nil {
		_ = f.Close() //nolint:errcheck // encode error wins
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}
