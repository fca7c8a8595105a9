// Package friends reads a blog's friend-link config and builds the
// reachability report published next to it.
package friends

// Link statuses written to the report. Any other value comes from a manual
// override.
const (
	StatusOK          = "正常"
	StatusUnreachable = "不可访问"
)

// Defaults for sections missing their name or description.
const (
	DefaultClassName = "未知类别"
	DefaultClassDesc = "无描述"
)

// The trailing section that gathers every unreachable link.
const (
	UnreachableClassName = "友链异常区域"
	UnreachableClassDesc = "会手动检查"
)

// Link is one friend entry in link.yml.
type Link struct {
	Name   string `yaml:"name"`
	Link   string `yaml:"link"`
	Avatar string `yaml:"avatar"`
	Descr  string `yaml:"descr"`
}

// Section is a group of links in link.yml. HasLinks distinguishes a section
// with an empty link_list from one without the key at all; only the former
// appears in the report.
type Section struct {
	ClassName string
	ClassDesc string
	Links     []Link
	HasLinks  bool
}

// ManualChecks maps a link URL to a status that overrides the probe result.
type ManualChecks map[string]string

// ReportLink is a Link annotated with its status.
type ReportLink struct {
	Name   string `json:"name"`
	Link   string `json:"link"`
	Avatar string `json:"avatar"`
	Descr  string `json:"descr"`
	Status string `json:"status"`
}

// ReportSection is one section of check_links.json.
type ReportSection struct {
	ClassName string       `json:"class_name"`
	ClassDesc string       `json:"class_desc"`
	LinkList  []ReportLink `json:"link_list"`
}
