package friends

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rawSection struct {
	ClassName *string `yaml:"class_name"`
	ClassDesc *string `yaml:"class_desc"`
	LinkList  *[]Link `yaml:"link_list"`
}

// ParseLinks decodes link.yml content.
func ParseLinks(data []byte) ([]Section, error) {
	var raw []rawSection
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse links: %w", err)
	}

	sections := make([]Section, 0, len(raw))
	for _, r := range raw {
		s := Section{ClassName: DefaultClassName, ClassDesc: DefaultClassDesc}
		if r.ClassName != nil {
			s.ClassName = *r.ClassName
		}
		if r.ClassDesc != nil {
			s.ClassDesc = *r.ClassDesc
		}
		if r.LinkList != nil {
			s.HasLinks = true
			s.Links = *r.LinkList
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// LoadLinks reads and decodes the link.yml file at path.
func LoadLinks(path string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read links: %w", err)
	}
	return ParseLinks(data)
}

// LoadManualChecks reads manual_check.json. A missing file means no
// overrides.
func LoadManualChecks(path string) (ManualChecks, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ManualChecks{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manual checks: %w", err)
	}

	checks := ManualChecks{}
	if err := json.Unmarshal(data, &checks); err != nil {
		return nil, fmt.Errorf("parse manual checks: %w", err)
	}
	return checks, nil
}

// URLs returns every link in sections that carry a link_list, without
// duplicates, in first-seen order.
func URLs(sections []Section) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sections {
		if !s.HasLinks {
			continue
		}
		for _, l := range s.Links {
			if l.Link == "" || seen[l.Link] {
				continue
			}
			seen[l.Link] = true
			out = append(out, l.Link)
		}
	}
	return out
}
