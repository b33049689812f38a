package config

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SidebarItem is either a doc reference or a labelled category of items.
type SidebarItem struct {
	DocID string
	Label string
	Items []SidebarItem
}

func (s SidebarItem) IsCategory() bool {
	return s.DocID == ""
}

type sidebarCategoryYAML struct {
	Type  string        `yaml:"type"`
	Label string        `yaml:"label"`
	Items []SidebarItem `yaml:"items"`
}

func (s *SidebarItem) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var id string
	if err := unmarshal(&id); err == nil {
		if id == "" {
			return errors.New("sidebar doc id is empty")
		}
		*s = SidebarItem{DocID: id}
		return nil
	}

	var cat sidebarCategoryYAML
	if err := unmarshal(&cat); err != nil {
		return errors.Wrap(err, "sidebar item must be a doc id or a category")
	}
	if cat.Type != "" && cat.Type != "category" {
		return errors.Errorf("sidebar item %q has unknown type %q", cat.Label, cat.Type)
	}
	if cat.Label == "" {
		return errors.New("sidebar category has no label")
	}
	*s = SidebarItem{Label: cat.Label, Items: cat.Items}
	return nil
}

// Sidebars maps a sidebar id to its ordered entries.
type Sidebars map[string][]SidebarItem

func LoadSidebars(filename string) (Sidebars, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var sb Sidebars
	if err := yaml.UnmarshalStrict(data, &sb); err != nil {
		return nil, errors.Wrapf(err, "sidebars %s", filename)
	}
	return sb, nil
}

// DocIDs lists every doc id referenced by the sidebar, in order.
func (sb Sidebars) DocIDs(sidebar string) []string {
	var ids []string
	var walk func(items []SidebarItem)
	walk = func(items []SidebarItem) {
		for _, it := range items {
			if it.IsCategory() {
				walk(it.Items)
				continue
			}
			ids = append(ids, it.DocID)
		}
	}
	walk(sb[sidebar])
	return ids
}

// Find returns the id of the first sidebar (by name) containing docID.
func (sb Sidebars) Find(docID string) (string, bool) {
	names := make([]string, 0, len(sb))
	for name := range sb {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, id := range sb.DocIDs(name) {
			if id == docID {
				return name, true
			}
		}
	}
	return "", false
}
