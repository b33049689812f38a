package config

import (
	"github.com/pkg/errors"
)

type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// TargetKind tells which of the mutually exclusive link targets a leaf uses.
type TargetKind int

const (
	TargetRoute TargetKind = iota + 1
	TargetDoc
	TargetHref
)

func (k TargetKind) String() string {
	switch k {
	case TargetRoute:
		return "to"
	case TargetDoc:
		return "docId"
	case TargetHref:
		return "href"
	}
	return "none"
}

type Target struct {
	Kind  TargetKind
	Value string
}

// NavItem is a navbar or footer entry. A leaf carries exactly one Target and no
// children; a dropdown group carries children and no Target.
type NavItem struct {
	Label     string
	Position  Position
	Target    *Target
	SidebarID string
	Items     []NavItem
}

func Route(label, to string) NavItem {
	return NavItem{Label: label, Position: PositionLeft, Target: &Target{Kind: TargetRoute, Value: to}}
}

func Doc(label, docID, sidebarID string) NavItem {
	return NavItem{Label: label, Position: PositionLeft, Target: &Target{Kind: TargetDoc, Value: docID}, SidebarID: sidebarID}
}

func Href(label, url string) NavItem {
	return NavItem{Label: label, Position: PositionLeft, Target: &Target{Kind: TargetHref, Value: url}}
}

func Dropdown(label string, items ...NavItem) NavItem {
	return NavItem{Label: label, Position: PositionLeft, Items: items}
}

// At returns a copy of the item placed at p.
func (n NavItem) At(p Position) NavItem {
	n.Position = p
	return n
}

func (n NavItem) IsGroup() bool {
	return n.Target == nil
}

// Check reports the first shape violation of the item and its children.
func (n NavItem) Check() error {
	if n.Label == "" {
		return errors.New("nav item has no label")
	}
	if n.Position != PositionLeft && n.Position != PositionRight {
		return errors.Errorf("nav item %q: position must be left or right, got %q", n.Label, n.Position)
	}

	if n.IsGroup() {
		if len(n.Items) == 0 {
			return errors.Errorf("dropdown %q has no items", n.Label)
		}
		for _, child := range n.Items {
			if child.IsGroup() {
				return errors.Errorf("dropdown %q: nested dropdown %q is not allowed", n.Label, child.Label)
			}
			if err := child.Check(); err != nil {
				return errors.Wrapf(err, "dropdown %q", n.Label)
			}
		}
		return nil
	}

	if len(n.Items) > 0 {
		return errors.Errorf("nav item %q has both a %s target and children", n.Label, n.Target.Kind)
	}
	if n.Target.Value == "" {
		return errors.Errorf("nav item %q has an empty %s", n.Label, n.Target.Kind)
	}
	switch n.Target.Kind {
	case TargetRoute, TargetDoc, TargetHref:
	default:
		return errors.Errorf("nav item %q has an unknown target kind", n.Label)
	}
	return nil
}

// navItemYAML mirrors the loosely typed item shape used in site config files.
type navItemYAML struct {
	Type      string        `yaml:"type,omitempty"`
	Label     string        `yaml:"label"`
	To        string        `yaml:"to,omitempty"`
	Href      string        `yaml:"href,omitempty"`
	DocID     string        `yaml:"docId,omitempty"`
	SidebarID string        `yaml:"sidebarid,omitempty"`
	Position  string        `yaml:"position,omitempty"`
	Items     []navItemYAML `yaml:"items,omitempty"`
}

func (n *NavItem) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw navItemYAML
	if err := unmarshal(&raw); err != nil {
		return err
	}
	item, err := raw.toNavItem()
	if err != nil {
		return err
	}
	*n = item
	return nil
}

func (n NavItem) MarshalYAML() (interface{}, error) {
	return n.toYAML(), nil
}

func (raw navItemYAML) toNavItem() (NavItem, error) {
	item := NavItem{
		Label:     raw.Label,
		Position:  Position(raw.Position),
		SidebarID: raw.SidebarID,
	}
	if item.Position == "" {
		item.Position = PositionLeft
	}

	var targets []Target
	if raw.To != "" {
		targets = append(targets, Target{Kind: TargetRoute, Value: raw.To})
	}
	if raw.DocID != "" {
		targets = append(targets, Target{Kind: TargetDoc, Value: raw.DocID})
	}
	if raw.Href != "" {
		targets = append(targets, Target{Kind: TargetHref, Value: raw.Href})
	}

	switch raw.Type {
	case "dropdown":
		if len(targets) > 0 {
			return NavItem{}, errors.Errorf("dropdown %q must not have a %s target", raw.Label, targets[0].Kind)
		}
		for _, c := range raw.Items {
			child, err := c.toNavItem()
			if err != nil {
				return NavItem{}, errors.Wrapf(err, "dropdown %q", raw.Label)
			}
			item.Items = append(item.Items, child)
		}
		return item, item.Check()
	case "", "doc", "link", "docLink":
	default:
		return NavItem{}, errors.Errorf("nav item %q has unknown type %q", raw.Label, raw.Type)
	}

	if len(raw.Items) > 0 {
		return NavItem{}, errors.Errorf("nav item %q has items but is not a dropdown", raw.Label)
	}
	if len(targets) != 1 {
		return NavItem{}, errors.Errorf("nav item %q must set exactly one of to, docId, href (got %d)", raw.Label, len(targets))
	}
	if raw.Type == "doc" && targets[0].Kind != TargetDoc {
		return NavItem{}, errors.Errorf("doc item %q must use docId", raw.Label)
	}
	item.Target = &targets[0]

	return item, item.Check()
}

func (n NavItem) toYAML() navItemYAML {
	raw := navItemYAML{
		Label:     n.Label,
		Position:  string(n.Position),
		SidebarID: n.SidebarID,
	}
	if n.IsGroup() {
		raw.Type = "dropdown"
		for _, c := range n.Items {
			raw.Items = append(raw.Items, c.toYAML())
		}
		return raw
	}
	switch n.Target.Kind {
	case TargetRoute:
		raw.To = n.Target.Value
	case TargetDoc:
		raw.Type = "doc"
		raw.DocID = n.Target.Value
	case TargetHref:
		raw.Href = n.Target.Value
	}
	return raw
}
