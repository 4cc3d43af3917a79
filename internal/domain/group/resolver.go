package group

import (
	"club-roster/internal/domain/member"
	"club-roster/internal/pkg/ptr"
	"club-roster/internal/pkg/textnorm"
)

type Catalog struct {
	GroupID string `json:"groupId"`
	Title   string `json:"title"`
}

// Relation lists the registry-local member ids that belong to a group.
type Relation struct {
	GroupID    string   `json:"groupId"`
	MemberRefs []string `json:"memberRefs"`
}

// Resolution maps a normalized member name to one group title.
type Resolution map[string]string

type Option func(*resolver)

// WithPrecedence ranks titles: a member in several groups keeps the title
// listed earliest. Titles not listed rank below all listed ones; among equal
// ranks the later relation wins.
func WithPrecedence(titles ...string) Option {
	return func(r *resolver) {
		for i, t := range titles {
			key := textnorm.Normalize(t)
			if key == "" {
				continue
			}
			if _, dup := r.rank[key]; !dup {
				r.rank[key] = i
			}
		}
	}
}

type resolver struct {
	rank map[string]int
}

func (r *resolver) better(candidate, current string) bool {
	if len(r.rank) == 0 {
		return true
	}
	c, cok := r.rank[textnorm.Normalize(candidate)]
	p, pok := r.rank[textnorm.Normalize(current)]
	switch {
	case cok && pok:
		return c <= p
	case cok:
		return true
	case pok:
		return false
	default:
		return true
	}
}

// Resolve walks relations in order and assigns each referenced registry
// member the group's title. Without WithPrecedence a member in several groups
// ends up with the last one seen. Unknown group ids and references that do
// not resolve to a registry member are skipped.
func Resolve(catalog []Catalog, relations []Relation, registry []member.RegistryMember, opts ...Option) Resolution {
	r := &resolver{rank: map[string]int{}}
	for _, opt := range opts {
		opt(r)
	}

	titles := make(map[string]string, len(catalog))
	for _, c := range catalog {
		if c.GroupID == "" {
			continue
		}
		titles[c.GroupID] = c.Title
	}

	byID := make(map[string]string, len(registry))
	for _, m := range registry {
		if m.RegistryID == "" {
			continue
		}
		byID[m.RegistryID] = textnorm.Normalize(m.Name)
	}

	out := make(Resolution)
	for _, rel := range relations {
		title, ok := titles[rel.GroupID]
		if !ok || title == "" {
			continue
		}
		for _, ref := range rel.MemberRefs {
			name, ok := byID[ref]
			if !ok || name == "" {
				continue
			}
			if current, seen := out[name]; seen && !r.better(title, current) {
				continue
			}
			out[name] = title
		}
	}
	return out
}

// Apply returns a copy of members with GroupLabel set from the resolution.
// Records whose name has no entry keep a nil label.
func (res Resolution) Apply(members []member.Reconciled) []member.Reconciled {
	out := make([]member.Reconciled, len(members))
	for i, m := range members {
		if title, ok := res[textnorm.Normalize(m.Name)]; ok {
			m.GroupLabel = ptr.Of(title)
		} else {
			m.GroupLabel = nil
		}
		out[i] = m
	}
	return out
}

// Titles returns the distinct titles in first-seen catalog order.
func Titles(catalog []Catalog) []string {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]string, 0, len(catalog))
	for _, c := range catalog {
		if c.Title == "" {
			continue
		}
		if _, ok := seen[c.Title]; ok {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c.Title)
	}
	return out
}
