// Package permission defines the closed capability enumeration and the
// rules that derive a principal's capability set. It is a pure in-memory
// package: no database, network, or token access.
package permission

import (
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/common/cnst"
)

// Capability is a named permission flag controlling access to an action.
type Capability string

const (
	CapAdmin         Capability = "admin"
	CapCreateRelease Capability = "createRelease"
	CapViewRelease   Capability = "viewRelease"
	CapEditRelease   Capability = "editRelease"
	CapDeleteRelease Capability = "deleteRelease"
	CapCreatePeriod  Capability = "createPeriod"
	CapViewPeriod    Capability = "viewPeriod"
	CapEditPeriod    Capability = "editPeriod"
	CapDeletePeriod  Capability = "deletePeriod"
)

// All lists every known capability, admin included.
var All = []Capability{
	CapAdmin,
	CapCreateRelease,
	CapViewRelease,
	CapEditRelease,
	CapDeleteRelease,
	CapCreatePeriod,
	CapViewPeriod,
	CapEditPeriod,
	CapDeletePeriod,
}

// Parse maps a stored capability name to the enum. The second return is
// false for unknown names; callers decide whether to log or skip.
func Parse(name string) (Capability, bool) {
	switch Capability(name) {
	case CapAdmin, CapCreateRelease, CapViewRelease, CapEditRelease, CapDeleteRelease,
		CapCreatePeriod, CapViewPeriod, CapEditPeriod, CapDeletePeriod:
		return Capability(name), true
	default:
		return "", false
	}
}

// Set is an unordered set of capabilities.
type Set map[Capability]struct{}

// NewSet builds a set from the given capabilities.
func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// FullSet returns every capability. Enterprise principals always get this.
func FullSet() Set {
	return NewSet(All...)
}

// MinimalSet is the fallback for users with no group (or an empty group).
func MinimalSet() Set {
	return NewSet(CapCreateRelease, CapViewRelease)
}

// Has reports whether the set grants the capability. Admin implies all.
func (s Set) Has(c Capability) bool {
	if _, ok := s[CapAdmin]; ok {
		return true
	}
	_, ok := s[c]
	return ok
}

// HasAny reports whether the set grants at least one of the capabilities.
func (s Set) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// HasAll reports whether the set grants every one of the capabilities.
func (s Set) HasAll(caps ...Capability) bool {
	for _, c := range caps {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Names returns the capability names in the set, for API responses.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, c := range All {
		if _, ok := s[c]; ok {
			names = append(names, string(c))
		}
	}
	return names
}

// FromNames maps stored capability-name strings to a set. Unknown names
// are a data-integrity signal: they are logged at warn level and skipped.
func FromNames(names []string, logger *zap.Logger) Set {
	s := make(Set, len(names))
	for _, name := range names {
		c, ok := Parse(name)
		if !ok {
			if logger != nil {
				logger.Warn("unknown capability name in group, skipping",
					zap.String("name", name))
			}
			continue
		}
		s[c] = struct{}{}
	}
	return s
}

// Resolve derives the capability set for a principal. Enterprises always
// hold the full set within their own data. Users derive from their group's
// stored capability names; no group or no recognized names falls back to
// the minimal set.
func Resolve(kind cnst.PrincipalKind, groupCapabilities []string, logger *zap.Logger) Set {
	if kind == cnst.PrincipalEnterprise {
		return FullSet()
	}
	s := FromNames(groupCapabilities, logger)
	if len(s) == 0 {
		return MinimalSet()
	}
	return s
}
