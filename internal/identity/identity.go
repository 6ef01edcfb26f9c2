// Package identity classifies user identifiers into the two id spaces that
// coexist in the store: ids issued by the external auth provider and ids
// native to the local user store.
package identity

import "strings"

// ExternalPrefix marks ids issued by the external auth provider.
const ExternalPrefix = "user_"

type Space int

const (
	SpaceUnknown Space = iota
	SpaceLocal
	SpaceExternal
)

func (s Space) String() string {
	switch s {
	case SpaceLocal:
		return "local"
	case SpaceExternal:
		return "external"
	default:
		return "unknown"
	}
}

// IsExternal reports whether id was issued by the external auth provider.
func IsExternal(id string) bool {
	return len(id) > len(ExternalPrefix) && strings.HasPrefix(id, ExternalPrefix)
}

// Classify returns the space of id. isLocal decides whether a non-external id
// is well-formed for the active store; nil accepts any non-empty id.
func Classify(id string, isLocal func(string) bool) Space {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return SpaceUnknown
	case IsExternal(id):
		return SpaceExternal
	case strings.HasPrefix(id, ExternalPrefix):
		return SpaceUnknown
	case isLocal == nil || isLocal(id):
		return SpaceLocal
	default:
		return SpaceUnknown
	}
}
