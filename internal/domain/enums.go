package domain

import (
	"fmt"
	"strings"
)

// Direction selects which side of an Entry is used as the lookup key.
type Direction string

const (
	// DirectionSourceToTarget looks words up by Entry.Key and renders Entry.Value.
	DirectionSourceToTarget Direction = "SOURCE_TO_TARGET"
	// DirectionTargetToSource looks words up by Entry.Value and renders Entry.Key.
	DirectionTargetToSource Direction = "TARGET_TO_SOURCE"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionSourceToTarget, DirectionTargetToSource:
		return true
	}
	return false
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == DirectionTargetToSource {
		return DirectionSourceToTarget
	}
	return DirectionTargetToSource
}

// ParseDirection accepts the canonical names plus the short aliases used by
// the REST API and the CLI. An empty string means source to target.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source_to_target", "s2t", "source", "en":
		return DirectionSourceToTarget, nil
	case "target_to_source", "t2s", "target", "pja":
		return DirectionTargetToSource, nil
	}
	return "", NewValidationError("direction", fmt.Sprintf("unknown direction %q", s))
}

// Side names one half of the vocabulary, used for word-list views.
type Side string

const (
	SideSource Side = "SOURCE"
	SideTarget Side = "TARGET"
)

func (s Side) String() string { return string(s) }

func (s Side) IsValid() bool {
	switch s {
	case SideSource, SideTarget:
		return true
	}
	return false
}

// ParseSide parses a word-list side. An empty string means the source side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source", "en":
		return SideSource, nil
	case "target", "pja":
		return SideTarget, nil
	}
	return "", NewValidationError("side", fmt.Sprintf("unknown side %q", s))
}
