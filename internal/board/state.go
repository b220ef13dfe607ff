package board

import (
	"fmt"
	"strings"

	"github.com/dyluth/noticeboard/pkg/notice"
)

// Phase is the data state of a board session.
type Phase int

const (
	// PhaseLoading is the initial phase: the collection is unknown.
	PhaseLoading Phase = iota

	// PhaseReady means the first load has resolved, successfully or not.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// View is an immutable copy of the controller state, safe to hand to renderers.
type View struct {
	Phase    Phase
	Messages []notice.Message // nil until a load succeeds
	FormOpen bool
	Banner   string // non-fatal error from the most recent failed operation
}

// Loading reports whether the collection is still unknown.
func (v View) Loading() bool {
	return v.Phase == PhaseLoading
}

// HasBanner reports whether an error banner should be shown.
func (v View) HasBanner() bool {
	return v.Banner != ""
}

// Variant selects which optional capabilities a board exposes.
type Variant string

const (
	// VariantRich exposes the enabled flag and the toggle action
	VariantRich Variant = "rich"

	// VariantSimple has no enabled flag and no toggle action
	VariantSimple Variant = "simple"
)

// ParseVariant converts a config value into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantRich, VariantSimple:
		return v, nil
	case "":
		return VariantRich, nil
	default:
		return "", fmt.Errorf("invalid variant: %s (must be 'rich' or 'simple')", s)
	}
}

// Capabilities returns the optional features of the variant.
func (v Variant) Capabilities() Capabilities {
	if v == VariantSimple {
		return Capabilities{}
	}
	return Capabilities{Toggle: true}
}

// Capabilities lists optional features layered on the base board contract.
type Capabilities struct {
	Toggle bool // enabled flag and POST /api/messages/{id}/toggle
}
