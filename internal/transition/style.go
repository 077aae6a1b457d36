// Package transition compiles transition intent into PresentationML
// markup and splices it into slide parts.
//
// The high-level editing layer never touches transition markup itself:
// callers describe the effect as a Spec (style, duration, advance
// policy), Compile turns it into the exact p:transition subtree the
// schema requires, and Patch installs it at the fixed position in the
// slide tree, replacing whatever transition was there before.
package transition

import (
	"errors"
	"fmt"
)

// Style is one of the closed set of supported transition styles.
// StyleNone is the removal sentinel: compiling it yields the tombstone
// that makes the patcher ensure no transition node is present.
type Style string

const (
	StyleFade     Style = "fade"
	StylePush     Style = "push"
	StyleWipe     Style = "wipe"
	StyleSplit    Style = "split"
	StyleZoom     Style = "zoom"
	StyleBlinds   Style = "blinds"
	StyleDissolve Style = "dissolve"
	StyleNone     Style = "none"
)

// ErrUnknownStyle is returned for a style name outside the catalog.
var ErrUnknownStyle = errors.New("unknown transition style")

var styleOrder = []Style{
	StyleFade, StylePush, StyleWipe, StyleSplit,
	StyleZoom, StyleBlinds, StyleDissolve, StyleNone,
}

// Styles returns all catalog style names in their fixed order.
func Styles() []string {
	out := make([]string, len(styleOrder))
	for i, s := range styleOrder {
		out[i] = string(s)
	}
	return out
}

// ParseStyle validates a style name. The match is exact and
// case-sensitive.
func ParseStyle(name string) (Style, error) {
	for _, s := range styleOrder {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}
