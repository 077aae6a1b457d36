package transition

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/arlevan/deckhand/internal/pptx"
)

// Spec is the validated in-memory description of one slide's transition.
// Durations are milliseconds; second-to-millisecond conversion happens at
// the operation boundary, not here.
//
// When Style is StyleNone the advance fields are ignored by Compile but
// kept verbatim so a Spec round-trips unchanged.
type Spec struct {
	Style         Style
	DurationMs    int
	AutoAdvance   bool
	AutoAdvanceMs int
}

// ErrUnsupportedStyle is returned for a Style value that bypassed
// ParseStyle. Unreachable with validated input.
var ErrUnsupportedStyle = errors.New("unsupported transition style")

// Transition element and attribute names, per ECMA-376 CT_Slide.
const (
	elTransition = "p:transition"
	attrDuration = "dur"
	attrAdvance  = "advTm"
)

// Wire names for the style-specific child element of p:transition.
// Directional defaults are fixed here, not caller-configurable.
var styleChildren = map[Style]func() *pptx.Node{
	StyleFade:     func() *pptx.Node { return pptx.Elem("p:fade") },
	StylePush:     func() *pptx.Node { return pptx.Elem("p:push", pptx.Attr{Name: "dir", Value: "l"}) },
	StyleWipe:     func() *pptx.Node { return pptx.Elem("p:wipe", pptx.Attr{Name: "dir", Value: "r"}) },
	StyleSplit:    func() *pptx.Node { return pptx.Elem("p:split", pptx.Attr{Name: "orient", Value: "horz"}, pptx.Attr{Name: "dir", Value: "in"}) },
	StyleZoom:     func() *pptx.Node { return pptx.Elem("p:zoom") },
	StyleBlinds:   func() *pptx.Node { return pptx.Elem("p:blinds", pptx.Attr{Name: "dir", Value: "horz"}) },
	StyleDissolve: func() *pptx.Node { return pptx.Elem("p:dissolve") },
}

// Maps the wire child tag back to the catalog style.
var childStyles = map[string]Style{
	"p:fade":     StyleFade,
	"p:push":     StylePush,
	"p:wipe":     StyleWipe,
	"p:split":    StyleSplit,
	"p:zoom":     StyleZoom,
	"p:blinds":   StyleBlinds,
	"p:dissolve": StyleDissolve,
}

// Compiled is the output of Compile: either a transition subtree ready
// for insertion, or the tombstone meaning "ensure absence".
type Compiled struct {
	node *pptx.Node
}

// Tombstone reports whether this result removes rather than inserts.
func (c Compiled) Tombstone() bool { return c.node == nil }

// Node returns the compiled subtree, nil for the tombstone.
func (c Compiled) Node() *pptx.Node { return c.node }

// Compile turns a Spec into the exact markup subtree the slide schema
// requires. It is a pure function: equal specs compile to equal trees.
func Compile(spec Spec) (Compiled, error) {
	if spec.Style == StyleNone {
		return Compiled{}, nil
	}
	build, ok := styleChildren[spec.Style]
	if !ok {
		return Compiled{}, fmt.Errorf("%w: %q", ErrUnsupportedStyle, spec.Style)
	}
	n := pptx.Elem(elTransition, pptx.Attr{Name: attrDuration, Value: strconv.Itoa(spec.DurationMs)})
	if spec.AutoAdvance {
		n.SetAttr(attrAdvance, strconv.Itoa(spec.AutoAdvanceMs))
	}
	n.Append(build())
	return Compiled{node: n}, nil
}

// Decode inverts Compile against an existing slide root. It returns the
// spec encoded by the slide's transition node, or false when the slide
// has none (which decodes as StyleNone).
func Decode(slideRoot *pptx.Node) (Spec, bool) {
	n := slideRoot.Child(elTransition)
	if n == nil {
		return Spec{Style: StyleNone}, false
	}
	spec := Spec{Style: StyleNone}
	for _, c := range n.Children {
		if style, ok := childStyles[c.Tag]; ok {
			spec.Style = style
			break
		}
	}
	spec.DurationMs, _ = strconv.Atoi(n.AttrValue(attrDuration))
	if v := n.AttrValue(attrAdvance); v != "" {
		spec.AutoAdvance = true
		spec.AutoAdvanceMs, _ = strconv.Atoi(v)
	}
	return spec, true
}
