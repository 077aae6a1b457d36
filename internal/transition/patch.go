package transition

import (
	"errors"
	"fmt"

	"github.com/arlevan/deckhand/internal/pptx"
)

// ErrMalformedSlideTree is returned when a slide part does not have the
// schema shape the patcher anchors on. Fatal for that slide; the tree is
// left untouched.
var ErrMalformedSlideTree = errors.New("malformed slide tree")

const elContentContainer = "p:cSld"

// Patch installs a compiled transition on a slide root, in place.
//
// Any existing transition node is removed first (matched by tag, not
// position), so repeated application leaves exactly one node. The new
// node goes immediately after the content container; every other sibling
// and all attributes on the root, namespace declarations included, stay
// as they are. For the tombstone the patch stops after the removal.
func Patch(slideRoot *pptx.Node, c Compiled) error {
	anchor := slideRoot.ChildIndex(elContentContainer)
	if anchor < 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedSlideTree, elContentContainer)
	}

	slideRoot.RemoveChildren(elTransition)
	if c.Tombstone() {
		return nil
	}

	// The anchor index may have shifted if a transition preceded cSld
	// in a hand-mangled part; recompute after the removal.
	anchor = slideRoot.ChildIndex(elContentContainer)
	slideRoot.InsertAt(anchor+1, c.node)
	return nil
}

// ApplyOne validates nothing and compiles-then-patches one slide. The
// caller is responsible for having built the Spec through the catalog
// and resolver.
func ApplyOne(slideRoot *pptx.Node, spec Spec) error {
	c, err := Compile(spec)
	if err != nil {
		return err
	}
	return Patch(slideRoot, c)
}

// Outcome is the per-slide result of a batch application.
type Outcome struct {
	Index int
	Err   error
}

// OK reports whether the slide's patch succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// ApplyAll applies one spec to every slide. Slides are attempted
// independently: a failure is recorded in its outcome and the batch
// moves on. The spec compiles once; each slide gets its own copy of the
// subtree so the trees stay exclusively owned.
func ApplyAll(slideRoots []*pptx.Node, spec Spec) []Outcome {
	compiled, cerr := Compile(spec)
	outcomes := make([]Outcome, len(slideRoots))
	for i, root := range slideRoots {
		outcomes[i].Index = i
		if cerr != nil {
			outcomes[i].Err = cerr
			continue
		}
		c := compiled
		if c.node != nil {
			c = Compiled{node: compiled.node.Clone()}
		}
		outcomes[i].Err = Patch(root, c)
	}
	return outcomes
}
