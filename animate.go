package deckhand

import (
	"github.com/arlevan/deckhand/internal/pptx"
	"github.com/arlevan/deckhand/internal/transition"
)

// Transition operations. Validation happens before any mutation: a bad
// style, speed, preset or index leaves every slide untouched. Batch
// application is best-effort per slide; the caller inspects the
// outcomes.

// SetTransition applies one transition spec to the addressed slide.
// StyleNone removes any existing transition.
func (s *Session) SetTransition(slideIndex int, spec transition.Spec) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	if err := transition.ApplyOne(slide.Root, spec); err != nil {
		return err
	}
	s.logger.Debug("transition set", "slide", slideIndex, "style", string(spec.Style), "duration_ms", spec.DurationMs)
	return nil
}

// ApplyTransitionToAll applies one spec to every slide, independently.
// One outcome is returned per slide, in order.
func (s *Session) ApplyTransitionToAll(spec transition.Spec) []transition.Outcome {
	roots := make([]*pptx.Node, 0, s.pkg.SlideCount())
	for _, sl := range s.pkg.Slides() {
		roots = append(roots, sl.Root)
	}
	outcomes := transition.ApplyAll(roots, spec)
	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	s.logger.Debug("transition batch applied",
		"style", string(spec.Style), "slides", len(outcomes), "failed", failed)
	return outcomes
}

// ApplyPreset resolves a named preset and applies it to every slide.
func (s *Session) ApplyPreset(name string) ([]transition.Outcome, error) {
	spec, err := transition.ResolvePreset(name)
	if err != nil {
		return nil, err
	}
	return s.ApplyTransitionToAll(spec), nil
}

// SlideTransition decodes the addressed slide's current transition.
// ok is false when the slide has none.
func (s *Session) SlideTransition(slideIndex int) (transition.Spec, bool, error) {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return transition.Spec{}, false, err
	}
	spec, ok := s.slideTransition(slide)
	return spec, ok, nil
}

func (s *Session) slideTransition(slide *pptx.Slide) (transition.Spec, bool) {
	return transition.Decode(slide.Root)
}
