package transition

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned for a preset name outside the library.
var ErrUnknownPreset = errors.New("unknown transition preset")

type preset struct {
	name  string
	style Style
	speed Speed
}

// Named shortcuts resolving to full specs. A pure lookup table; none of
// the presets auto-advance.
var presets = []preset{
	{name: "professional", style: StyleFade, speed: SpeedMedium},
	{name: "smooth", style: StyleWipe, speed: SpeedSlow},
	{name: "dynamic", style: StyleZoom, speed: SpeedFast},
}

// Presets returns the preset names in their fixed order.
func Presets() []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.name
	}
	return out
}

// ResolvePreset maps a preset name to the Spec it stands for.
func ResolvePreset(name string) (Spec, error) {
	for _, p := range presets {
		if p.name == name {
			ms, err := Resolve(p.speed)
			if err != nil {
				return Spec{}, err
			}
			return Spec{Style: p.style, DurationMs: ms}, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
