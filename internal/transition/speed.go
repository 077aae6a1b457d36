package transition

import (
	"errors"
	"fmt"
)

// Speed is a coarse duration tier.
type Speed string

const (
	SpeedFast   Speed = "fast"
	SpeedMedium Speed = "medium"
	SpeedSlow   Speed = "slow"
)

// ErrUnknownSpeed is returned for a tier outside the three-value set.
var ErrUnknownSpeed = errors.New("unknown transition speed")

// Fixed tier-to-duration table. Pure lookup, no state.
var speedDurations = map[Speed]int{
	SpeedFast:   500,
	SpeedMedium: 1000,
	SpeedSlow:   2000,
}

var speedOrder = []Speed{SpeedFast, SpeedMedium, SpeedSlow}

// Speeds returns the tier names in their fixed order.
func Speeds() []string {
	out := make([]string, len(speedOrder))
	for i, s := range speedOrder {
		out[i] = string(s)
	}
	return out
}

// Resolve maps a tier to its duration in milliseconds.
func Resolve(tier Speed) (int, error) {
	ms, ok := speedDurations[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpeed, tier)
	}
	return ms, nil
}

// ParseSpeed validates a tier name.
func ParseSpeed(name string) (Speed, error) {
	if _, ok := speedDurations[Speed(name)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSpeed, name)
	}
	return Speed(name), nil
}
