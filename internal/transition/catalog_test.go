package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleCatalog(t *testing.T) {
	assert.Equal(t, []string{"fade", "push", "wipe", "split", "zoom", "blinds", "dissolve", "none"}, Styles())

	t.Run("every catalog name parses", func(t *testing.T) {
		for _, name := range Styles() {
			style, err := ParseStyle(name)
			require.NoError(t, err)
			assert.Equal(t, name, string(style))
		}
	})

	t.Run("unknown style is rejected", func(t *testing.T) {
		_, err := ParseStyle("bounce")
		assert.ErrorIs(t, err, ErrUnknownStyle)
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		_, err := ParseStyle("Fade")
		assert.ErrorIs(t, err, ErrUnknownStyle)
	})
}

func TestSpeedTiers(t *testing.T) {
	assert.Equal(t, []string{"fast", "medium", "slow"}, Speeds())

	cases := map[Speed]int{
		SpeedFast:   500,
		SpeedMedium: 1000,
		SpeedSlow:   2000,
	}
	for tier, want := range cases {
		ms, err := Resolve(tier)
		require.NoError(t, err)
		assert.Equal(t, want, ms)
	}

	t.Run("unknown tier is rejected", func(t *testing.T) {
		_, err := Resolve(Speed("warp"))
		assert.ErrorIs(t, err, ErrUnknownSpeed)
		_, err = ParseSpeed("warp")
		assert.ErrorIs(t, err, ErrUnknownSpeed)
	})
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"professional", "smooth", "dynamic"}, Presets())

	cases := []struct {
		name  string
		style Style
		ms    int
	}{
		{"professional", StyleFade, 1000},
		{"smooth", StyleWipe, 2000},
		{"dynamic", StyleZoom, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ResolvePreset(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.style, spec.Style)
			assert.Equal(t, tc.ms, spec.DurationMs)
			assert.False(t, spec.AutoAdvance)
		})
	}

	t.Run("unknown preset is rejected", func(t *testing.T) {
		_, err := ResolvePreset("cinematic")
		assert.ErrorIs(t, err, ErrUnknownPreset)
	})
}
