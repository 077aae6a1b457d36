package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlevan/deckhand/internal/pptx"
)

func TestCompile(t *testing.T) {
	t.Run("wire child per style", func(t *testing.T) {
		cases := []struct {
			style Style
			tag   string
			attrs map[string]string
		}{
			{StyleFade, "p:fade", nil},
			{StylePush, "p:push", map[string]string{"dir": "l"}},
			{StyleWipe, "p:wipe", map[string]string{"dir": "r"}},
			{StyleSplit, "p:split", map[string]string{"orient": "horz", "dir": "in"}},
			{StyleZoom, "p:zoom", nil},
			{StyleBlinds, "p:blinds", map[string]string{"dir": "horz"}},
			{StyleDissolve, "p:dissolve", nil},
		}
		for _, tc := range cases {
			t.Run(string(tc.style), func(t *testing.T) {
				c, err := Compile(Spec{Style: tc.style, DurationMs: 1000})
				require.NoError(t, err)
				require.False(t, c.Tombstone())

				n := c.Node()
				assert.Equal(t, "p:transition", n.Tag)
				assert.Equal(t, "1000", n.AttrValue("dur"))
				assert.False(t, n.HasAttr("advTm"))

				require.Len(t, n.Children, 1)
				child := n.Children[0]
				assert.Equal(t, tc.tag, child.Tag)
				for name, want := range tc.attrs {
					assert.Equal(t, want, child.AttrValue(name))
				}
			})
		}
	})

	t.Run("none compiles to the tombstone", func(t *testing.T) {
		c, err := Compile(Spec{Style: StyleNone, DurationMs: 1000})
		require.NoError(t, err)
		assert.True(t, c.Tombstone())
		assert.Nil(t, c.Node())
	})

	t.Run("auto-advance emits advTm", func(t *testing.T) {
		c, err := Compile(Spec{Style: StyleFade, DurationMs: 500, AutoAdvance: true, AutoAdvanceMs: 3000})
		require.NoError(t, err)
		assert.Equal(t, "3000", c.Node().AttrValue("advTm"))
	})

	t.Run("unvalidated style fails", func(t *testing.T) {
		_, err := Compile(Spec{Style: Style("bounce"), DurationMs: 500})
		assert.ErrorIs(t, err, ErrUnsupportedStyle)
	})

	t.Run("deterministic", func(t *testing.T) {
		spec := Spec{Style: StyleSplit, DurationMs: 2000}
		a, err := Compile(spec)
		require.NoError(t, err)
		b, err := Compile(spec)
		require.NoError(t, err)
		assert.Equal(t, pptx.Marshal(a.Node()), pptx.Marshal(b.Node()))
	})
}

func TestDecode(t *testing.T) {
	root := slideRoot()

	spec := Spec{Style: StyleBlinds, DurationMs: 2000, AutoAdvance: true, AutoAdvanceMs: 5000}
	require.NoError(t, ApplyOne(root, spec))

	got, ok := Decode(root)
	assert.True(t, ok)
	assert.Equal(t, spec, got)

	t.Run("absent transition decodes as none", func(t *testing.T) {
		_, ok := Decode(slideRoot())
		assert.False(t, ok)
	})
}
