package pptx

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, p.SlideCount())
	assert.Len(t, p.LayoutNames(), 1)
}

func TestAddSlide(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	slide, idx, err := p.AddSlide(0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "ppt/slides/slide1.xml", slide.PartName)
	assert.NotNil(t, slide.Root.Child("p:cSld"))

	_, idx, err = p.AddSlide(0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, p.SlideCount())

	t.Run("slide ids are unique and ascending", func(t *testing.T) {
		ids := p.presentation.Child("p:sldIdLst").FindAll("p:sldId")
		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0].AttrValue("id"), ids[1].AttrValue("id"))
		assert.NotEqual(t, ids[0].AttrValue("r:id"), ids[1].AttrValue("r:id"))
	})

	t.Run("bad layout index", func(t *testing.T) {
		_, _, err := p.AddSlide(5)
		assert.ErrorIs(t, err, ErrInvalidLayoutIndex)
	})
}

func TestSlideIndexBounds(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	_, _, err = p.AddSlide(0)
	require.NoError(t, err)

	_, err = p.Slide(-1)
	assert.ErrorIs(t, err, ErrInvalidSlideIndex)
	_, err = p.Slide(1)
	assert.ErrorIs(t, err, ErrInvalidSlideIndex)
	_, err = p.Slide(0)
	assert.NoError(t, err)
}

func TestDeleteSlide(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	first, _, err := p.AddSlide(0)
	require.NoError(t, err)
	second, _, err := p.AddSlide(0)
	require.NoError(t, err)

	require.NoError(t, p.DeleteSlide(0))
	assert.Equal(t, 1, p.SlideCount())

	remaining, err := p.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, second.PartName, remaining.PartName)

	_, stillThere := p.parts[first.PartName]
	assert.False(t, stillThere)
	assert.Len(t, p.presentation.Child("p:sldIdLst").Children, 1)
}

func TestMoveSlide(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	var names []string
	for i := 0; i < 3; i++ {
		s, _, err := p.AddSlide(0)
		require.NoError(t, err)
		names = append(names, s.PartName)
	}

	require.NoError(t, p.MoveSlide(0, 2))

	order := func() []string {
		var out []string
		for _, s := range p.Slides() {
			out = append(out, s.PartName)
		}
		return out
	}
	assert.Equal(t, []string{names[1], names[2], names[0]}, order())

	t.Run("id list mirrors the new order", func(t *testing.T) {
		ids := p.presentation.Child("p:sldIdLst").Children
		require.Len(t, ids, 3)
		for i, s := range p.Slides() {
			assert.Equal(t, s.relID, ids[i].AttrValue("r:id"))
		}
	})

	t.Run("same position is a no-op", func(t *testing.T) {
		before := order()
		require.NoError(t, p.MoveSlide(1, 1))
		assert.Equal(t, before, order())
	})

	t.Run("out of range", func(t *testing.T) {
		assert.ErrorIs(t, p.MoveSlide(0, 3), ErrInvalidSlideIndex)
		assert.ErrorIs(t, p.MoveSlide(-1, 0), ErrInvalidSlideIndex)
	})
}

func TestDuplicateSlide(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	src, _, err := p.AddSlide(0)
	require.NoError(t, err)
	_, _, err = p.AddSlide(0)
	require.NoError(t, err)

	require.NoError(t, src.AddTextBox("original", Inches(1, 1, 4, 1), TextOptions{}))

	copy, idx, err := p.DuplicateSlide(0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 3, p.SlideCount())

	shapes, err := copy.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "original", shapes[0].Text)

	// The copy's tree is independent of the original's.
	require.NoError(t, copy.AddTextBox("copy only", Inches(1, 3, 4, 1), TextOptions{}))
	srcShapes, err := src.Shapes()
	require.NoError(t, err)
	assert.Len(t, srcShapes, 1)
}

func TestAddMedia(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	name := p.AddMedia("PNG", []byte{1, 2, 3})
	assert.Equal(t, "ppt/media/image1.png", name)
	name = p.AddMedia("jpg", []byte{4, 5})
	assert.Equal(t, "ppt/media/image2.jpg", name)

	var exts []string
	for _, d := range p.contentTypes.FindAll("Default") {
		exts = append(exts, d.AttrValue("Extension"))
	}
	assert.Contains(t, exts, "png")
	assert.Contains(t, exts, "jpg")
}

func TestWriteToRoundTrip(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	slide, _, err := p.AddSlide(0)
	require.NoError(t, err)
	require.NoError(t, slide.AddTextBox("hello round trip", Inches(1, 1, 6, 1), TextOptions{SizePt: 20}))

	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	reopened, err := Open(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, reopened.SlideCount())

	s, err := reopened.Slide(0)
	require.NoError(t, err)
	shapes, err := s.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "hello round trip", shapes[0].Text)
}

func TestSaveFile(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	_, _, err = p.AddSlide(0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, p.SaveFile(path))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.SlideCount())
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		p, err := New()
		require.NoError(t, err)
		s, _, err := p.AddSlide(0)
		require.NoError(t, err)
		require.NoError(t, s.AddTextBox("same", Inches(1, 1, 4, 1), TextOptions{}))
		var buf bytes.Buffer
		_, err = p.WriteTo(&buf)
		require.NoError(t, err)
		return buf.Bytes()
	}
	assert.Equal(t, build(), build())
}
