package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlide(t *testing.T) (*Package, *Slide) {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	s, _, err := p.AddSlide(0)
	require.NoError(t, err)
	return p, s
}

func TestInches(t *testing.T) {
	box := Inches(1, 2, 0.5, 7.5)
	assert.Equal(t, int64(914400), box.Left)
	assert.Equal(t, int64(1828800), box.Top)
	assert.Equal(t, int64(457200), box.Width)
	assert.Equal(t, int64(6858000), box.Height)
}

func TestAddTextBox(t *testing.T) {
	_, s := newSlide(t)
	require.NoError(t, s.AddTextBox("hello", Inches(1, 1, 4, 1), TextOptions{
		SizePt: 24, Bold: true, ColorHex: "#ff0000", FontName: "Arial",
	}))

	tree, err := s.spTree()
	require.NoError(t, err)
	sp := tree.Child("p:sp")
	require.NotNil(t, sp)

	rPr := sp.Child("p:txBody").Child("a:p").Child("a:r").Child("a:rPr")
	require.NotNil(t, rPr)
	assert.Equal(t, "2400", rPr.AttrValue("sz"))
	assert.Equal(t, "1", rPr.AttrValue("b"))
	assert.Equal(t, "FF0000", rPr.Child("a:solidFill").Child("a:srgbClr").AttrValue("val"))
	assert.Equal(t, "Arial", rPr.Child("a:latin").AttrValue("typeface"))

	off := sp.Child("p:spPr").Child("a:xfrm").Child("a:off")
	assert.Equal(t, "914400", off.AttrValue("x"))
}

func TestAddBullets(t *testing.T) {
	_, s := newSlide(t)
	require.NoError(t, s.AddBullets("Agenda", []string{"one", "two", "three"}, Inches(1, 1, 8, 4)))

	tree, err := s.spTree()
	require.NoError(t, err)
	paras := tree.Child("p:sp").Child("p:txBody").FindAll("a:p")
	require.Len(t, paras, 4)

	// Heading carries no bullet; each entry does.
	assert.Nil(t, paras[0].Child("a:pPr"))
	for _, p := range paras[1:] {
		assert.Equal(t, "•", p.Child("a:pPr").Child("a:buChar").AttrValue("char"))
	}
}

func TestAddShape(t *testing.T) {
	_, s := newSlide(t)
	require.NoError(t, s.AddShape("star", Inches(1, 1, 2, 2), "00B050"))

	tree, err := s.spTree()
	require.NoError(t, err)
	spPr := tree.Child("p:sp").Child("p:spPr")
	assert.Equal(t, "star5", spPr.Child("a:prstGeom").AttrValue("prst"))
	assert.Equal(t, "00B050", spPr.Child("a:solidFill").Child("a:srgbClr").AttrValue("val"))

	t.Run("unknown shape type", func(t *testing.T) {
		err := s.AddShape("hexagon", Inches(1, 1, 2, 2), "")
		assert.ErrorIs(t, err, ErrUnknownShapeType)
	})

	t.Run("catalog is sorted", func(t *testing.T) {
		names := ShapeTypes()
		assert.Contains(t, names, "rectangle")
		assert.Contains(t, names, "arrow")
		for i := 1; i < len(names); i++ {
			assert.Less(t, names[i-1], names[i])
		}
	})
}

func TestAddTable(t *testing.T) {
	_, s := newSlide(t)
	require.NoError(t, s.AddTable(2, 3, Inches(1, 2, 6, 2)))

	tree, err := s.spTree()
	require.NoError(t, err)
	tbl := tree.Child("p:graphicFrame").Child("a:graphic").Child("a:graphicData").Child("a:tbl")
	require.NotNil(t, tbl)
	assert.Len(t, tbl.Child("a:tblGrid").FindAll("a:gridCol"), 3)
	rows := tbl.FindAll("a:tr")
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].FindAll("a:tc"), 3)

	t.Run("cell text", func(t *testing.T) {
		require.NoError(t, s.SetTableCellText(0, 1, 2, "Q3"))
		cell := rows[1].FindAll("a:tc")[2]
		assert.Equal(t, "Q3", cell.Child("a:txBody").InnerText())
	})

	t.Run("cell bounds", func(t *testing.T) {
		assert.Error(t, s.SetTableCellText(0, 2, 0, "x"))
		assert.Error(t, s.SetTableCellText(0, 0, 3, "x"))
		assert.Error(t, s.SetTableCellText(1, 0, 0, "x"))
	})

	t.Run("degenerate size", func(t *testing.T) {
		assert.Error(t, s.AddTable(0, 3, Inches(1, 1, 4, 2)))
	})
}

func TestSetBackground(t *testing.T) {
	_, s := newSlide(t)
	require.NoError(t, s.SetBackground("1F4E79"))
	require.NoError(t, s.SetBackground("FFFFFF"))

	cSld := s.Root.Child("p:cSld")
	bgs := cSld.FindAll("p:bg")
	require.Len(t, bgs, 1)
	assert.Equal(t, "p:bg", cSld.Children[0].Tag)
	assert.Equal(t, "FFFFFF", bgs[0].Child("p:bgPr").Child("a:solidFill").Child("a:srgbClr").AttrValue("val"))
}

func TestAddPicture(t *testing.T) {
	p, s := newSlide(t)
	require.NoError(t, p.AddPicture(s, "png", []byte{0x89, 0x50, 0x4E, 0x47}, Inches(2, 2, 4, 3)))

	tree, err := s.spTree()
	require.NoError(t, err)
	pic := tree.Child("p:pic")
	require.NotNil(t, pic)
	rid := pic.Child("p:blipFill").Child("a:blip").AttrValue("r:embed")
	assert.NotEmpty(t, rid)

	rels, err := p.parsePart(slideRelsName(s.PartName))
	require.NoError(t, err)
	var found bool
	for _, rel := range rels.FindAll("Relationship") {
		if rel.AttrValue("Id") == rid {
			found = true
			assert.Equal(t, "../media/image1.png", rel.AttrValue("Target"))
		}
	}
	assert.True(t, found)
}

func TestShapes(t *testing.T) {
	p, s := newSlide(t)
	require.NoError(t, s.AddTextBox("text", Inches(1, 1, 4, 1), TextOptions{}))
	require.NoError(t, s.AddShape("oval", Inches(1, 3, 2, 2), ""))
	require.NoError(t, s.AddTable(1, 1, Inches(5, 3, 3, 1)))
	require.NoError(t, p.AddPicture(s, "jpg", []byte{0xFF, 0xD8}, Inches(8, 3, 3, 2)))

	shapes, err := s.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 4)
	assert.Equal(t, "shape", shapes[0].Kind)
	assert.Equal(t, "text", shapes[0].Text)
	assert.Equal(t, "shape", shapes[1].Kind)
	assert.Equal(t, "table", shapes[2].Kind)
	assert.Equal(t, "picture", shapes[3].Kind)

	ids := map[int]bool{}
	for _, sh := range shapes {
		assert.False(t, ids[sh.ID], "shape id %d reused", sh.ID)
		ids[sh.ID] = true
	}
}
