package pptx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EMUPerInch converts the caller-facing inch geometry to the EMU values
// the markup carries.
const EMUPerInch = 914400

// Box is a shape frame in EMU.
type Box struct {
	Left, Top, Width, Height int64
}

// Inches builds a Box from inch measurements.
func Inches(left, top, width, height float64) Box {
	return Box{
		Left:   int64(left * EMUPerInch),
		Top:    int64(top * EMUPerInch),
		Width:  int64(width * EMUPerInch),
		Height: int64(height * EMUPerInch),
	}
}

// TextOptions controls run formatting on text-producing operations.
// Zero values fall back to the layout's inherited formatting.
type TextOptions struct {
	FontName string
	SizePt   int
	ColorHex string
	Bold     bool
	Italic   bool
}

// ErrUnknownShapeType is returned for an autoshape name outside the
// supported preset set.
var ErrUnknownShapeType = errors.New("unknown shape type")

// shapePresets maps caller-facing shape names to DrawingML preset
// geometry identifiers.
var shapePresets = map[string]string{
	"rectangle":         "rect",
	"rounded_rectangle": "roundRect",
	"oval":              "ellipse",
	"ellipse":           "ellipse",
	"triangle":          "triangle",
	"diamond":           "diamond",
	"star":              "star5",
	"arrow":             "rightArrow",
}

// ShapeTypes returns the supported autoshape names, ordered.
func ShapeTypes() []string {
	names := make([]string, 0, len(shapePresets))
	for name := range shapePresets {
		names = append(names, name)
	}
	// Stable order for the discovery operation.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// ShapeInfo describes one top-level shape for inspection.
type ShapeInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

func (s *Slide) spTree() (*Node, error) {
	cSld := s.Root.Child("p:cSld")
	if cSld == nil {
		return nil, fmt.Errorf("slide %s has no p:cSld", s.PartName)
	}
	tree := cSld.Child("p:spTree")
	if tree == nil {
		return nil, fmt.Errorf("slide %s has no p:spTree", s.PartName)
	}
	return tree, nil
}

// nextShapeID returns an id unused by any p:cNvPr on the slide.
func (s *Slide) nextShapeID() int {
	max := 1
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Tag == "p:cNvPr" {
			if v, err := strconv.Atoi(n.AttrValue("id")); err == nil && v > max {
				max = v
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Root)
	return max + 1
}

func xfrm(box Box) *Node {
	return Elem("a:xfrm").Append(
		Elem("a:off", Attr{"x", strconv.FormatInt(box.Left, 10)}, Attr{"y", strconv.FormatInt(box.Top, 10)}),
		Elem("a:ext", Attr{"cx", strconv.FormatInt(box.Width, 10)}, Attr{"cy", strconv.FormatInt(box.Height, 10)}),
	)
}

func prstGeom(preset string) *Node {
	return Elem("a:prstGeom", Attr{"prst", preset}).Append(Elem("a:avLst"))
}

func solidFill(hex string) *Node {
	return Elem("a:solidFill").Append(Elem("a:srgbClr", Attr{"val", normalizeHex(hex)}))
}

func normalizeHex(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

func runProps(opts TextOptions) *Node {
	rPr := Elem("a:rPr", Attr{"lang", "en-US"})
	if opts.SizePt > 0 {
		rPr.SetAttr("sz", strconv.Itoa(opts.SizePt*100))
	}
	if opts.Bold {
		rPr.SetAttr("b", "1")
	}
	if opts.Italic {
		rPr.SetAttr("i", "1")
	}
	rPr.SetAttr("dirty", "0")
	if opts.ColorHex != "" {
		rPr.Append(solidFill(opts.ColorHex))
	}
	if opts.FontName != "" {
		rPr.Append(Elem("a:latin", Attr{"typeface", opts.FontName}))
	}
	return rPr
}

func paragraph(text string, opts TextOptions) *Node {
	run := Elem("a:r").Append(runProps(opts), &Node{Tag: "a:t", Text: text})
	return Elem("a:p").Append(run)
}

func textBody(paras ...*Node) *Node {
	body := Elem("p:txBody").Append(
		Elem("a:bodyPr", Attr{"wrap", "square"}, Attr{"rtlCol", "0"}),
		Elem("a:lstStyle"),
	)
	return body.Append(paras...)
}

// AddTextBox appends a free-floating text box to the slide.
func (s *Slide) AddTextBox(text string, box Box, opts TextOptions) error {
	tree, err := s.spTree()
	if err != nil {
		return err
	}
	id := s.nextShapeID()
	sp := Elem("p:sp").Append(
		Elem("p:nvSpPr").Append(
			Elem("p:cNvPr", Attr{"id", strconv.Itoa(id)}, Attr{"name", fmt.Sprintf("TextBox %d", id)}),
			Elem("p:cNvSpPr", Attr{"txBox", "1"}),
			Elem("p:nvPr"),
		),
		Elem("p:spPr").Append(xfrm(box), prstGeom("rect"), Elem("a:noFill")),
		textBody(paragraph(text, opts)),
	)
	tree.Append(sp)
	return nil
}

// AddBullets appends a text box holding a heading paragraph followed by
// one bulleted paragraph per entry.
func (s *Slide) AddBullets(title string, bullets []string, box Box) error {
	tree, err := s.spTree()
	if err != nil {
		return err
	}
	paras := []*Node{paragraph(title, TextOptions{SizePt: 28, Bold: true})}
	for _, b := range bullets {
		p := Elem("a:p").Append(
			Elem("a:pPr", Attr{"lvl", "0"}).Append(Elem("a:buChar", Attr{"char", "•"})),
			Elem("a:r").Append(runProps(TextOptions{SizePt: 18}), &Node{Tag: "a:t", Text: b}),
		)
		paras = append(paras, p)
	}
	id := s.nextShapeID()
	sp := Elem("p:sp").Append(
		Elem("p:nvSpPr").Append(
			Elem("p:cNvPr", Attr{"id", strconv.Itoa(id)}, Attr{"name", fmt.Sprintf("Content %d", id)}),
			Elem("p:cNvSpPr", Attr{"txBox", "1"}),
			Elem("p:nvPr"),
		),
		Elem("p:spPr").Append(xfrm(box), prstGeom("rect"), Elem("a:noFill")),
		textBody(paras...),
	)
	tree.Append(sp)
	return nil
}

// AddShape appends an autoshape with an optional solid fill. The shape
// name must be one of ShapeTypes.
func (s *Slide) AddShape(shapeType string, box Box, fillHex string) error {
	preset, ok := shapePresets[shapeType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShapeType, shapeType)
	}
	tree, err := s.spTree()
	if err != nil {
		return err
	}
	id := s.nextShapeID()
	spPr := Elem("p:spPr").Append(xfrm(box), prstGeom(preset))
	if fillHex != "" {
		spPr.Append(solidFill(fillHex))
	}
	sp := Elem("p:sp").Append(
		Elem("p:nvSpPr").Append(
			Elem("p:cNvPr", Attr{"id", strconv.Itoa(id)}, Attr{"name", fmt.Sprintf("Shape %d", id)}),
			Elem("p:cNvSpPr"),
			Elem("p:nvPr"),
		),
		spPr,
		textBody(Elem("a:p")),
	)
	tree.Append(sp)
	return nil
}

// AddTable appends an empty rows x cols table.
func (s *Slide) AddTable(rows, cols int, box Box) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("table needs at least one row and column, got %dx%d", rows, cols)
	}
	tree, err := s.spTree()
	if err != nil {
		return err
	}

	grid := Elem("a:tblGrid")
	colW := box.Width / int64(cols)
	for c := 0; c < cols; c++ {
		grid.Append(Elem("a:gridCol", Attr{"w", strconv.FormatInt(colW, 10)}))
	}

	tbl := Elem("a:tbl").Append(
		Elem("a:tblPr", Attr{"firstRow", "1"}, Attr{"bandRow", "1"}),
		grid,
	)
	rowH := box.Height / int64(rows)
	for r := 0; r < rows; r++ {
		tr := Elem("a:tr", Attr{"h", strconv.FormatInt(rowH, 10)})
		for c := 0; c < cols; c++ {
			tr.Append(Elem("a:tc").Append(
				Elem("a:txBody").Append(Elem("a:bodyPr"), Elem("a:lstStyle"), Elem("a:p")),
				Elem("a:tcPr"),
			))
		}
		tbl.Append(tr)
	}

	id := s.nextShapeID()
	frame := Elem("p:graphicFrame").Append(
		Elem("p:nvGraphicFramePr").Append(
			Elem("p:cNvPr", Attr{"id", strconv.Itoa(id)}, Attr{"name", fmt.Sprintf("Table %d", id)}),
			Elem("p:cNvGraphicFramePr").Append(Elem("a:graphicFrameLocks", Attr{"noGrp", "1"})),
			Elem("p:nvPr"),
		),
		Elem("p:xfrm").Append(
			Elem("a:off", Attr{"x", strconv.FormatInt(box.Left, 10)}, Attr{"y", strconv.FormatInt(box.Top, 10)}),
			Elem("a:ext", Attr{"cx", strconv.FormatInt(box.Width, 10)}, Attr{"cy", strconv.FormatInt(box.Height, 10)}),
		),
		Elem("a:graphic").Append(
			Elem("a:graphicData", Attr{"uri", "http://schemas.openxmlformats.org/drawingml/2006/table"}).Append(tbl),
		),
	)
	tree.Append(frame)
	return nil
}

// SetTableCellText replaces the text of one cell of the tableIndex-th
// table on the slide.
func (s *Slide) SetTableCellText(tableIndex, row, col int, text string) error {
	tree, err := s.spTree()
	if err != nil {
		return err
	}
	frames := tree.FindAll("p:graphicFrame")
	if tableIndex < 0 || tableIndex >= len(frames) {
		return fmt.Errorf("table index %d out of range (have %d tables)", tableIndex, len(frames))
	}
	graphic := frames[tableIndex].Child("a:graphic")
	if graphic == nil {
		return fmt.Errorf("graphic frame %d holds no table", tableIndex)
	}
	data := graphic.Child("a:graphicData")
	if data == nil || data.Child("a:tbl") == nil {
		return fmt.Errorf("graphic frame %d holds no table", tableIndex)
	}
	rowsN := data.Child("a:tbl").FindAll("a:tr")
	if row < 0 || row >= len(rowsN) {
		return fmt.Errorf("table row %d out of range (have %d rows)", row, len(rowsN))
	}
	cells := rowsN[row].FindAll("a:tc")
	if col < 0 || col >= len(cells) {
		return fmt.Errorf("table column %d out of range (have %d columns)", col, len(cells))
	}
	body := cells[col].Child("a:txBody")
	if body == nil {
		return fmt.Errorf("table cell %d,%d has no text body", row, col)
	}
	body.RemoveChildren("a:p")
	body.Append(paragraph(text, TextOptions{}))
	return nil
}

// SetBackground gives the slide a solid background fill, replacing any
// existing background. p:bg must be the first child of p:cSld.
func (s *Slide) SetBackground(hex string) error {
	cSld := s.Root.Child("p:cSld")
	if cSld == nil {
		return fmt.Errorf("slide %s has no p:cSld", s.PartName)
	}
	cSld.RemoveChildren("p:bg")
	bg := Elem("p:bg").Append(
		Elem("p:bgPr").Append(solidFill(hex), Elem("a:effectLst")),
	)
	cSld.InsertAt(0, bg)
	return nil
}

// AddPicture stores the image as a media part, relates it to the slide
// and places it in the shape tree.
func (p *Package) AddPicture(s *Slide, ext string, data []byte, box Box) error {
	tree, err := s.spTree()
	if err != nil {
		return err
	}
	partName := p.AddMedia(ext, data)
	rid, err := p.AddRel(s, relTypeImage, "../media/"+strings.TrimPrefix(partName, "ppt/media/"))
	if err != nil {
		return err
	}
	id := s.nextShapeID()
	pic := Elem("p:pic").Append(
		Elem("p:nvPicPr").Append(
			Elem("p:cNvPr", Attr{"id", strconv.Itoa(id)}, Attr{"name", fmt.Sprintf("Picture %d", id)}),
			Elem("p:cNvPicPr"),
			Elem("p:nvPr"),
		),
		Elem("p:blipFill").Append(
			Elem("a:blip", Attr{"r:embed", rid}),
			Elem("a:stretch").Append(Elem("a:fillRect")),
		),
		Elem("p:spPr").Append(xfrm(box), prstGeom("rect")),
	)
	tree.Append(pic)
	return nil
}

// Shapes lists the slide's top-level shapes for inspection.
func (s *Slide) Shapes() ([]ShapeInfo, error) {
	tree, err := s.spTree()
	if err != nil {
		return nil, err
	}
	var out []ShapeInfo
	for _, c := range tree.Children {
		var kind, nvPr string
		switch c.Tag {
		case "p:sp":
			kind, nvPr = "shape", "p:nvSpPr"
		case "p:pic":
			kind, nvPr = "picture", "p:nvPicPr"
		case "p:graphicFrame":
			kind, nvPr = "table", "p:nvGraphicFramePr"
		default:
			continue
		}
		info := ShapeInfo{Kind: kind}
		if nv := c.Child(nvPr); nv != nil {
			if cNvPr := nv.Child("p:cNvPr"); cNvPr != nil {
				info.ID, _ = strconv.Atoi(cNvPr.AttrValue("id"))
				info.Name = cNvPr.AttrValue("name")
			}
		}
		if body := c.Child("p:txBody"); body != nil {
			info.Text = strings.TrimSpace(body.InnerText())
		}
		out = append(out, info)
	}
	return out, nil
}
