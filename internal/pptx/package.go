package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Relationship and content types used when registering new parts.
const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

var (
	// ErrInvalidSlideIndex is returned when a slide index is outside the
	// current slide count.
	ErrInvalidSlideIndex = errors.New("slide index out of range")

	// ErrInvalidLayoutIndex is returned when a layout index does not name
	// one of the package's slide layouts.
	ErrInvalidLayoutIndex = errors.New("layout index out of range")
)

// Slide is one slide part: its location in the package and its parsed
// markup tree. The tree is mutated in place by editing operations and
// serialized back on save.
type Slide struct {
	PartName string
	relID    string
	Root     *Node
}

// Package is an open PresentationML package: the raw part map plus the
// parsed presentation-level parts needed to track slide order.
type Package struct {
	parts        map[string][]byte
	slides       []*Slide
	presentation *Node
	presRels     *Node
	contentTypes *Node
}

// New creates an empty in-memory package with one master, one blank
// layout and no slides.
func New() (*Package, error) {
	return fromParts(templateParts())
}

// OpenFile reads a package from disk.
func OpenFile(name string) (*Package, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Open(data)
}

// Open reads a package from bytes.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		parts[f.Name] = b
	}
	return fromParts(parts)
}

func fromParts(parts map[string][]byte) (*Package, error) {
	p := &Package{parts: parts}

	var err error
	if p.contentTypes, err = p.parsePart("[Content_Types].xml"); err != nil {
		return nil, err
	}
	if p.presentation, err = p.parsePart("ppt/presentation.xml"); err != nil {
		return nil, err
	}
	if p.presRels, err = p.parsePart("ppt/_rels/presentation.xml.rels"); err != nil {
		return nil, err
	}

	targets := make(map[string]string) // rId -> target
	for _, rel := range p.presRels.FindAll("Relationship") {
		targets[rel.AttrValue("Id")] = rel.AttrValue("Target")
	}

	idLst := p.presentation.Child("p:sldIdLst")
	if idLst == nil {
		return nil, fmt.Errorf("presentation.xml has no p:sldIdLst")
	}
	for _, id := range idLst.FindAll("p:sldId") {
		rid := id.AttrValue("r:id")
		target, ok := targets[rid]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", rid)
		}
		partName := resolveTarget("ppt/presentation.xml", target)
		root, err := p.parsePart(partName)
		if err != nil {
			return nil, err
		}
		p.slides = append(p.slides, &Slide{PartName: partName, relID: rid, Root: root})
	}
	return p, nil
}

func (p *Package) parsePart(name string) (*Node, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("package missing part %s", name)
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return n, nil
}

// resolveTarget resolves a relationship target relative to the source
// part's directory ("../slideLayouts/x.xml" from "ppt/slides/y.xml").
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// SlideCount returns the number of slides in presentation order.
func (p *Package) SlideCount() int { return len(p.slides) }

// Slides returns the slides in presentation order.
func (p *Package) Slides() []*Slide { return p.slides }

// Slide returns the slide at the 0-based index.
func (p *Package) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d (have %d slides)", ErrInvalidSlideIndex, i, len(p.slides))
	}
	return p.slides[i], nil
}

// LayoutNames returns the layout part names in numeric order. The slice
// index is the layout index used by AddSlide.
func (p *Package) LayoutNames() []string {
	var names []string
	for name := range p.parts {
		if strings.HasPrefix(name, "ppt/slideLayouts/slideLayout") && strings.HasSuffix(name, ".xml") {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return partNumber(names[i]) < partNumber(names[j])
	})
	return names
}

func partNumber(name string) int {
	base := path.Base(name)
	digits := strings.TrimFunc(base, func(r rune) bool { return r < '0' || r > '9' })
	n, _ := strconv.Atoi(digits)
	return n
}

// AddSlide appends a blank slide using the layout at layoutIndex and
// returns its 0-based position.
func (p *Package) AddSlide(layoutIndex int) (*Slide, int, error) {
	layouts := p.LayoutNames()
	if layoutIndex < 0 || layoutIndex >= len(layouts) {
		return nil, 0, fmt.Errorf("%w: %d (have %d layouts)", ErrInvalidLayoutIndex, layoutIndex, len(layouts))
	}

	num := 1
	for name := range p.parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			if n := partNumber(name); n >= num {
				num = n + 1
			}
		}
	}
	partName := fmt.Sprintf("ppt/slides/slide%d.xml", num)

	root, err := Parse([]byte(tmplBlankSlide))
	if err != nil {
		return nil, 0, err
	}

	// Slide part + its relationships to the chosen layout.
	p.parts[partName] = []byte(tmplBlankSlide)
	relTarget := "../" + strings.TrimPrefix(layouts[layoutIndex], "ppt/")
	rels := Elem("Relationships", Attr{"xmlns", "http://schemas.openxmlformats.org/package/2006/relationships"})
	rels.Append(Elem("Relationship",
		Attr{"Id", "rId1"},
		Attr{"Type", relTypeSlideLayout},
		Attr{"Target", relTarget},
	))
	p.parts[slideRelsName(partName)] = Marshal(rels)

	p.addOverride("/"+partName, ctSlide)

	rid := p.addPresRel(relTypeSlide, "slides/"+path.Base(partName))

	idLst := p.presentation.Child("p:sldIdLst")
	maxID := 255
	for _, id := range idLst.FindAll("p:sldId") {
		if v, err := strconv.Atoi(id.AttrValue("id")); err == nil && v > maxID {
			maxID = v
		}
	}
	idLst.Append(Elem("p:sldId", Attr{"id", strconv.Itoa(maxID + 1)}, Attr{"r:id", rid}))

	slide := &Slide{PartName: partName, relID: rid, Root: root}
	p.slides = append(p.slides, slide)
	return slide, len(p.slides) - 1, nil
}

// DeleteSlide removes the slide at the 0-based index along with its
// relationships and content-type registration. Media parts stay.
func (p *Package) DeleteSlide(i int) error {
	s, err := p.Slide(i)
	if err != nil {
		return err
	}

	idLst := p.presentation.Child("p:sldIdLst")
	for idx, id := range idLst.Children {
		if id.Tag == "p:sldId" && id.AttrValue("r:id") == s.relID {
			idLst.Children = append(idLst.Children[:idx], idLst.Children[idx+1:]...)
			break
		}
	}
	for idx, rel := range p.presRels.Children {
		if rel.Tag == "Relationship" && rel.AttrValue("Id") == s.relID {
			p.presRels.Children = append(p.presRels.Children[:idx], p.presRels.Children[idx+1:]...)
			break
		}
	}
	p.removeOverride("/" + s.PartName)
	delete(p.parts, s.PartName)
	delete(p.parts, slideRelsName(s.PartName))

	p.slides = append(p.slides[:i], p.slides[i+1:]...)
	return nil
}

// MoveSlide moves the slide at from to position to, shifting the slides
// in between.
func (p *Package) MoveSlide(from, to int) error {
	if from < 0 || from >= len(p.slides) {
		return fmt.Errorf("%w: %d (have %d slides)", ErrInvalidSlideIndex, from, len(p.slides))
	}
	if to < 0 || to >= len(p.slides) {
		return fmt.Errorf("%w: %d (have %d slides)", ErrInvalidSlideIndex, to, len(p.slides))
	}
	if from == to {
		return nil
	}

	s := p.slides[from]
	p.slides = append(p.slides[:from], p.slides[from+1:]...)
	p.slides = append(p.slides[:to], append([]*Slide{s}, p.slides[to:]...)...)

	// Mirror the new order in p:sldIdLst.
	idLst := p.presentation.Child("p:sldIdLst")
	byRel := make(map[string]*Node, len(idLst.Children))
	for _, id := range idLst.Children {
		byRel[id.AttrValue("r:id")] = id
	}
	reordered := make([]*Node, 0, len(p.slides))
	for _, sl := range p.slides {
		if id, ok := byRel[sl.relID]; ok {
			reordered = append(reordered, id)
		}
	}
	idLst.Children = reordered
	return nil
}

// DuplicateSlide clones the slide at the 0-based index, inserts the copy
// right after it, and returns the copy's position.
func (p *Package) DuplicateSlide(i int) (*Slide, int, error) {
	src, err := p.Slide(i)
	if err != nil {
		return nil, 0, err
	}

	num := 1
	for name := range p.parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			if n := partNumber(name); n >= num {
				num = n + 1
			}
		}
	}
	partName := fmt.Sprintf("ppt/slides/slide%d.xml", num)
	root := src.Root.Clone()
	p.parts[partName] = Marshal(root)
	// The copy shares the original's layout and media relationships.
	if rels, ok := p.parts[slideRelsName(src.PartName)]; ok {
		p.parts[slideRelsName(partName)] = append([]byte(nil), rels...)
	}
	p.addOverride("/"+partName, ctSlide)

	rid := p.addPresRel(relTypeSlide, "slides/"+path.Base(partName))

	idLst := p.presentation.Child("p:sldIdLst")
	maxID := 255
	srcPos := -1
	for idx, id := range idLst.Children {
		if v, err := strconv.Atoi(id.AttrValue("id")); err == nil && v > maxID {
			maxID = v
		}
		if id.AttrValue("r:id") == src.relID {
			srcPos = idx
		}
	}
	idLst.InsertAt(srcPos+1, Elem("p:sldId", Attr{"id", strconv.Itoa(maxID + 1)}, Attr{"r:id", rid}))

	slide := &Slide{PartName: partName, relID: rid, Root: root}
	p.slides = append(p.slides[:i+1], append([]*Slide{slide}, p.slides[i+1:]...)...)
	return slide, i + 1, nil
}

// AddMedia stores an image payload under ppt/media and registers its
// extension's content type. It returns the new part name.
func (p *Package) AddMedia(ext string, data []byte) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	num := 1
	for name := range p.parts {
		if strings.HasPrefix(name, "ppt/media/image") {
			if n := partNumber(name); n >= num {
				num = n + 1
			}
		}
	}
	partName := fmt.Sprintf("ppt/media/image%d.%s", num, ext)
	p.parts[partName] = data
	p.ensureDefault(ext, mediaContentType(ext))
	return partName
}

func mediaContentType(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	default:
		return "image/" + ext
	}
}

// AddRel registers a relationship on the slide's rels part and returns
// the new relationship ID.
func (p *Package) AddRel(s *Slide, relType, target string) (string, error) {
	relsName := slideRelsName(s.PartName)
	rels, err := p.parsePart(relsName)
	if err != nil {
		return "", err
	}
	max := 0
	for _, rel := range rels.FindAll("Relationship") {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.AttrValue("Id"), "rId")); err == nil && n > max {
			max = n
		}
	}
	rid := fmt.Sprintf("rId%d", max+1)
	rels.Append(Elem("Relationship",
		Attr{"Id", rid},
		Attr{"Type", relType},
		Attr{"Target", target},
	))
	p.parts[relsName] = Marshal(rels)
	return rid, nil
}

func slideRelsName(partName string) string {
	return path.Dir(partName) + "/_rels/" + path.Base(partName) + ".rels"
}

func (p *Package) addPresRel(relType, target string) string {
	max := 0
	for _, rel := range p.presRels.FindAll("Relationship") {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.AttrValue("Id"), "rId")); err == nil && n > max {
			max = n
		}
	}
	rid := fmt.Sprintf("rId%d", max+1)
	p.presRels.Append(Elem("Relationship",
		Attr{"Id", rid},
		Attr{"Type", relType},
		Attr{"Target", target},
	))
	return rid
}

func (p *Package) addOverride(partName, contentType string) {
	for _, o := range p.contentTypes.FindAll("Override") {
		if o.AttrValue("PartName") == partName {
			return
		}
	}
	p.contentTypes.Append(Elem("Override",
		Attr{"PartName", partName},
		Attr{"ContentType", contentType},
	))
}

func (p *Package) removeOverride(partName string) {
	for idx, o := range p.contentTypes.Children {
		if o.Tag == "Override" && o.AttrValue("PartName") == partName {
			p.contentTypes.Children = append(p.contentTypes.Children[:idx], p.contentTypes.Children[idx+1:]...)
			return
		}
	}
}

func (p *Package) ensureDefault(ext, contentType string) {
	for _, d := range p.contentTypes.FindAll("Default") {
		if strings.EqualFold(d.AttrValue("Extension"), ext) {
			return
		}
	}
	// Defaults precede Overrides in the part.
	idx := p.contentTypes.ChildIndex("Override")
	n := Elem("Default", Attr{"Extension", ext}, Attr{"ContentType", contentType})
	if idx < 0 {
		p.contentTypes.Append(n)
	} else {
		p.contentTypes.InsertAt(idx, n)
	}
}

// flush serializes every parsed tree back into the part map.
func (p *Package) flush() {
	p.parts["[Content_Types].xml"] = Marshal(p.contentTypes)
	p.parts["ppt/presentation.xml"] = Marshal(p.presentation)
	p.parts["ppt/_rels/presentation.xml.rels"] = Marshal(p.presRels)
	for _, s := range p.slides {
		p.parts[s.PartName] = Marshal(s.Root)
	}
}

// WriteTo writes the package as a zip archive. Part order is
// deterministic: content types first, then lexicographic.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	p.flush()

	names := make([]string, 0, len(p.parts))
	for name := range p.parts {
		if name == "[Content_Types].xml" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	names = append([]string{"[Content_Types].xml"}, names...)

	var count countingWriter
	zw := zip.NewWriter(io.MultiWriter(w, &count))
	for _, name := range names {
		f, err := zw.Create(name)
		if err != nil {
			return count.n, err
		}
		if _, err := f.Write(p.parts[name]); err != nil {
			return count.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return count.n, err
	}
	return count.n, nil
}

// SaveFile writes the package to disk.
func (p *Package) SaveFile(name string) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(b []byte) (int, error) {
	c.n += int64(len(b))
	return len(b), nil
}
