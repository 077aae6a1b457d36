package deckhand

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arlevan/deckhand/internal/pptx"
)

// Geometry on this API is in inches, matching the caller-facing
// convention; the markup layer converts to EMU.

// Frame is a shape placement in inches.
type Frame struct {
	Left, Top, Width, Height float64
}

func (f Frame) box() pptx.Box {
	return pptx.Inches(f.Left, f.Top, f.Width, f.Height)
}

// TextStyle is the caller-facing run formatting for text operations.
type TextStyle struct {
	FontName string
	SizePt   int
	ColorHex string
	Bold     bool
	Italic   bool
}

func (t TextStyle) options() pptx.TextOptions {
	return pptx.TextOptions{
		FontName: t.FontName,
		SizePt:   t.SizePt,
		ColorHex: t.ColorHex,
		Bold:     t.Bold,
		Italic:   t.Italic,
	}
}

// AddSlide appends a blank slide using the given layout and returns its
// 0-based index.
func (s *Session) AddSlide(layoutIndex int) (int, error) {
	_, idx, err := s.pkg.AddSlide(layoutIndex)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("slide added", "index", idx, "layout", layoutIndex)
	return idx, nil
}

// AddTitleSlide appends a slide carrying centered title and subtitle
// text boxes and returns its index.
func (s *Session) AddTitleSlide(title, subtitle string) (int, error) {
	slide, idx, err := s.pkg.AddSlide(0)
	if err != nil {
		return 0, err
	}
	titleFrame := Frame{Left: 0.8, Top: 1.8, Width: 11.7, Height: 1.6}
	if err := slide.AddTextBox(title, titleFrame.box(), pptx.TextOptions{SizePt: 44, Bold: true}); err != nil {
		return 0, err
	}
	if subtitle != "" {
		subFrame := Frame{Left: 0.8, Top: 3.6, Width: 11.7, Height: 1.0}
		if err := slide.AddTextBox(subtitle, subFrame.box(), pptx.TextOptions{SizePt: 24}); err != nil {
			return 0, err
		}
	}
	return idx, nil
}

// AddTextBox places a text box on the addressed slide.
func (s *Session) AddTextBox(slideIndex int, text string, frame Frame, style TextStyle) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	return slide.AddTextBox(text, frame.box(), style.options())
}

// AddBulletPoints places a heading plus a bulleted list on the
// addressed slide.
func (s *Session) AddBulletPoints(slideIndex int, title string, bullets []string) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	frame := Frame{Left: 0.8, Top: 0.8, Width: 11.7, Height: 5.2}
	return slide.AddBullets(title, bullets, frame.box())
}

// AddShape places an autoshape on the addressed slide. Supported shape
// names are returned by ShapeTypes.
func (s *Session) AddShape(slideIndex int, shapeType string, frame Frame, fillHex string) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	return slide.AddShape(shapeType, frame.box(), fillHex)
}

// ShapeTypes lists the supported autoshape names.
func ShapeTypes() []string { return pptx.ShapeTypes() }

// AddImage embeds an image file on the addressed slide.
func (s *Session) AddImage(slideIndex int, imagePath string, frame Frame) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	ext := strings.TrimPrefix(filepath.Ext(imagePath), ".")
	if ext == "" {
		return fmt.Errorf("image path %q has no extension", imagePath)
	}
	return s.pkg.AddPicture(slide, ext, data, frame.box())
}

// AddTable places an empty rows x cols table on the addressed slide.
func (s *Session) AddTable(slideIndex, rows, cols int, frame Frame) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	return slide.AddTable(rows, cols, frame.box())
}

// SetTableCellText sets one cell's text on the tableIndex-th table of
// the addressed slide.
func (s *Session) SetTableCellText(slideIndex, tableIndex, row, col int, text string) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	return slide.SetTableCellText(tableIndex, row, col, text)
}

// SetBackgroundColor fills the addressed slide's background with a
// solid color ("RRGGBB" or "#RRGGBB").
func (s *Session) SetBackgroundColor(slideIndex int, colorHex string) error {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return err
	}
	return slide.SetBackground(colorHex)
}

// DeleteSlide removes the addressed slide.
func (s *Session) DeleteSlide(slideIndex int) error {
	if err := s.pkg.DeleteSlide(slideIndex); err != nil {
		return err
	}
	s.logger.Debug("slide deleted", "index", slideIndex)
	return nil
}

// MoveSlide moves a slide to a new position, shifting the slides in
// between.
func (s *Session) MoveSlide(from, to int) error {
	return s.pkg.MoveSlide(from, to)
}

// DuplicateSlide clones the addressed slide and returns the copy's
// index (directly after the original).
func (s *Session) DuplicateSlide(slideIndex int) (int, error) {
	_, idx, err := s.pkg.DuplicateSlide(slideIndex)
	if err != nil {
		return 0, err
	}
	return idx, nil
}

// SlideShapes lists the addressed slide's top-level shapes.
func (s *Session) SlideShapes(slideIndex int) ([]pptx.ShapeInfo, error) {
	slide, err := s.pkg.Slide(slideIndex)
	if err != nil {
		return nil, err
	}
	return slide.Shapes()
}
