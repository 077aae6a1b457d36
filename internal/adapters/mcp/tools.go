package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arlevan/deckhand"
	"github.com/arlevan/deckhand/internal/observability"
	"github.com/arlevan/deckhand/internal/transition"
)

func (s *Server) registerTools() {
	s.registerDocumentTools()
	s.registerContentTools()
	s.registerTransitionTools()
}

// --- document lifecycle ---

func (s *Server) registerDocumentTools() {
	s.addTool(mcp.NewTool("create_presentation",
		mcp.WithDescription("Create a new empty presentation and make it the active document."),
		mcp.WithOutputSchema[Envelope](),
	), "create_presentation", s.handleCreatePresentation)

	s.addTool(mcp.NewTool("open_presentation",
		mcp.WithDescription("Open an existing .pptx file and make it the active document."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the .pptx file")),
		mcp.WithOutputSchema[Envelope](),
	), "open_presentation", s.handleOpenPresentation)

	s.addTool(mcp.NewTool("save_presentation",
		mcp.WithDescription("Save the active presentation. Without file_path, saves to its current file."),
		mcp.WithString("file_path", mcp.Description("Target path (optional)")),
		mcp.WithOutputSchema[Envelope](),
	), "save_presentation", s.handleSavePresentation)

	s.addTool(mcp.NewTool("get_presentation_info",
		mcp.WithDescription("Summarize the active presentation: slide count, shapes and transitions per slide."),
		mcp.WithOutputSchema[Envelope](),
	), "get_presentation_info", s.handleGetPresentationInfo)
}

func (s *Server) addTool(tool mcp.Tool, name string, fn func(args map[string]any) Envelope) {
	s.mcpServer.AddTool(tool, mcp.NewStructuredToolHandler(s.wrap(name, fn)))
}

func (s *Server) handleCreatePresentation(map[string]any) Envelope {
	session, err := deckhand.New(deckhand.WithLogger(s.logger))
	if err != nil {
		return fail(err)
	}
	s.session = session
	return ok("created a new presentation").withData("slide_count", 0)
}

func (s *Server) handleOpenPresentation(args map[string]any) Envelope {
	var req struct {
		FilePath string `mapstructure:"file_path"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if req.FilePath == "" {
		return failCode("InvalidArgument", "file_path is required")
	}
	session, err := deckhand.Open(req.FilePath, deckhand.WithLogger(s.logger))
	if err != nil {
		return fail(err)
	}
	s.session = session
	return okf("opened presentation %s", req.FilePath).withData("slide_count", session.SlideCount())
}

func (s *Server) handleSavePresentation(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		FilePath string `mapstructure:"file_path"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	path, err := session.Save(req.FilePath)
	if err != nil {
		return fail(err)
	}
	return okf("saved presentation to %s", path).withData("file_path", path)
}

func (s *Server) handleGetPresentationInfo(map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	info := session.Info()
	env := okf("presentation has %d slide(s)", info.SlideCount)
	env = env.withData("slide_count", info.SlideCount)
	if info.Path != "" {
		env = env.withData("file_path", info.Path)
	}
	slides := make([]map[string]any, len(info.Slides))
	for i, sl := range info.Slides {
		entry := map[string]any{"index": sl.Index, "shape_count": sl.ShapeCount}
		if sl.Transition != "" {
			entry["transition"] = sl.Transition
		}
		slides[i] = entry
	}
	return env.withData("slides", slides)
}

// --- slide and shape content ---

func (s *Server) registerContentTools() {
	s.addTool(mcp.NewTool("add_slide",
		mcp.WithDescription("Append a blank slide."),
		mcp.WithNumber("layout_index", mcp.Description("Slide layout index (default 0)")),
		mcp.WithOutputSchema[Envelope](),
	), "add_slide", s.handleAddSlide)

	s.addTool(mcp.NewTool("add_title_slide",
		mcp.WithDescription("Append a slide with a centered title and optional subtitle."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title text")),
		mcp.WithString("subtitle", mcp.Description("Subtitle text")),
		mcp.WithOutputSchema[Envelope](),
	), "add_title_slide", s.handleAddTitleSlide)

	s.addTool(mcp.NewTool("add_text_box",
		mcp.WithDescription("Add a text box to a slide. Geometry is in inches."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text content")),
		mcp.WithNumber("left", mcp.Description("Left offset in inches (default 1)")),
		mcp.WithNumber("top", mcp.Description("Top offset in inches (default 1)")),
		mcp.WithNumber("width", mcp.Description("Width in inches (default 8)")),
		mcp.WithNumber("height", mcp.Description("Height in inches (default 1)")),
		mcp.WithNumber("font_size", mcp.Description("Font size in points")),
		mcp.WithString("font_color", mcp.Description("Font color as RRGGBB hex")),
		mcp.WithString("font_name", mcp.Description("Font family name")),
		mcp.WithBoolean("bold", mcp.Description("Bold text")),
		mcp.WithBoolean("italic", mcp.Description("Italic text")),
		mcp.WithOutputSchema[Envelope](),
	), "add_text_box", s.handleAddTextBox)

	s.addTool(mcp.NewTool("add_bullet_points",
		mcp.WithDescription("Add a heading and a bulleted list to a slide."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Heading text")),
		mcp.WithString("bullet_points", mcp.Required(), mcp.Description("JSON array of bullet strings")),
		mcp.WithOutputSchema[Envelope](),
	), "add_bullet_points", s.handleAddBulletPoints)

	s.addTool(mcp.NewTool("add_shape",
		mcp.WithDescription("Add an autoshape to a slide. Geometry is in inches."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("shape_type", mcp.Required(), mcp.Description("One of: "+strings.Join(deckhand.ShapeTypes(), ", "))),
		mcp.WithNumber("left", mcp.Description("Left offset in inches (default 1)")),
		mcp.WithNumber("top", mcp.Description("Top offset in inches (default 1)")),
		mcp.WithNumber("width", mcp.Description("Width in inches (default 3)")),
		mcp.WithNumber("height", mcp.Description("Height in inches (default 1.5)")),
		mcp.WithString("fill_color", mcp.Description("Fill color as RRGGBB hex")),
		mcp.WithOutputSchema[Envelope](),
	), "add_shape", s.handleAddShape)

	s.addTool(mcp.NewTool("add_image",
		mcp.WithDescription("Embed an image file on a slide. Geometry is in inches."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("image_path", mcp.Required(), mcp.Description("Path to the image file")),
		mcp.WithNumber("left", mcp.Description("Left offset in inches (default 1)")),
		mcp.WithNumber("top", mcp.Description("Top offset in inches (default 1)")),
		mcp.WithNumber("width", mcp.Description("Width in inches (default 4)")),
		mcp.WithNumber("height", mcp.Description("Height in inches (default 3)")),
		mcp.WithOutputSchema[Envelope](),
	), "add_image", s.handleAddImage)

	s.addTool(mcp.NewTool("add_table",
		mcp.WithDescription("Add an empty table to a slide. Geometry is in inches."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithNumber("rows", mcp.Required(), mcp.Description("Row count")),
		mcp.WithNumber("cols", mcp.Required(), mcp.Description("Column count")),
		mcp.WithNumber("left", mcp.Description("Left offset in inches (default 1)")),
		mcp.WithNumber("top", mcp.Description("Top offset in inches (default 2)")),
		mcp.WithNumber("width", mcp.Description("Width in inches (default 8)")),
		mcp.WithNumber("height", mcp.Description("Height in inches (default 3)")),
		mcp.WithOutputSchema[Envelope](),
	), "add_table", s.handleAddTable)

	s.addTool(mcp.NewTool("set_table_cell_text",
		mcp.WithDescription("Set the text of one table cell."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithNumber("table_index", mcp.Description("0-based table index on the slide (default 0)")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("0-based row")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("0-based column")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Cell text")),
		mcp.WithOutputSchema[Envelope](),
	), "set_table_cell_text", s.handleSetTableCellText)

	s.addTool(mcp.NewTool("set_slide_background_color",
		mcp.WithDescription("Give a slide a solid background color."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("color", mcp.Required(), mcp.Description("Background color as RRGGBB hex")),
		mcp.WithOutputSchema[Envelope](),
	), "set_slide_background_color", s.handleSetSlideBackgroundColor)

	s.addTool(mcp.NewTool("delete_slide",
		mcp.WithDescription("Delete a slide."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithOutputSchema[Envelope](),
	), "delete_slide", s.handleDeleteSlide)

	s.addTool(mcp.NewTool("move_slide",
		mcp.WithDescription("Move a slide to a new position."),
		mcp.WithNumber("from_index", mcp.Required(), mcp.Description("Current 0-based position")),
		mcp.WithNumber("to_index", mcp.Required(), mcp.Description("Target 0-based position")),
		mcp.WithOutputSchema[Envelope](),
	), "move_slide", s.handleMoveSlide)

	s.addTool(mcp.NewTool("duplicate_slide",
		mcp.WithDescription("Duplicate a slide; the copy lands directly after the original."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithOutputSchema[Envelope](),
	), "duplicate_slide", s.handleDuplicateSlide)

	s.addTool(mcp.NewTool("get_slide_shapes_info",
		mcp.WithDescription("List the shapes on a slide."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithOutputSchema[Envelope](),
	), "get_slide_shapes_info", s.handleGetSlideShapesInfo)
}

type frameArgs struct {
	Left   float64 `mapstructure:"left"`
	Top    float64 `mapstructure:"top"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

func (f frameArgs) frame(defaults deckhand.Frame) deckhand.Frame {
	out := defaults
	if f.Left > 0 {
		out.Left = f.Left
	}
	if f.Top > 0 {
		out.Top = f.Top
	}
	if f.Width > 0 {
		out.Width = f.Width
	}
	if f.Height > 0 {
		out.Height = f.Height
	}
	return out
}

func (s *Server) handleAddSlide(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		LayoutIndex int `mapstructure:"layout_index"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	idx, err := session.AddSlide(req.LayoutIndex)
	if err != nil {
		return fail(err)
	}
	return okf("added slide %d", idx).withData("slide_index", idx)
}

func (s *Server) handleAddTitleSlide(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		Title    string `mapstructure:"title"`
		Subtitle string `mapstructure:"subtitle"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if req.Title == "" {
		return failCode("InvalidArgument", "title is required")
	}
	idx, err := session.AddTitleSlide(req.Title, req.Subtitle)
	if err != nil {
		return fail(err)
	}
	return okf("added title slide %d", idx).withData("slide_index", idx)
}

func (s *Server) handleAddTextBox(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int    `mapstructure:"slide_index"`
		Text       string `mapstructure:"text"`
		FontSize   int    `mapstructure:"font_size"`
		FontColor  string `mapstructure:"font_color"`
		FontName   string `mapstructure:"font_name"`
		Bold       bool   `mapstructure:"bold"`
		Italic     bool   `mapstructure:"italic"`
		frameArgs  `mapstructure:",squash"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	frame := req.frame(deckhand.Frame{Left: 1, Top: 1, Width: 8, Height: 1})
	style := deckhand.TextStyle{
		FontName: req.FontName,
		SizePt:   req.FontSize,
		ColorHex: req.FontColor,
		Bold:     req.Bold,
		Italic:   req.Italic,
	}
	if err := session.AddTextBox(req.SlideIndex, req.Text, frame, style); err != nil {
		return fail(err)
	}
	return okf("added text box to slide %d", req.SlideIndex)
}

func (s *Server) handleAddBulletPoints(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex   int    `mapstructure:"slide_index"`
		Title        string `mapstructure:"title"`
		BulletPoints string `mapstructure:"bullet_points"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	var bullets []string
	if err := json.Unmarshal([]byte(req.BulletPoints), &bullets); err != nil {
		return failCode("InvalidArgument", fmt.Sprintf("bullet_points must be a JSON array of strings: %v", err))
	}
	if err := session.AddBulletPoints(req.SlideIndex, req.Title, bullets); err != nil {
		return fail(err)
	}
	return okf("added %d bullet point(s) to slide %d", len(bullets), req.SlideIndex)
}

func (s *Server) handleAddShape(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int    `mapstructure:"slide_index"`
		ShapeType  string `mapstructure:"shape_type"`
		FillColor  string `mapstructure:"fill_color"`
		frameArgs  `mapstructure:",squash"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	frame := req.frame(deckhand.Frame{Left: 1, Top: 1, Width: 3, Height: 1.5})
	if err := session.AddShape(req.SlideIndex, req.ShapeType, frame, req.FillColor); err != nil {
		return fail(err)
	}
	return okf("added %s to slide %d", req.ShapeType, req.SlideIndex)
}

func (s *Server) handleAddImage(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int    `mapstructure:"slide_index"`
		ImagePath  string `mapstructure:"image_path"`
		frameArgs  `mapstructure:",squash"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	frame := req.frame(deckhand.Frame{Left: 1, Top: 1, Width: 4, Height: 3})
	if err := session.AddImage(req.SlideIndex, req.ImagePath, frame); err != nil {
		return fail(err)
	}
	return okf("added image to slide %d", req.SlideIndex)
}

func (s *Server) handleAddTable(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int `mapstructure:"slide_index"`
		Rows       int `mapstructure:"rows"`
		Cols       int `mapstructure:"cols"`
		frameArgs  `mapstructure:",squash"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	frame := req.frame(deckhand.Frame{Left: 1, Top: 2, Width: 8, Height: 3})
	if err := session.AddTable(req.SlideIndex, req.Rows, req.Cols, frame); err != nil {
		return fail(err)
	}
	return okf("added %dx%d table to slide %d", req.Rows, req.Cols, req.SlideIndex)
}

func (s *Server) handleSetTableCellText(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int    `mapstructure:"slide_index"`
		TableIndex int    `mapstructure:"table_index"`
		Row        int    `mapstructure:"row"`
		Col        int    `mapstructure:"col"`
		Text       string `mapstructure:"text"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if err := session.SetTableCellText(req.SlideIndex, req.TableIndex, req.Row, req.Col, req.Text); err != nil {
		return fail(err)
	}
	return okf("set cell %d,%d on slide %d", req.Row, req.Col, req.SlideIndex)
}

func (s *Server) handleSetSlideBackgroundColor(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int    `mapstructure:"slide_index"`
		Color      string `mapstructure:"color"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if req.Color == "" {
		return failCode("InvalidArgument", "color is required")
	}
	if err := session.SetBackgroundColor(req.SlideIndex, req.Color); err != nil {
		return fail(err)
	}
	return okf("set background of slide %d", req.SlideIndex)
}

func (s *Server) handleDeleteSlide(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int `mapstructure:"slide_index"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if err := session.DeleteSlide(req.SlideIndex); err != nil {
		return fail(err)
	}
	return okf("deleted slide %d", req.SlideIndex).withData("slide_count", session.SlideCount())
}

func (s *Server) handleMoveSlide(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		FromIndex int `mapstructure:"from_index"`
		ToIndex   int `mapstructure:"to_index"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if err := session.MoveSlide(req.FromIndex, req.ToIndex); err != nil {
		return fail(err)
	}
	return okf("moved slide %d to position %d", req.FromIndex, req.ToIndex)
}

func (s *Server) handleDuplicateSlide(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int `mapstructure:"slide_index"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	idx, err := session.DuplicateSlide(req.SlideIndex)
	if err != nil {
		return fail(err)
	}
	return okf("duplicated slide %d", req.SlideIndex).withData("slide_index", idx)
}

func (s *Server) handleGetSlideShapesInfo(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex int `mapstructure:"slide_index"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	shapes, err := session.SlideShapes(req.SlideIndex)
	if err != nil {
		return fail(err)
	}
	return okf("slide %d has %d shape(s)", req.SlideIndex, len(shapes)).withData("shapes", shapes)
}

// --- transitions ---

func (s *Server) registerTransitionTools() {
	s.addTool(mcp.NewTool("add_slide_animation",
		mcp.WithDescription("Set a transition effect on one slide."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("style", mcp.Required(), mcp.Description("One of: "+strings.Join(transition.Styles(), ", "))),
		mcp.WithString("speed", mcp.Description("One of: "+strings.Join(transition.Speeds(), ", ")+" (default medium)")),
		mcp.WithBoolean("auto_advance", mcp.Description("Advance to the next slide automatically")),
		mcp.WithNumber("auto_advance_seconds", mcp.Description("Seconds before auto-advance (requires auto_advance)")),
		mcp.WithOutputSchema[Envelope](),
	), "add_slide_animation", s.handleAddSlideAnimation)

	s.addTool(mcp.NewTool("set_slide_transition",
		mcp.WithDescription("Set a transition with an explicit duration (legacy interface)."),
		mcp.WithNumber("slide_index", mcp.Required(), mcp.Description("0-based slide index")),
		mcp.WithString("style", mcp.Required(), mcp.Description("One of: "+strings.Join(transition.Styles(), ", "))),
		mcp.WithNumber("duration_seconds", mcp.Description("Transition duration in seconds (default 1)")),
		mcp.WithBoolean("advance_on_click", mcp.Description("Accepted for compatibility; click advance is always on")),
		mcp.WithNumber("advance_after_seconds", mcp.Description("Auto-advance after this many seconds (0 = never)")),
		mcp.WithOutputSchema[Envelope](),
	), "set_slide_transition", s.handleSetSlideTransition)

	s.addTool(mcp.NewTool("make_presentation_dynamic",
		mcp.WithDescription("Apply one transition style and speed to every slide."),
		mcp.WithString("style", mcp.Required(), mcp.Description("One of: "+strings.Join(transition.Styles(), ", "))),
		mcp.WithString("speed", mcp.Description("One of: "+strings.Join(transition.Speeds(), ", ")+" (default medium)")),
		mcp.WithOutputSchema[Envelope](),
	), "make_presentation_dynamic", s.handleMakePresentationDynamic)

	s.addTool(mcp.NewTool("make_professional_presentation",
		mcp.WithDescription("Apply the 'professional' preset (fade, medium) to every slide."),
		mcp.WithOutputSchema[Envelope](),
	), "make_professional_presentation", s.presetHandler("professional"))

	s.addTool(mcp.NewTool("add_smooth_transitions",
		mcp.WithDescription("Apply the 'smooth' preset (wipe, slow) to every slide."),
		mcp.WithOutputSchema[Envelope](),
	), "add_smooth_transitions", s.presetHandler("smooth"))

	s.addTool(mcp.NewTool("add_dynamic_effects",
		mcp.WithDescription("Apply the 'dynamic' preset (zoom, fast) to every slide."),
		mcp.WithOutputSchema[Envelope](),
	), "add_dynamic_effects", s.presetHandler("dynamic"))

	s.addTool(mcp.NewTool("get_animation_options",
		mcp.WithDescription("List available transition styles, speeds and presets."),
		mcp.WithOutputSchema[Envelope](),
	), "get_animation_options", s.handleGetAnimationOptions)

	s.addTool(mcp.NewTool("get_available_transitions",
		mcp.WithDescription("List available transition styles (legacy interface)."),
		mcp.WithOutputSchema[Envelope](),
	), "get_available_transitions", s.handleGetAvailableTransitions)
}

// buildSpec validates style and speed names and assembles a Spec.
// Called before any slide is touched.
func buildSpec(styleName, speedName string, autoAdvance bool, autoAdvanceSec float64) (transition.Spec, error) {
	style, err := transition.ParseStyle(styleName)
	if err != nil {
		return transition.Spec{}, err
	}
	if speedName == "" {
		speedName = string(transition.SpeedMedium)
	}
	speed, err := transition.ParseSpeed(speedName)
	if err != nil {
		return transition.Spec{}, err
	}
	ms, err := transition.Resolve(speed)
	if err != nil {
		return transition.Spec{}, err
	}
	spec := transition.Spec{Style: style, DurationMs: ms}
	if autoAdvance {
		spec.AutoAdvance = true
		spec.AutoAdvanceMs = int(autoAdvanceSec * 1000)
	}
	return spec, nil
}

func (s *Server) handleAddSlideAnimation(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex         int     `mapstructure:"slide_index"`
		Style              string  `mapstructure:"style"`
		Speed              string  `mapstructure:"speed"`
		AutoAdvance        bool    `mapstructure:"auto_advance"`
		AutoAdvanceSeconds float64 `mapstructure:"auto_advance_seconds"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if req.AutoAdvance && req.AutoAdvanceSeconds <= 0 {
		return failCode("InvalidArgument", "auto_advance_seconds must be > 0 when auto_advance is set")
	}
	spec, err := buildSpec(req.Style, req.Speed, req.AutoAdvance, req.AutoAdvanceSeconds)
	if err != nil {
		return fail(err)
	}
	if err := session.SetTransition(req.SlideIndex, spec); err != nil {
		observability.TransitionPatches.WithLabelValues("error").Inc()
		return fail(err)
	}
	observability.TransitionPatches.WithLabelValues("success").Inc()
	if spec.Style == transition.StyleNone {
		return okf("removed transition from slide %d", req.SlideIndex)
	}
	return okf("set %s transition on slide %d", spec.Style, req.SlideIndex)
}

func (s *Server) handleSetSlideTransition(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		SlideIndex          int     `mapstructure:"slide_index"`
		Style               string  `mapstructure:"style"`
		DurationSeconds     float64 `mapstructure:"duration_seconds"`
		AdvanceOnClick      bool    `mapstructure:"advance_on_click"`
		AdvanceAfterSeconds float64 `mapstructure:"advance_after_seconds"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	style, err := transition.ParseStyle(req.Style)
	if err != nil {
		return fail(err)
	}
	if req.DurationSeconds <= 0 {
		req.DurationSeconds = 1
	}
	spec := transition.Spec{Style: style, DurationMs: int(req.DurationSeconds * 1000)}
	if req.AdvanceAfterSeconds > 0 {
		spec.AutoAdvance = true
		spec.AutoAdvanceMs = int(req.AdvanceAfterSeconds * 1000)
	}
	if err := session.SetTransition(req.SlideIndex, spec); err != nil {
		observability.TransitionPatches.WithLabelValues("error").Inc()
		return fail(err)
	}
	observability.TransitionPatches.WithLabelValues("success").Inc()
	return okf("set %s transition on slide %d", style, req.SlideIndex)
}

func (s *Server) handleMakePresentationDynamic(args map[string]any) Envelope {
	session, envErr := s.requireSession()
	if envErr != nil {
		return *envErr
	}
	var req struct {
		Style string `mapstructure:"style"`
		Speed string `mapstructure:"speed"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return failCode("InvalidArgument", err.Error())
	}
	if req.Speed == "" {
		req.Speed = string(transition.SpeedMedium)
	}
	spec, err := buildSpec(req.Style, req.Speed, false, 0)
	if err != nil {
		return fail(err)
	}
	outcomes := session.ApplyTransitionToAll(spec)
	return outcomesEnvelope(outcomes, fmt.Sprintf("%s/%s", spec.Style, req.Speed))
}

func (s *Server) presetHandler(name string) func(args map[string]any) Envelope {
	return func(map[string]any) Envelope {
		session, envErr := s.requireSession()
		if envErr != nil {
			return *envErr
		}
		outcomes, err := session.ApplyPreset(name)
		if err != nil {
			return fail(err)
		}
		return outcomesEnvelope(outcomes, name)
	}
}

func outcomesEnvelope(outcomes []transition.Outcome, label string) Envelope {
	failed := 0
	for _, o := range outcomes {
		status := "success"
		if !o.OK() {
			status = "error"
			failed++
		}
		observability.TransitionPatches.WithLabelValues(status).Inc()
	}
	env := okf("applied %s transitions to %d slide(s)", label, len(outcomes))
	if failed > 0 {
		env.Message = fmt.Sprintf("applied %s transitions to %d of %d slide(s); %d failed",
			label, len(outcomes)-failed, len(outcomes), failed)
	}
	return env.withData("outcomes", outcomeData(outcomes))
}

func (s *Server) handleGetAnimationOptions(map[string]any) Envelope {
	return ok("animation options").
		withData("styles", transition.Styles()).
		withData("speeds", transition.Speeds()).
		withData("presets", transition.Presets())
}

func (s *Server) handleGetAvailableTransitions(map[string]any) Envelope {
	return ok("available transitions").withData("styles", transition.Styles())
}
