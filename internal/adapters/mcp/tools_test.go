package mcp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlevan/deckhand/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(logging.NewNop())
}

func openDeck(t *testing.T, s *Server, slides int) {
	t.Helper()
	env := s.handleCreatePresentation(nil)
	require.True(t, env.Success, env.Message)
	for i := 0; i < slides; i++ {
		env = s.handleAddSlide(map[string]any{})
		require.True(t, env.Success, env.Message)
	}
}

func TestSessionGuard(t *testing.T) {
	s := newTestServer(t)

	env := s.handleAddSlide(map[string]any{})
	assert.False(t, env.Success)
	assert.Equal(t, "DocumentNotOpen", env.Error)

	env = s.handleSavePresentation(map[string]any{})
	assert.False(t, env.Success)
	assert.Equal(t, "DocumentNotOpen", env.Error)
}

func TestCreateAndSave(t *testing.T) {
	s := newTestServer(t)
	openDeck(t, s, 2)

	path := filepath.Join(t.TempDir(), "out.pptx")
	env := s.handleSavePresentation(map[string]any{"file_path": path})
	require.True(t, env.Success, env.Message)
	assert.Equal(t, path, env.Data["file_path"])

	t.Run("reopen what we saved", func(t *testing.T) {
		other := newTestServer(t)
		env := other.handleOpenPresentation(map[string]any{"file_path": path})
		require.True(t, env.Success, env.Message)
		assert.Equal(t, 2, env.Data["slide_count"])
	})

	t.Run("open a missing file", func(t *testing.T) {
		env := s.handleOpenPresentation(map[string]any{"file_path": filepath.Join(t.TempDir(), "nope.pptx")})
		assert.False(t, env.Success)
		assert.Equal(t, "OperationFailed", env.Error)
	})
}

func TestContentTools(t *testing.T) {
	s := newTestServer(t)
	openDeck(t, s, 1)

	env := s.handleAddTextBox(map[string]any{
		"slide_index": 0, "text": "hello", "font_size": 20, "bold": true,
	})
	assert.True(t, env.Success, env.Message)

	env = s.handleAddBulletPoints(map[string]any{
		"slide_index": 0, "title": "Agenda", "bullet_points": `["one","two"]`,
	})
	assert.True(t, env.Success, env.Message)

	env = s.handleAddShape(map[string]any{"slide_index": 0, "shape_type": "oval", "fill_color": "4472C4"})
	assert.True(t, env.Success, env.Message)

	env = s.handleAddTable(map[string]any{"slide_index": 0, "rows": 2, "cols": 2})
	assert.True(t, env.Success, env.Message)
	env = s.handleSetTableCellText(map[string]any{"slide_index": 0, "row": 0, "col": 1, "text": "Q3"})
	assert.True(t, env.Success, env.Message)

	env = s.handleGetSlideShapesInfo(map[string]any{"slide_index": 0})
	require.True(t, env.Success, env.Message)
	assert.Len(t, env.Data["shapes"], 4)

	t.Run("argument validation", func(t *testing.T) {
		env := s.handleAddBulletPoints(map[string]any{"slide_index": 0, "title": "x", "bullet_points": "not json"})
		assert.False(t, env.Success)
		assert.Equal(t, "InvalidArgument", env.Error)

		env = s.handleAddShape(map[string]any{"slide_index": 0, "shape_type": "pentagon"})
		assert.False(t, env.Success)
		assert.Equal(t, "UnknownShapeType", env.Error)

		env = s.handleAddTextBox(map[string]any{"slide_index": 9, "text": "x"})
		assert.False(t, env.Success)
		assert.Equal(t, "InvalidSlideIndex", env.Error)
	})

	t.Run("weakly typed numbers", func(t *testing.T) {
		// JSON callers send numbers as float64; strings also pass.
		env := s.handleAddTextBox(map[string]any{"slide_index": float64(0), "text": "f", "font_size": "18"})
		assert.True(t, env.Success, env.Message)
	})
}

func TestTransitionTools(t *testing.T) {
	s := newTestServer(t)
	openDeck(t, s, 3)

	t.Run("add_slide_animation", func(t *testing.T) {
		env := s.handleAddSlideAnimation(map[string]any{"slide_index": 0, "style": "fade", "speed": "slow"})
		require.True(t, env.Success, env.Message)

		spec, ok, err := s.session.SlideTransition(0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "fade", string(spec.Style))
		assert.Equal(t, 2000, spec.DurationMs)
	})

	t.Run("speed defaults to medium", func(t *testing.T) {
		env := s.handleAddSlideAnimation(map[string]any{"slide_index": 1, "style": "zoom"})
		require.True(t, env.Success, env.Message)
		spec, _, err := s.session.SlideTransition(1)
		require.NoError(t, err)
		assert.Equal(t, 1000, spec.DurationMs)
	})

	t.Run("auto advance needs a positive delay", func(t *testing.T) {
		env := s.handleAddSlideAnimation(map[string]any{"slide_index": 0, "style": "fade", "auto_advance": true})
		assert.False(t, env.Success)
		assert.Equal(t, "InvalidArgument", env.Error)

		env = s.handleAddSlideAnimation(map[string]any{
			"slide_index": 0, "style": "fade", "auto_advance": true, "auto_advance_seconds": 5,
		})
		require.True(t, env.Success, env.Message)
		spec, _, err := s.session.SlideTransition(0)
		require.NoError(t, err)
		assert.True(t, spec.AutoAdvance)
		assert.Equal(t, 5000, spec.AutoAdvanceMs)
	})

	t.Run("bad style fails before mutation", func(t *testing.T) {
		env := s.handleAddSlideAnimation(map[string]any{"slide_index": 2, "style": "bounce"})
		assert.False(t, env.Success)
		assert.Equal(t, "UnknownStyle", env.Error)
		_, ok, err := s.session.SlideTransition(2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set_slide_transition legacy interface", func(t *testing.T) {
		env := s.handleSetSlideTransition(map[string]any{
			"slide_index": 2, "style": "push", "duration_seconds": 1.5, "advance_after_seconds": 3,
		})
		require.True(t, env.Success, env.Message)
		spec, _, err := s.session.SlideTransition(2)
		require.NoError(t, err)
		assert.Equal(t, "push", string(spec.Style))
		assert.Equal(t, 1500, spec.DurationMs)
		assert.Equal(t, 3000, spec.AutoAdvanceMs)
	})

	t.Run("none removes", func(t *testing.T) {
		env := s.handleAddSlideAnimation(map[string]any{"slide_index": 2, "style": "none"})
		require.True(t, env.Success, env.Message)
		_, ok, err := s.session.SlideTransition(2)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBatchTransitionTools(t *testing.T) {
	s := newTestServer(t)
	openDeck(t, s, 3)

	env := s.presetHandler("professional")(nil)
	require.True(t, env.Success, env.Message)
	outcomes, ok := env.Data["outcomes"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.Equal(t, true, o["success"])
	}

	for i := 0; i < 3; i++ {
		spec, present, err := s.session.SlideTransition(i)
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, "fade", string(spec.Style))
		assert.Equal(t, 1000, spec.DurationMs)
	}

	t.Run("make_presentation_dynamic", func(t *testing.T) {
		env := s.handleMakePresentationDynamic(map[string]any{"style": "wipe", "speed": "fast"})
		require.True(t, env.Success, env.Message)
		spec, _, err := s.session.SlideTransition(1)
		require.NoError(t, err)
		assert.Equal(t, "wipe", string(spec.Style))
		assert.Equal(t, 500, spec.DurationMs)
	})

	t.Run("empty deck applies to zero slides", func(t *testing.T) {
		fresh := newTestServer(t)
		openDeck(t, fresh, 0)
		env := fresh.presetHandler("smooth")(nil)
		assert.True(t, env.Success)
		assert.Empty(t, env.Data["outcomes"])
	})
}

func TestDiscoveryTools(t *testing.T) {
	s := newTestServer(t)

	env := s.handleGetAnimationOptions(nil)
	require.True(t, env.Success)
	assert.Equal(t, []string{"fade", "push", "wipe", "split", "zoom", "blinds", "dissolve", "none"}, env.Data["styles"])
	assert.Equal(t, []string{"fast", "medium", "slow"}, env.Data["speeds"])
	assert.Equal(t, []string{"professional", "smooth", "dynamic"}, env.Data["presets"])

	env = s.handleGetAvailableTransitions(nil)
	require.True(t, env.Success)
	assert.Len(t, env.Data["styles"], 8)
}

func TestGetPresentationInfo(t *testing.T) {
	s := newTestServer(t)
	openDeck(t, s, 2)
	require.True(t, s.handleAddSlideAnimation(map[string]any{"slide_index": 0, "style": "dissolve"}).Success)

	env := s.handleGetPresentationInfo(nil)
	require.True(t, env.Success, env.Message)
	assert.Equal(t, 2, env.Data["slide_count"])

	slides, ok := env.Data["slides"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, slides, 2)
	assert.Equal(t, "dissolve", slides[0]["transition"])
	_, hasTransition := slides[1]["transition"]
	assert.False(t, hasTransition)
}
