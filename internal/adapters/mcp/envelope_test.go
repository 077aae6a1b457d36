package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlevan/deckhand"
	"github.com/arlevan/deckhand/internal/pptx"
	"github.com/arlevan/deckhand/internal/transition"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{transition.ErrUnknownStyle, "UnknownStyle"},
		{transition.ErrUnknownSpeed, "UnknownSpeed"},
		{transition.ErrUnknownPreset, "UnknownPreset"},
		{transition.ErrUnsupportedStyle, "UnsupportedStyle"},
		{transition.ErrMalformedSlideTree, "MalformedSlideTree"},
		{pptx.ErrInvalidSlideIndex, "InvalidSlideIndex"},
		{pptx.ErrInvalidLayoutIndex, "InvalidLayoutIndex"},
		{pptx.ErrUnknownShapeType, "UnknownShapeType"},
		{deckhand.ErrNoSavePath, "NoSavePath"},
		{errors.New("anything else"), "OperationFailed"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, errorCode(tc.err))
	}

	t.Run("wrapped sentinels still map", func(t *testing.T) {
		err := fmt.Errorf("slide 7: %w", pptx.ErrInvalidSlideIndex)
		assert.Equal(t, "InvalidSlideIndex", errorCode(err))
	})
}

func TestEnvelopeShape(t *testing.T) {
	t.Run("success omits the error field", func(t *testing.T) {
		data, err := json.Marshal(ok("done"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"message":"done"}`, string(data))
	})

	t.Run("failure carries the code", func(t *testing.T) {
		data, err := json.Marshal(fail(transition.ErrUnknownStyle))
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "UnknownStyle", out["error"])
		assert.NotEmpty(t, out["message"])
	})

	t.Run("withData accumulates", func(t *testing.T) {
		env := ok("x").withData("a", 1).withData("b", 2)
		assert.Equal(t, 1, env.Data["a"])
		assert.Equal(t, 2, env.Data["b"])
	})
}

func TestOutcomeData(t *testing.T) {
	outcomes := []transition.Outcome{
		{Index: 0},
		{Index: 1, Err: fmt.Errorf("slide: %w", transition.ErrMalformedSlideTree)},
	}
	data := outcomeData(outcomes)
	require.Len(t, data, 2)
	assert.Equal(t, true, data[0]["success"])
	assert.Equal(t, false, data[1]["success"])
	assert.Equal(t, "MalformedSlideTree", data[1]["error"])
}
