package mcp

import (
	"errors"
	"fmt"

	"github.com/arlevan/deckhand"
	"github.com/arlevan/deckhand/internal/pptx"
	"github.com/arlevan/deckhand/internal/transition"
)

// Envelope is the uniform result shape every tool returns. No raw
// errors cross the tool boundary: failures surface as success=false
// with a readable message and a machine-usable error code.
type Envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

func ok(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

func okf(format string, args ...any) Envelope {
	return ok(fmt.Sprintf(format, args...))
}

func (e Envelope) withData(key string, value any) Envelope {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

func fail(err error) Envelope {
	return Envelope{Success: false, Message: err.Error(), Error: errorCode(err)}
}

func failCode(code, message string) Envelope {
	return Envelope{Success: false, Message: message, Error: code}
}

// errorCode maps sentinel errors to the envelope's error code strings.
func errorCode(err error) string {
	switch {
	case errors.Is(err, transition.ErrUnknownStyle):
		return "UnknownStyle"
	case errors.Is(err, transition.ErrUnknownSpeed):
		return "UnknownSpeed"
	case errors.Is(err, transition.ErrUnknownPreset):
		return "UnknownPreset"
	case errors.Is(err, transition.ErrUnsupportedStyle):
		return "UnsupportedStyle"
	case errors.Is(err, transition.ErrMalformedSlideTree):
		return "MalformedSlideTree"
	case errors.Is(err, pptx.ErrInvalidSlideIndex):
		return "InvalidSlideIndex"
	case errors.Is(err, pptx.ErrInvalidLayoutIndex):
		return "InvalidLayoutIndex"
	case errors.Is(err, pptx.ErrUnknownShapeType):
		return "UnknownShapeType"
	case errors.Is(err, deckhand.ErrNoSavePath):
		return "NoSavePath"
	default:
		return "OperationFailed"
	}
}

// outcomeData renders batch outcomes for the envelope's data payload.
func outcomeData(outcomes []transition.Outcome) []map[string]any {
	out := make([]map[string]any, len(outcomes))
	for i, o := range outcomes {
		entry := map[string]any{"slide": o.Index, "success": o.OK()}
		if o.Err != nil {
			entry["error"] = errorCode(o.Err)
			entry["message"] = o.Err.Error()
		}
		out[i] = entry
	}
	return out
}
