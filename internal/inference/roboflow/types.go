package roboflow

import (
	"encoding/json"
	"fmt"
)

// Prediction is a single classification returned by a hosted model.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
}

// InferenceResponse is the normalized result of one model call.
// RawPredictions preserves the upstream prediction list verbatim for
// persistence alongside the decoded form.
type InferenceResponse struct {
	Predictions    []Prediction
	RawPredictions json.RawMessage
}

// Top returns the prediction with the highest confidence, or false when
// the prediction set is empty.
func (r *InferenceResponse) Top() (Prediction, bool) {
	if len(r.Predictions) == 0 {
		return Prediction{}, false
	}
	top := r.Predictions[0]
	for _, p := range r.Predictions[1:] {
		if p.Confidence > top.Confidence {
			top = p
		}
	}
	return top, true
}

// MalformedResponseError reports an upstream response that is not the
// expected predictions shape. Shape describes what was actually received,
// for diagnostics.
type MalformedResponseError struct {
	Shape string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected response shape: %s", e.Shape)
}
