package classify

import "fmt"

// Metadata travels with every submission. GroundTruth is the digit the user
// claims to have drawn; the other fields are optional and come from the
// session provider (empty means unknown).
type Metadata struct {
	GroundTruth int
	Username    string
	DeviceID    string
	AuthToken   string
}

// Request is one classification attempt.
type Request struct {
	Image []byte
	Metadata
}

// Result is the canonical classifier answer.
type Result struct {
	Label      int      `json:"predicted_label"`
	Confidence *float64 `json:"confidence,omitempty"`
}

func (r Result) String() string {
	if r.Confidence == nil {
		return fmt.Sprintf("Prediction: %d", r.Label)
	}
	return fmt.Sprintf("Prediction: %d (%.1f%%)", r.Label, *r.Confidence*100)
}
