package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ubfsw/digitpad/log"
)

// predictionKeys lists the response fields that may carry the label, in
// priority order. Backends disagree on the name; append here to support a
// new one. Values must be numbers or numeric strings; empty strings and
// booleans are not read as 0 and 1.
var predictionKeys = []string{
	"predicted_label",
	"predicted",
	"label",
	"prediction",
	"result",
}

const confidenceKey = "confidence"

// extractResult normalises a classifier response body. The first prediction
// key present with a non-null value decides the label.
func extractResult(data []byte) (*Result, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ResponseShapeError{Reason: "empty body"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		log.Trace.Printf("extractResult: failed to unmarshal JSON: %v", err)
		return nil, &ResponseShapeError{Reason: "response is not a JSON object"}
	}

	for _, key := range predictionKeys {
		raw, ok := body[key]
		if !ok || raw == nil {
			continue
		}
		log.Trace.Printf("extractResult: found %s field: %v", key, raw)

		n, err := toNumber(raw)
		if err != nil {
			return nil, &ResponseShapeError{Reason: fmt.Sprintf("%s: %v", key, err)}
		}
		if n < float64(math.MinInt) || n >= float64(math.MaxInt) {
			return nil, &ResponseShapeError{Reason: fmt.Sprintf("%s: %v is out of range", key, n)}
		}
		if n != math.Trunc(n) {
			return nil, &ResponseShapeError{Reason: fmt.Sprintf("%s: %v is not a whole number", key, n)}
		}

		res := &Result{Label: int(n)}
		if c, ok := body[confidenceKey].(json.Number); ok {
			if f, err := c.Float64(); err == nil {
				res.Confidence = &f
			}
		}
		return res, nil
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	log.Trace.Printf("extractResult: no prediction key among %v", keys)
	return nil, &ResponseShapeError{}
}

// toNumber coerces a decoded JSON value to a finite number. Numeric strings
// are accepted.
func toNumber(v interface{}) (float64, error) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fmt.Errorf("empty string")
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not finite", v)
	}
	return f, nil
}
