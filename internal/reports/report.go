// Package reports validates strategy reports and extracts the latest APR.
package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Report struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"`
	TotalDebt string   `json:"totalDebt,omitempty"`
	Gain      string   `json:"gain,omitempty"`
	Loss      string   `json:"loss,omitempty"`
	TotalGain string   `json:"totalGain,omitempty"`
	TotalLoss string   `json:"totalLoss,omitempty"`
	Results   []Result `json:"results"`
}

type Result struct {
	APR        float64 `json:"apr"`
	Duration   int64   `json:"duration"`
	DurationPR float64 `json:"durationPR"`
}

// APR is the annualized return of the report's first result, or 0.
func (r Report) APR() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return r.Results[0].APR
}

var ErrSchema = errors.New("report payload failed schema validation")

// SchemaError describes the first field that failed validation.
type SchemaError struct {
	Index int
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("reports: %s", e.Msg)
	}
	return fmt.Sprintf("reports[%d].%s: %s", e.Index, e.Field, e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

type wireReport struct {
	ID        string          `json:"id"`
	Timestamp json.RawMessage `json:"timestamp"`
	TotalDebt json.RawMessage `json:"totalDebt"`
	Gain      json.RawMessage `json:"gain"`
	Loss      json.RawMessage `json:"loss"`
	TotalGain json.RawMessage `json:"totalGain"`
	TotalLoss json.RawMessage `json:"totalLoss"`
	Results   []wireResult    `json:"results"`
}

type wireResult struct {
	APR        json.RawMessage `json:"APR"`
	Duration   json.RawMessage `json:"duration"`
	DurationPR json.RawMessage `json:"durationPR"`
}

// Decode validates a yDaemon reports payload. The payload must be a JSON
// array; every report needs a numeric timestamp and every result a numeric
// APR. Numbers may be encoded as JSON numbers or numeric strings. Any
// violation rejects the whole payload with a *SchemaError.
func Decode(data []byte) ([]Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &SchemaError{Index: -1, Msg: "expected an array of reports"}
	}

	var wire []wireReport
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, &SchemaError{Index: -1, Msg: err.Error()}
	}

	out := make([]Report, 0, len(wire))
	for i, w := range wire {
		ts, ok, err := numeric(w.Timestamp)
		if err != nil || !ok {
			return nil, &SchemaError{Index: i, Field: "timestamp", Msg: "required numeric value"}
		}
		r := Report{ID: w.ID, Timestamp: int64(ts)}
		for _, f := range []struct {
			name string
			raw  json.RawMessage
			dst  *string
		}{
			{"totalDebt", w.TotalDebt, &r.TotalDebt},
			{"gain", w.Gain, &r.Gain},
			{"loss", w.Loss, &r.Loss},
			{"totalGain", w.TotalGain, &r.TotalGain},
			{"totalLoss", w.TotalLoss, &r.TotalLoss},
		} {
			s, err := amount(f.raw)
			if err != nil {
				return nil, &SchemaError{Index: i, Field: f.name, Msg: err.Error()}
			}
			*f.dst = s
		}
		for j, wr := range w.Results {
			apr, ok, err := numeric(wr.APR)
			if err != nil || !ok {
				return nil, &SchemaError{Index: i, Field: fmt.Sprintf("results[%d].APR", j), Msg: "required numeric value"}
			}
			duration, _, err := numeric(wr.Duration)
			if err != nil {
				return nil, &SchemaError{Index: i, Field: fmt.Sprintf("results[%d].duration", j), Msg: err.Error()}
			}
			durationPR, _, err := numeric(wr.DurationPR)
			if err != nil {
				return nil, &SchemaError{Index: i, Field: fmt.Sprintf("results[%d].durationPR", j), Msg: err.Error()}
			}
			r.Results = append(r.Results, Result{APR: apr, Duration: int64(duration), DurationPR: durationPR})
		}
		out = append(out, r)
	}
	return out, nil
}

// numeric parses a JSON number or numeric string. ok is false when the
// value is absent or null.
func numeric(raw json.RawMessage) (float64, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false, fmt.Errorf("not a number: %q", s)
		}
		return v, true, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false, fmt.Errorf("not a number: %s", raw)
	}
	return v, true, nil
}

// amount keeps base-unit integers as decimal strings.
func amount(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("not a number: %s", raw)
	}
	return n.String(), nil
}
