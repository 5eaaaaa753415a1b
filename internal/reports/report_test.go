package reports

import (
	"errors"
	"testing"
)

func TestDecodeAcceptsStringAndNumberFields(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"r1","timestamp":"1690000000000","totalDebt":"1000","gain":12,"results":[{"APR":"0.0512","duration":"86400","durationPR":0.5}]},
		{"id":"r2","timestamp":1690086400000,"results":[]}
	]`
	got, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Timestamp != 1690000000000 || got[0].APR() != 0.0512 {
		t.Fatalf("first report = %+v", got[0])
	}
	if got[0].TotalDebt != "1000" || got[0].Gain != "12" {
		t.Fatalf("amounts = %q/%q", got[0].TotalDebt, got[0].Gain)
	}
	if got[0].Results[0].Duration != 86400 {
		t.Fatalf("duration = %d", got[0].Results[0].Duration)
	}
	if got[1].APR() != 0 {
		t.Fatalf("report without results APR = %v", got[1].APR())
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte(" [] "))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty body", payload: ""},
		{name: "object", payload: `{"error":"not found"}`},
		{name: "missing timestamp", payload: `[{"results":[]}]`},
		{name: "bad timestamp", payload: `[{"timestamp":"yesterday"}]`},
		{name: "missing apr", payload: `[{"timestamp":"1","results":[{"duration":"1"}]}]`},
		{name: "bad apr", payload: `[{"timestamp":"1","results":[{"APR":true}]}]`},
		{name: "bad amount", payload: `[{"timestamp":"1","gain":{}}]`},
		{name: "truncated", payload: `[{"timestamp":"1"`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tc.payload))
			if err == nil {
				t.Fatal("expected schema error")
			}
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("error %v does not wrap ErrSchema", err)
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SchemaError", err)
			}
		})
	}
}
