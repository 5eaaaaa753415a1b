package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vaultboard/vaultboard/internal/logging"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reports []Report
		want    []APRPoint
	}{
		{name: "empty", reports: nil, want: []APRPoint{}},
		{
			name:    "oldest first",
			reports: []Report{report(300, 0.11), report(100, 0.05), report(200, 0.08)},
			want: []APRPoint{
				{Time: time.Unix(100, 0).UTC(), APR: 0.05},
				{Time: time.Unix(200, 0).UTC(), APR: 0.08},
				{Time: time.Unix(300, 0).UTC(), APR: 0.11},
			},
		},
		{
			name:    "ties keep input order",
			reports: []Report{report(200, 0.09), report(100, 0.01), report(200, 0.05)},
			want: []APRPoint{
				{Time: time.Unix(100, 0).UTC(), APR: 0.01},
				{Time: time.Unix(200, 0).UTC(), APR: 0.09},
				{Time: time.Unix(200, 0).UTC(), APR: 0.05},
			},
		},
		{
			name:    "reports without results are skipped",
			reports: []Report{{Timestamp: 50}, report(100, 0.05)},
			want:    []APRPoint{{Time: time.Unix(100, 0).UTC(), APR: 0.05}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, History(tc.reports)); diff != "" {
				t.Fatalf("History() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistoryOfMalformedPayloadIsEmpty(t *testing.T) {
	t.Parallel()

	c := NewCache(&stubFetcher{payload: []byte(`{"error":"boom"}`)}, CacheOptions{Logger: logging.Discard()})
	if got := History(c.Resolve(context.Background(), NewKey(1, "0x1"))); len(got) != 0 {
		t.Fatalf("History() = %v, want empty", got)
	}
}

func TestReportTimeAcceptsSecondsAndMillis(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 7, 22, 4, 26, 40, 0, time.UTC)
	if got := ReportTime(1690000000); !got.Equal(want) {
		t.Fatalf("ReportTime(seconds) = %v, want %v", got, want)
	}
	if got := ReportTime(1690000000000); !got.Equal(want) {
		t.Fatalf("ReportTime(millis) = %v, want %v", got, want)
	}
}
