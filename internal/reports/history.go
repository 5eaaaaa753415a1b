package reports

import (
	"cmp"
	"slices"
	"time"
)

// millisThreshold separates second and millisecond timestamps. yDaemon
// reports carry milliseconds; older payloads carry seconds.
const millisThreshold = 1_000_000_000_000

// APRPoint is the APR of one report at the time it was filed.
type APRPoint struct {
	Time time.Time `json:"time"`
	APR  float64   `json:"apr"`
}

// History returns the APR of every report that carries a result, oldest
// first. Reports sharing a timestamp keep their input order.
func History(reports []Report) []APRPoint {
	points := make([]APRPoint, 0, len(reports))
	for _, r := range slices.SortedStableFunc(slices.Values(reports), func(a, b Report) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	}) {
		if len(r.Results) == 0 {
			continue
		}
		points = append(points, APRPoint{Time: ReportTime(r.Timestamp), APR: r.APR()})
	}
	return points
}

// ReportTime converts a report timestamp in seconds or milliseconds.
func ReportTime(ts int64) time.Time {
	if ts >= millisThreshold {
		return time.UnixMilli(ts).UTC()
	}
	return time.Unix(ts, 0).UTC()
}
