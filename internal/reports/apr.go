package reports

// LatestAPR returns the APR of the report with the greatest timestamp.
// When several reports share that timestamp the first one in input order
// wins. An empty input yields 0.
func LatestAPR(reports []Report) float64 {
	if len(reports) == 0 {
		return 0
	}
	latest := 0
	for i := 1; i < len(reports); i++ {
		if reports[i].Timestamp > reports[latest].Timestamp {
			latest = i
		}
	}
	return reports[latest].APR()
}
