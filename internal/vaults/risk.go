package vaults

type StrategyRisk struct {
	RiskGroup string      `json:"riskGroup"`
	RiskScore float64     `json:"riskScore"`
	Details   RiskDetails `json:"riskDetails"`
}

// RiskDetails holds the eight sub-scores. Absent scores decode as nil.
type RiskDetails struct {
	TVLImpact           *float64 `json:"TVLImpact,omitempty"`
	AuditScore          *float64 `json:"auditScore,omitempty"`
	CodeReviewScore     *float64 `json:"codeReviewScore,omitempty"`
	ComplexityScore     *float64 `json:"complexityScore,omitempty"`
	LongevityImpact     *float64 `json:"longevityImpact,omitempty"`
	ProtocolSafetyScore *float64 `json:"protocolSafetyScore,omitempty"`
	TeamKnowledgeScore  *float64 `json:"teamKnowledgeScore,omitempty"`
	TestingScore        *float64 `json:"testingScore,omitempty"`
}

type RiskScore struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RiskScores returns the labelled sub-scores in display order, with absent
// values reported as 0. A nil risk record yields all zeros.
func (s Strategy) RiskScores() []RiskScore {
	var d RiskDetails
	if s.Risk != nil {
		d = s.Risk.Details
	}
	return []RiskScore{
		{Label: "TVL Impact", Value: orZero(d.TVLImpact)},
		{Label: "Audit Score", Value: orZero(d.AuditScore)},
		{Label: "Code Review Score", Value: orZero(d.CodeReviewScore)},
		{Label: "Complexity Score", Value: orZero(d.ComplexityScore)},
		{Label: "Longevity Impact", Value: orZero(d.LongevityImpact)},
		{Label: "Protocol Safety Score", Value: orZero(d.ProtocolSafetyScore)},
		{Label: "Team Knowledge Score", Value: orZero(d.TeamKnowledgeScore)},
		{Label: "Testing Score", Value: orZero(d.TestingScore)},
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
