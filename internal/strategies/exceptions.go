package strategies

import "github.com/vaultboard/vaultboard/internal/vaults"

// ExceptionRule keeps a strategy visible while zero-debt strategies are
// hidden. Address is compared case-sensitively.
type ExceptionRule struct {
	Address        string
	Reason         string
	RequireInQueue bool
}

// CurveDAOFeeAndBribesReinvest must stay listed while it sits in the
// withdrawal queue, even with no debt allocated.
const CurveDAOFeeAndBribesReinvest = "0x23724D764d8b3d26852BA20d3Bc2578093d2B022"

var ExceptionRules = []ExceptionRule{
	{
		Address:        CurveDAOFeeAndBribesReinvest,
		Reason:         "Curve DAO fee and bribes reinvest",
		RequireInQueue: true,
	},
}

// IsException reports whether s matches one of the shipped exception rules.
func IsException(s vaults.Strategy) bool {
	return isException(ExceptionRules, s)
}

func isException(rules []ExceptionRule, s vaults.Strategy) bool {
	for _, rule := range rules {
		if s.Address != rule.Address {
			continue
		}
		if rule.RequireInQueue && !s.Details.InQueue {
			continue
		}
		return true
	}
	return false
}
