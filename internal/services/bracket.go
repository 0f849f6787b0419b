package services

import "github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"

// resolveBracket scans an ascending step-function table and returns the
// modifier of the first bracket whose threshold the input does not exceed
// (inclusive upper bound). Inputs past every threshold take the last bracket,
// the open-ended ceiling tier; negative inputs land in the lowest bracket.
// Never fails for a non-empty list; empty lists are rejected at config load.
func resolveBracket(brackets []ratingconfig.Bracket, input float64) float64 {
	for _, b := range brackets {
		if input <= b.Max {
			return b.Modifier
		}
	}
	return brackets[len(brackets)-1].Modifier
}

// resolveRiskGrade applies the same step-function mechanism to the
// premium-per-room grade table, returning "<letter> - <label>".
func resolveRiskGrade(grades []ratingconfig.RiskGradeBracket, perRoom float64) string {
	for _, g := range grades {
		if perRoom <= g.MaxPerRoom {
			return g.Grade + " - " + g.Label
		}
	}
	last := grades[len(grades)-1]
	return last.Grade + " - " + last.Label
}
