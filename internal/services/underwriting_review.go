package services

import (
	"fmt"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// buildWarnings evaluates the underwriting alerts in a fixed order and
// returns them in that order. Each alert fires independently.
func buildWarnings(cfg *ratingconfig.PerRoomProfile, in *resolvedInput, totalTIV int64) []string {
	t := cfg.WarningThresholds
	warnings := []string{}

	if containsState(t.CatZoneStates, in.State) {
		warnings = append(warnings, fmt.Sprintf("Property located in catastrophe-exposed state (%s). Verify wind/hail deductibles and CAT capacity.", in.State))
	}
	if in.LocationZone == models.ZoneTWIA {
		warnings = append(warnings, "TWIA zone: Texas windstorm coverage may need to be placed through the windstorm pool.")
	}
	if in.RoofAge >= t.OldRoofAge {
		warnings = append(warnings, fmt.Sprintf("Roof age %d years meets or exceeds the %d-year threshold. Request roof inspection or replacement documentation.", in.RoofAge, t.OldRoofAge))
	}
	if in.ProtectionClass >= t.HighPPC {
		warnings = append(warnings, fmt.Sprintf("Protection class %d indicates limited fire protection. Expect surcharged pricing and carrier appetite restrictions.", in.ProtectionClass))
	}
	if t.NonSprinkleredWarning && !in.Sprinklered {
		warnings = append(warnings, "Property is not fully sprinklered. Many carriers decline non-sprinklered hotels above two stories.")
	}
	if float64(totalTIV) > t.HighTIV {
		warnings = append(warnings, fmt.Sprintf("Total insurable value exceeds $%.0fM. Layered or shared placement likely required.", t.HighTIV/1e6))
	}
	if in.ConstructionType == models.ConstructionFrame || in.ConstructionType == models.ConstructionJoistedMasonry {
		warnings = append(warnings, fmt.Sprintf("%s construction carries elevated fire exposure for hotel occupancy.", in.ConstructionType))
	}
	if in.Stories >= 10 && !in.Sprinklered {
		warnings = append(warnings, "High-rise without full sprinkler protection. This risk falls outside most admitted carrier guidelines.")
	}

	return warnings
}
