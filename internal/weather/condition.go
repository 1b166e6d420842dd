package weather

type codeRange struct {
	from, to  int
	condition Condition
}

// Ranges are checked in ascending order and the first match wins.
var codeRanges = []codeRange{
	{0, 1, ConditionClear},
	{2, 3, ConditionClouds},
	{45, 45, ConditionFog},
	{48, 48, ConditionFog},
	{51, 57, ConditionDrizzle},
	{61, 67, ConditionRain},
	{71, 77, ConditionSnow},
	{80, 82, ConditionRain},
	{85, 86, ConditionSnow},
}

// CodeToCategory maps a WMO weather code (as used by Open-Meteo) to a
// Condition. Codes outside the known ranges map to ConditionClear.
func CodeToCategory(code int) Condition {
	for _, r := range codeRanges {
		if code >= r.from && code <= r.to {
			return r.condition
		}
	}
	if code >= 95 {
		return ConditionThunderstorm
	}
	return ConditionClear
}
