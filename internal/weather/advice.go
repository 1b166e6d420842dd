package weather

import "strings"

// Score grades how suitable the weather is for an activity.
type Score string

const (
	ScoreGood     Score = "good"
	ScoreModerate Score = "moderate"
	ScoreBad      Score = "bad"
)

// Activity is the advice for one kind of activity.
type Activity struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Score  Score  `json:"score"`
	Reason string `json:"reason"`
}

// Conditions is the input to activity advice and the daily insight.
type Conditions struct {
	Temp       float64
	Wind       float64
	RainChance float64
	UV         float64
	Code       int
	Condition  Condition
}

// Advise scores running, driving and outdoor events for the given conditions.
func Advise(c Conditions, translate func(string) string) []Activity {
	activity := func(name string, score Score, reasonKey string) Activity {
		return Activity{Name: name, Label: translate(name), Score: score, Reason: translate(reasonKey)}
	}

	var running Activity
	switch {
	case c.Temp > 30 || c.RainChance > 70:
		running = activity("running", ScoreBad, "aiHot")
	case c.Temp > 25 || c.Wind > 20:
		running = activity("running", ScoreModerate, "aiWindy")
	default:
		running = activity("running", ScoreGood, "good")
	}

	var driving Activity
	switch {
	case c.RainChance > 80 || c.Code > 90:
		driving = activity("driving", ScoreBad, "aiRain")
	case c.RainChance > 40:
		driving = activity("driving", ScoreModerate, "moderate")
	default:
		driving = activity("driving", ScoreGood, "good")
	}

	var outdoor Activity
	switch {
	case c.UV > 8:
		outdoor = activity("outdoor", ScoreBad, "aiHot")
		outdoor.Reason += " " + translate("uv")
	case c.UV > 5:
		outdoor = activity("outdoor", ScoreModerate, "moderate")
	default:
		outdoor = activity("outdoor", ScoreGood, "good")
	}

	return []Activity{running, driving, outdoor}
}

// Insight builds a one-line summary of the day from the given conditions.
func Insight(c Conditions, translate func(string) string) string {
	var parts []string

	switch {
	case c.UV > 7, c.Temp > 30:
		parts = append(parts, translate("aiHot"))
	case c.Temp < 10:
		parts = append(parts, translate("aiCold"))
	}
	if c.RainChance > 40 {
		parts = append(parts, translate("aiRain"))
	}
	if c.Wind > 25 {
		parts = append(parts, translate("aiWindy"))
	}

	if len(parts) == 0 {
		if c.Condition == ConditionClouds {
			return translate("aiCloudy")
		}
		return translate("aiGoodDay")
	}
	return strings.Join(parts, " ")
}
