package weather

// DefaultImage is shown when neither a provider image nor a condition image exists.
const DefaultImage = "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?q=80&w=2000"

var conditionImages = map[Condition]string{
	ConditionClear:        "https://images.unsplash.com/photo-1601297183305-6df142704ea2?q=80&w=2000",
	ConditionClouds:       "https://images.unsplash.com/photo-1534088568595-a066f410bcda?q=80&w=2000",
	ConditionRain:         "https://images.unsplash.com/photo-1519692933481-e162a57d6721?q=80&w=2000",
	ConditionSnow:         "https://images.unsplash.com/photo-1478265867543-94e81046cdac?q=80&w=2000",
	ConditionThunderstorm: "https://images.unsplash.com/photo-1605727216801-e27ce1d0cc28?q=80&w=2000",
	ConditionDrizzle:      "https://images.unsplash.com/photo-1541919329513-35f7af297129?q=80&w=2000",
	ConditionFog:          "https://images.unsplash.com/photo-1487621167305-5d248087c724?q=80&w=2000",
	ConditionMist:         "https://images.unsplash.com/photo-1487621167305-5d248087c724?q=80&w=2000",
}

// FallbackImage returns the background image for a condition.
func FallbackImage(c Condition) string {
	if url, ok := conditionImages[c]; ok {
		return url
	}
	return DefaultImage
}

// BackgroundImage picks the provider image when there is one, else the
// condition fallback.
func BackgroundImage(providerImage string, c Condition) string {
	if providerImage != "" {
		return providerImage
	}
	return FallbackImage(c)
}
