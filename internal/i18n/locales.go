package i18n

var translations = map[string]map[string]string{
	"en": {
		"search":         "Search City...",
		"loading":        "Fetching weather data...",
		"recent":         "Recent",
		"favorites":      "Favorites",
		"addToFavorites": "Add to Favorites",
		"saved":          "Saved",
		"temperature":    "Temperature",
		"humidity":       "Humidity",
		"wind":           "Wind",
		"uv":             "UV Index",
		"visibility":     "Visibility",
		"pressure":       "Pressure",
		"airQuality":     "Air Quality",
		"today":          "Today",
		"hourly":         "Hourly Forecast (24h)",
		"daily":          "7-Day Forecast",
		"rainChance":     "Rain Chance",
		"backToToday":    "Back to today",
		"activity":       "Activity Forecast",
		"running":        "Running",
		"driving":        "Driving",
		"outdoor":        "Outdoor Events",
		"good":           "Excellent",
		"moderate":       "Moderate",
		"bad":            "Poor",
		"aiSummaryTitle": "Daily Insight",
		"aiGoodDay":      "Beautiful day ahead! Clear skies make it perfect for outdoor activities.",
		"aiRain":         "Keep an umbrella handy. Rain is expected later today.",
		"aiHot":          "Stay hydrated! Temperatures are rising significantly.",
		"aiCold":         "Bundle up, it is going to be cold.",
		"aiWindy":        "Quite windy today, secure loose items.",
		"aiCloudy":       "A cloudy but calm day.",
		"searchError":    "City not found or connection error.",
		"locationError":  "Could not get your location.",
		"Clear":          "Clear",
		"Clouds":         "Clouds",
		"Fog":            "Fog",
		"Mist":           "Mist",
		"Drizzle":        "Drizzle",
		"Rain":           "Rain",
		"Snow":           "Snow",
		"Thunderstorm":   "Thunderstorm",
	},
	"es": {
		"search":         "Buscar ciudad...",
		"loading":        "Obteniendo datos del clima...",
		"recent":         "Recientes",
		"favorites":      "Favoritos",
		"addToFavorites": "Añadir a favoritos",
		"saved":          "Guardado",
		"temperature":    "Temperatura",
		"humidity":       "Humedad",
		"wind":           "Viento",
		"uv":             "Índice UV",
		"visibility":     "Visibilidad",
		"pressure":       "Presión",
		"airQuality":     "Calidad del aire",
		"today":          "Hoy",
		"hourly":         "Pronóstico por horas (24h)",
		"daily":          "Pronóstico de 7 días",
		"rainChance":     "Prob. de lluvia",
		"backToToday":    "Volver a hoy",
		"activity":       "Pronóstico de actividades",
		"running":        "Correr",
		"driving":        "Conducir",
		"outdoor":        "Eventos al aire libre",
		"good":           "Excelente",
		"moderate":       "Moderado",
		"bad":            "Malo",
		"aiSummaryTitle": "Resumen del día",
		"aiGoodDay":      "¡Un día precioso! El cielo despejado es perfecto para actividades al aire libre.",
		"aiRain":         "Ten a mano el paraguas. Se espera lluvia más tarde.",
		"aiHot":          "¡Mantente hidratado! Las temperaturas suben bastante.",
		"aiCold":         "Abrígate, va a hacer frío.",
		"aiWindy":        "Bastante viento hoy, asegura los objetos sueltos.",
		"aiCloudy":       "Un día nublado pero tranquilo.",
		"searchError":    "Ciudad no encontrada o error de conexión.",
		"locationError":  "Error al obtener ubicación.",
		"Clear":          "Despejado",
		"Clouds":         "Nublado",
		"Fog":            "Niebla",
		"Mist":           "Neblina",
		"Drizzle":        "Llovizna",
		"Rain":           "Lluvia",
		"Snow":           "Nieve",
		"Thunderstorm":   "Tormenta",
	},
}
