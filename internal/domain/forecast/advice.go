package forecast

const (
	adviceCold          = "It's quite cold outside. Wear a warm jacket, gloves, and a hat."
	adviceCool          = "The weather is cool. A light jacket or sweater should be fine."
	adviceWarm          = "It's warm outside. Light clothing is recommended."
	adviceHumid         = "High humidity detected. Wear breathable fabrics to stay comfortable."
	advicePrecipitation = "There's a good chance of precipitation. Don't forget to carry an umbrella or wear a waterproof jacket."
)

// Advise maps conditions to generic clothing advice. Exactly one temperature
// bracket fires; an unknown temperature reads as warm.
func Advise(c Conditions) []string {
	advice := make([]string, 0, 3)
	switch {
	case c.Temperature < 50:
		advice = append(advice, adviceCold)
	case c.Temperature < 70:
		advice = append(advice, adviceCool)
	default:
		advice = append(advice, adviceWarm)
	}
	if c.Humidity > 50 {
		advice = append(advice, adviceHumid)
	}
	if c.PrecipitationChance > 30 {
		advice = append(advice, advicePrecipitation)
	}
	return advice
}
