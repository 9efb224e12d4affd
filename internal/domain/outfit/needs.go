package outfit

import "github.com/yanqian/weatherfit/internal/domain/wardrobe"

// insulationBands map an upper temperature bound (°F, inclusive) to an insulation target.
var insulationBands = []struct {
	max        float64
	insulation wardrobe.Insulation
}{
	{max: 45, insulation: wardrobe.InsulationHeavy},
	{max: 65, insulation: wardrobe.InsulationMedium},
}

// DeriveNeeds turns a weather snapshot into clothing needs. Unknown readings
// are NaN and fail every comparison, so they never trigger a need.
func DeriveNeeds(w Weather) Needs {
	return Needs{
		Temperature:             w.Temperature,
		TargetInsulation:        TargetInsulation(w.Temperature),
		RequireWaterproof:       w.PrecipitationChance >= 50,
		PreferWaterproof:        w.PrecipitationChance >= 30,
		PreferUVProtection:      w.UVIndex >= 6,
		NeedsOuterwear:          w.Temperature <= 60 || w.WindSpeed >= 18 || w.PrecipitationChance >= 40,
		NeedsFootwearProtection: w.PrecipitationChance >= 40,
	}
}

// TargetInsulation picks the insulation level for a temperature. NaN yields light.
func TargetInsulation(temperature float64) wardrobe.Insulation {
	for _, band := range insulationBands {
		if temperature <= band.max {
			return band.insulation
		}
	}
	return wardrobe.InsulationLight
}
