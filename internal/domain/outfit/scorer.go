package outfit

import "github.com/yanqian/weatherfit/internal/domain/wardrobe"

// Score rates an item against criteria. It never excludes an item.
func Score(item wardrobe.Item, criteria Criteria) ScoredCandidate {
	scored := ScoredCandidate{Item: item, Rationale: []string{}}
	add := func(points int, reason string) {
		scored.Score += points
		scored.Rationale = append(scored.Rationale, reason)
	}

	switch {
	case item.Insulation == criteria.TargetInsulation:
		add(3, "Matches insulation level")
	case criteria.TargetInsulation == wardrobe.InsulationHeavy && item.Insulation == wardrobe.InsulationMedium:
		add(1, "Slightly lighter insulation")
	case criteria.TargetInsulation == wardrobe.InsulationMedium && item.Insulation != wardrobe.InsulationLight:
		add(1, "Warmer coverage")
	}
	if criteria.PreferWaterproof && item.Waterproof {
		add(2, "Waterproof protection")
	}
	if criteria.PreferUVProtection && item.UVProtection {
		add(1, "UV shielding")
	}
	if criteria.PreferredFormality != "" && item.Formality == criteria.PreferredFormality {
		add(1, "Matches formality")
	}
	return scored
}
