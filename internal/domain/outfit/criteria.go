package outfit

import "github.com/yanqian/weatherfit/internal/domain/wardrobe"

// BuildCriteria derives the selection rules for one category.
func BuildCriteria(category wardrobe.Category, needs Needs) Criteria {
	criteria := Criteria{
		Category:         category,
		TargetInsulation: needs.TargetInsulation,
	}

	switch category {
	case wardrobe.CategoryOuterwear:
		if needs.RequireWaterproof {
			criteria.Constraints = append(criteria.Constraints, Constraint{
				Reason: "No waterproof outerwear saved",
				Match:  func(item wardrobe.Item) bool { return item.Waterproof },
			})
		}
		// Strict matches still earn the waterproof bonus in their rationale.
		criteria.PreferWaterproof = needs.PreferWaterproof
	case wardrobe.CategoryFootwear:
		criteria.PreferWaterproof = needs.NeedsFootwearProtection
	case wardrobe.CategoryAccessory:
		criteria.PreferUVProtection = needs.PreferUVProtection
	case wardrobe.CategoryTop, wardrobe.CategoryBottom:
		// Base layers are never hard-blocked on waterproofing.
		criteria.PreferWaterproof = needs.RequireWaterproof
	}
	return criteria
}
