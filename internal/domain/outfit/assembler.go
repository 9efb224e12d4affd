package outfit

import (
	"math"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

const emptyOutfitGap = "No saved clothing items match today's weather yet. Add more items to your closet to get outfit suggestions."

var optionalCategories = []wardrobe.Category{
	wardrobe.CategoryOuterwear,
	wardrobe.CategoryFootwear,
	wardrobe.CategoryAccessory,
}

// Rand breaks ties between equally scored items. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Assemble builds an outfit from a read-only wardrobe snapshot.
func Assemble(items []wardrobe.Item, weather Weather, rnd Rand) Suggestion {
	needs := DeriveNeeds(weather)
	grouped := groupByCategory(items)

	required := []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom}
	if needs.NeedsOuterwear {
		required = append(required, wardrobe.CategoryOuterwear)
	}
	if len(grouped[wardrobe.CategoryFootwear]) > 0 {
		required = append(required, wardrobe.CategoryFootwear)
	}
	if needs.PreferUVProtection && len(grouped[wardrobe.CategoryAccessory]) > 0 {
		required = append(required, wardrobe.CategoryAccessory)
	}

	outfit := make([]Entry, 0, len(required))
	gaps := make([]string, 0)
	for _, category := range required {
		entry, ok, categoryGaps := choose(grouped[category], BuildCriteria(category, needs), rnd)
		gaps = append(gaps, categoryGaps...)
		if ok {
			outfit = append(outfit, entry)
		}
	}

	for _, category := range optionalCategories {
		if contains(required, category) || len(grouped[category]) == 0 {
			continue
		}
		if entry, ok, _ := choose(grouped[category], BuildCriteria(category, needs), rnd); ok {
			entry.Optional = true
			outfit = append(outfit, entry)
		}
	}

	if len(outfit) == 0 {
		gaps = append(gaps, emptyOutfitGap)
	}
	return Suggestion{Outfit: outfit, Gaps: gaps, Context: contextOf(needs)}
}

// choose filters, scores and picks the best item of one category, breaking
// ties uniformly with rnd.
func choose(items []wardrobe.Item, criteria Criteria, rnd Rand) (Entry, bool, []string) {
	candidates, gaps := FilterCandidates(items, criteria)
	if len(candidates) == 0 {
		return Entry{}, false, gaps
	}

	best := make([]ScoredCandidate, 0, len(candidates))
	for _, item := range candidates {
		scored := Score(item, criteria)
		switch {
		case len(best) == 0 || scored.Score > best[0].Score:
			best = append(best[:0], scored)
		case scored.Score == best[0].Score:
			best = append(best, scored)
		}
	}
	pick := best[0]
	if len(best) > 1 {
		pick = best[rnd.IntN(len(best))]
	}
	return toEntry(pick), true, gaps
}

func toEntry(c ScoredCandidate) Entry {
	return Entry{
		ID:           c.Item.ID,
		Name:         c.Item.Name,
		Category:     c.Item.Category,
		Insulation:   c.Item.Insulation,
		Waterproof:   c.Item.Waterproof,
		UVProtection: c.Item.UVProtection,
		Formality:    c.Item.Formality,
		Color:        c.Item.Color,
		Notes:        c.Item.Notes,
		Rationale:    c.Rationale,
	}
}

func contextOf(needs Needs) Context {
	ctx := Context{
		TargetInsulation:   needs.TargetInsulation,
		RequireWaterproof:  needs.RequireWaterproof,
		PreferWaterproof:   needs.PreferWaterproof,
		PreferUVProtection: needs.PreferUVProtection,
	}
	if !math.IsNaN(needs.Temperature) {
		t := needs.Temperature
		ctx.Temperature = &t
	}
	return ctx
}

func groupByCategory(items []wardrobe.Item) map[wardrobe.Category][]wardrobe.Item {
	grouped := make(map[wardrobe.Category][]wardrobe.Item, len(wardrobe.Categories))
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

func contains(categories []wardrobe.Category, target wardrobe.Category) bool {
	for _, c := range categories {
		if c == target {
			return true
		}
	}
	return false
}
