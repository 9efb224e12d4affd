package outfit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

// FilterCandidates narrows a category's items to those passing every hard
// constraint. When none pass, the full set is returned with a gap describing
// what was relaxed.
func FilterCandidates(items []wardrobe.Item, criteria Criteria) ([]wardrobe.Item, []string) {
	if len(items) == 0 {
		return nil, []string{fmt.Sprintf("No %s items saved", criteria.Category)}
	}
	if len(criteria.Constraints) == 0 {
		return items, nil
	}

	strict := make([]wardrobe.Item, 0, len(items))
	for _, item := range items {
		if satisfiesAll(item, criteria.Constraints) {
			strict = append(strict, item)
		}
	}
	if len(strict) > 0 {
		return strict, nil
	}
	return items, []string{relaxationGap(criteria)}
}

func satisfiesAll(item wardrobe.Item, constraints []Constraint) bool {
	for _, c := range constraints {
		if !c.Match(item) {
			return false
		}
	}
	return true
}

func relaxationGap(criteria Criteria) string {
	reasons := make([]string, 0, len(criteria.Constraints))
	for _, c := range criteria.Constraints {
		if c.Reason != "" {
			reasons = append(reasons, c.Reason)
		}
	}
	gap := categoryLabel(criteria.Category) + ": No items meeting required weather protection"
	if len(reasons) > 0 {
		gap += " (" + strings.Join(reasons, "; ") + ")"
	}
	return gap
}

// categoryLabel title-cases a category. cases.Caser is not safe for concurrent use.
func categoryLabel(category wardrobe.Category) string {
	return cases.Title(language.English).String(string(category))
}
