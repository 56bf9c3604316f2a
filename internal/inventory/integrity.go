package inventory

import (
	"fmt"

	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
)

// CheckProduct verifies that p's category reference points at an
// existing category. A missing reference yields a DANGLING_REFERENCE
// warning, never an error: category deletion does not cascade, so
// existing products may legitimately hold ids of deleted categories and
// their writes must still be allowed.
func CheckProduct(p model.Product, categories []model.Category) []repo.Warning {
	if p.Category == "" {
		return nil
	}
	for _, c := range categories {
		if c.ID == p.Category {
			return nil
		}
	}
	return []repo.Warning{{
		Code:    repo.WarnCodeDanglingReference,
		Message: fmt.Sprintf("product %q references missing category %q", p.Name, p.Category),
		Key:     model.KeyProducts,
		ID:      p.ID,
	}}
}

// CheckProducts runs CheckProduct over a whole collection, collecting
// every violation. Used on product reads so a dangling reference left
// behind by a category deletion is flagged on the next scan.
func CheckProducts(products []model.Product, categories []model.Category) []repo.Warning {
	var warnings []repo.Warning
	for _, p := range products {
		warnings = append(warnings, CheckProduct(p, categories)...)
	}
	return warnings
}
