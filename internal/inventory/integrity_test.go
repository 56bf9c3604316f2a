package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
)

func TestCheckProduct_ValidReference(t *testing.T) {
	categories := []model.Category{{ID: "c1", Name: "Dairy"}}
	p := model.Product{ID: "p1", Name: "Milk", Category: "c1"}

	assert.Empty(t, CheckProduct(p, categories))
}

func TestCheckProduct_DanglingReference(t *testing.T) {
	categories := []model.Category{{ID: "c1", Name: "Dairy"}}
	p := model.Product{ID: "p1", Name: "Milk", Category: "gone"}

	warnings := CheckProduct(p, categories)
	require.Len(t, warnings, 1)
	assert.Equal(t, repo.WarnCodeDanglingReference, warnings[0].Code)
	assert.Equal(t, "p1", warnings[0].ID)
	assert.Contains(t, warnings[0].Message, "gone")
}

func TestCheckProduct_EmptyReferenceNotFlagged(t *testing.T) {
	// Empty category is a validation concern, not a dangling reference.
	p := model.Product{ID: "p1", Name: "Milk"}
	assert.Empty(t, CheckProduct(p, nil))
}

func TestCheckProducts_CollectsEveryViolation(t *testing.T) {
	categories := []model.Category{{ID: "c1", Name: "Dairy"}}
	products := []model.Product{
		{ID: "p1", Name: "Milk", Category: "c1"},
		{ID: "p2", Name: "Bread", Category: "gone-1"},
		{ID: "p3", Name: "Eggs", Category: "gone-2"},
	}

	warnings := CheckProducts(products, categories)
	require.Len(t, warnings, 2)
	assert.Equal(t, "p2", warnings[0].ID)
	assert.Equal(t, "p3", warnings[1].ID)
}
