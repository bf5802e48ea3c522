package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperSuppliesCatalog(t *testing.T) {
	items := PaperSupplies()
	require.Len(t, items, 46)

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		assert.False(t, seen[it.Name], "duplicate item %s", it.Name)
		seen[it.Name] = true
		assert.True(t, it.UnitPrice.IsPositive(), "%s must have a positive price", it.Name)
		assert.Contains(t, []string{"paper", "product", "large_format", "specialty"}, it.Category)
	}
}

func TestSampleInventoryDeterministic(t *testing.T) {
	items := PaperSupplies()

	first := SampleInventory(items, 0.4, 137)
	second := SampleInventory(items, 0.4, 137)
	require.Equal(t, first, second)

	require.Len(t, first, int(float64(len(items))*0.4))
	for _, rec := range first {
		assert.GreaterOrEqual(t, rec.CurrentStock, int64(200))
		assert.Less(t, rec.CurrentStock, int64(800))
		assert.GreaterOrEqual(t, rec.MinStockLevel, int64(50))
		assert.Less(t, rec.MinStockLevel, int64(150))
	}
}

func TestSampleInventoryCoverageCap(t *testing.T) {
	items := PaperSupplies()
	all := SampleInventory(items, 2.0, 1)
	assert.Len(t, all, len(items))
}
