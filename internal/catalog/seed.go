package catalog

import (
	"math/rand"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/shopspring/decimal"
)

func item(name, category, unitPrice string) model.CatalogItem {
	return model.CatalogItem{Name: name, Category: category, UnitPrice: decimal.RequireFromString(unitPrice)}
}

// PaperSupplies is the full product catalog. Paper types are priced per sheet,
// products and large-format items per unit.
func PaperSupplies() []model.CatalogItem {
	return []model.CatalogItem{
		item("A4 paper", "paper", "0.05"),
		item("Letter-sized paper", "paper", "0.06"),
		item("Cardstock", "paper", "0.15"),
		item("Colored paper", "paper", "0.10"),
		item("Glossy paper", "paper", "0.20"),
		item("Matte paper", "paper", "0.18"),
		item("Recycled paper", "paper", "0.08"),
		item("Eco-friendly paper", "paper", "0.12"),
		item("Poster paper", "paper", "0.25"),
		item("Banner paper", "paper", "0.30"),
		item("Kraft paper", "paper", "0.10"),
		item("Construction paper", "paper", "0.07"),
		item("Wrapping paper", "paper", "0.15"),
		item("Glitter paper", "paper", "0.22"),
		item("Decorative paper", "paper", "0.18"),
		item("Letterhead paper", "paper", "0.12"),
		item("Legal-size paper", "paper", "0.08"),
		item("Crepe paper", "paper", "0.05"),
		item("Photo paper", "paper", "0.25"),
		item("Uncoated paper", "paper", "0.06"),
		item("Butcher paper", "paper", "0.10"),
		item("Heavyweight paper", "paper", "0.20"),
		item("Standard copy paper", "paper", "0.04"),
		item("Bright-colored paper", "paper", "0.12"),
		item("Patterned paper", "paper", "0.15"),

		item("Paper plates", "product", "0.10"),
		item("Paper cups", "product", "0.08"),
		item("Paper napkins", "product", "0.02"),
		item("Disposable cups", "product", "0.10"),
		item("Table covers", "product", "1.50"),
		item("Envelopes", "product", "0.05"),
		item("Sticky notes", "product", "0.03"),
		item("Notepads", "product", "2.00"),
		item("Invitation cards", "product", "0.50"),
		item("Flyers", "product", "0.15"),
		item("Party streamers", "product", "0.05"),
		item("Decorative adhesive tape (washi tape)", "product", "0.20"),
		item("Paper party bags", "product", "0.25"),
		item("Name tags with lanyards", "product", "0.75"),
		item("Presentation folders", "product", "0.50"),

		item("Large poster paper (24x36 inches)", "large_format", "1.00"),
		item("Rolls of banner paper (36-inch width)", "large_format", "2.50"),

		item("100 lb cover stock", "specialty", "0.50"),
		item("80 lb text paper", "specialty", "0.40"),
		item("250 gsm cardstock", "specialty", "0.30"),
		item("220 gsm poster paper", "specialty", "0.35"),
	}
}

// SampleInventory selects coverage*len(items) catalog items without
// replacement and assigns each a stock level in [200,800) and a minimum stock
// level in [50,150). Deterministic for a given seed.
func SampleInventory(items []model.CatalogItem, coverage float64, seed int64) []model.InventoryRecord {
	rng := rand.New(rand.NewSource(seed))

	count := int(float64(len(items)) * coverage)
	if count > len(items) {
		count = len(items)
	}

	records := make([]model.InventoryRecord, 0, count)
	for _, idx := range rng.Perm(len(items))[:count] {
		it := items[idx]
		records = append(records, model.InventoryRecord{
			ItemName:      it.Name,
			Category:      it.Category,
			UnitPrice:     it.UnitPrice,
			CurrentStock:  200 + rng.Int63n(600),
			MinStockLevel: 50 + rng.Int63n(100),
		})
	}
	return records
}
