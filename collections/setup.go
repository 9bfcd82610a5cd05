package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the tenders, competing_bids,
// schedule_lines and detected_values collections exist.
func Setup(app *pocketbase.PocketBase) {
	tenders := ensureCollection(app, "tenders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "tender_type",
			Required:  false,
			Values:    []string{"hizmet", "yapim_ustyapi", "yapim_altyapi"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "approximate_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "our_bid", Required: false})
		c.Fields.Add(&core.NumberField{Name: "manual_threshold", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_margin_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "duration_months", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_meal_count", Required: false})
		c.Fields.Add(&core.JSONField{Name: "cost_breakdown", Required: false, MaxSize: 2 << 20})
		c.Fields.Add(&core.JSONField{Name: "legacy_calculation", Required: false, MaxSize: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "competing_bids", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "tender",
			Required:      true,
			CollectionId:  tenders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "firm", Required: false})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: false})
	})

	ensureCollection(app, "schedule_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "tender",
			Required:      true,
			CollectionId:  tenders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "work_item", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
	})

	ensureCollection(app, "detected_values", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "tender",
			Required:      true,
			CollectionId:  tenders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "label", Required: false})
		c.Fields.Add(&core.JSONField{Name: "value", Required: false, MaxSize: 1 << 16})
		c.Fields.Add(&core.SelectField{
			Name:      "value_type",
			Required:  true,
			Values:    []string{"currency", "text", "number"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "source",
			Required:  true,
			Values:    []string{"document", "analysis", "calculation", "external-lookup"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "selected"})
		c.Fields.Add(&core.BoolField{Name: "applied"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
