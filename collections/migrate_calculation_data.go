package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// legacyBid covers both historical shapes of a stored competitor bid: the
// newer {firma_adi, teklif_tutari} rows and the older {firma, tutar} rows.
type legacyBid struct {
	FirmaAdi     string  `json:"firma_adi"`
	Firma        string  `json:"firma"`
	TeklifTutari float64 `json:"teklif_tutari"`
	Tutar        float64 `json:"tutar"`
}

func (b legacyBid) firm() string {
	if b.FirmaAdi != "" {
		return b.FirmaAdi
	}
	return b.Firma
}

func (b legacyBid) amount() float64 {
	if b.TeklifTutari != 0 {
		return b.TeklifTutari
	}
	return b.Tutar
}

type legacyCalculation struct {
	RakipTeklifler []legacyBid `json:"rakipTeklifler"`
	TeklifListesi  []legacyBid `json:"teklifListesi"`
}

// MigrateLegacyCompetingBids adopts competitor bids that older versions
// stored as JSON blobs on the tender record into competing_bids rows. The
// newer rakipTeklifler list wins over the older teklifListesi when both are
// present. Safe to call on every startup -- tenders that already have
// competing_bids rows are skipped.
func MigrateLegacyCompetingBids(app *pocketbase.PocketBase) error {
	tendersCol, err := app.FindCollectionByNameOrId("tenders")
	if err != nil {
		return fmt.Errorf("migrate: could not find tenders collection: %w", err)
	}
	bidsCol, err := app.FindCollectionByNameOrId("competing_bids")
	if err != nil {
		return fmt.Errorf("migrate: could not find competing_bids collection: %w", err)
	}

	tenders, err := app.FindRecordsByFilter(tendersCol, "legacy_calculation != ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query tenders with legacy data: %w", err)
	}
	if len(tenders) == 0 {
		return nil
	}

	migrated := 0
	for _, tender := range tenders {
		raw := tender.GetString("legacy_calculation")
		if raw == "" || raw == "null" {
			continue
		}

		existing, err := app.FindRecordsByFilter(bidsCol, "tender = {:tender}", "", 1, 0, map[string]any{"tender": tender.Id})
		if err != nil {
			log.Printf("migrate: could not check competing bids for tender %s: %v\n", tender.Id, err)
			continue
		}
		if len(existing) > 0 {
			continue // already migrated or hand-entered
		}

		var legacy legacyCalculation
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			log.Printf("migrate: unreadable legacy calculation on tender %s: %v\n", tender.Id, err)
			continue
		}

		bids := legacy.RakipTeklifler
		if len(bids) == 0 {
			bids = legacy.TeklifListesi
		}
		if len(bids) == 0 {
			continue
		}

		for i, b := range bids {
			r := core.NewRecord(bidsCol)
			r.Set("tender", tender.Id)
			r.Set("sort_order", i+1)
			r.Set("firm", b.firm())
			r.Set("amount", b.amount())
			if err := app.Save(r); err != nil {
				log.Printf("migrate: failed to save bid %d for tender %s: %v\n", i+1, tender.Id, err)
			}
		}

		migrated++
		log.Printf("migrate: tender %q (%s) -> %d competing bid row(s)\n", tender.GetString("title"), tender.Id, len(bids))
	}

	if migrated > 0 {
		log.Printf("migrate: legacy competing bid migration complete (%d tender(s)).\n", migrated)
	}
	return nil
}
