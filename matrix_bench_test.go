package tests

import (
	"fmt"
	"testing"

	"ad-matrix-engine/internal/matrix"
)

func BenchmarkGenerate(b *testing.B) {
	campaign := matrix.CampaignConfig{
		Name:       "Bench",
		Type:       matrix.CampaignSales,
		Objective:  "OUTCOME_SALES",
		BudgetMode: matrix.BudgetCBO,
		Redirection: matrix.Redirection{
			Type: matrix.RedirectLandingPage,
			URL:  "https://example.com/offer",
		},
	}

	aud := matrix.BulkAudiencesConfig{
		PlacementPresets: []matrix.PlacementPreset{
			matrix.PlacementFeedsReels,
			matrix.PlacementStoriesOnly,
			matrix.PlacementAllPlacements,
		},
	}
	for i := 0; i < 20; i++ {
		aud.Audiences = append(aud.Audiences, matrix.AudiencePreset{
			ID:   fmt.Sprintf("a%d", i),
			Name: fmt.Sprintf("Audience %d", i),
			Type: matrix.AudienceBroad,
		})
	}

	cre := matrix.BulkCreativesConfig{
		CopyMode: matrix.CopyVariantMatrix,
		Variants: []matrix.CopyVariant{
			{ID: "v1", Name: "VP-A", AdCopy: matrix.AdCopy{Headline: "Hello {{audience}}"}},
			{ID: "v2", Name: "VP-B", AdCopy: matrix.AdCopy{Headline: "Hi from {{placement}}"}},
		},
	}
	for i := 0; i < 15; i++ {
		format := matrix.FormatImage
		if i%2 == 1 {
			format = matrix.FormatVideo
		}
		cre.Creatives = append(cre.Creatives, matrix.Creative{
			ID:          fmt.Sprintf("c%d", i),
			Name:        fmt.Sprintf("Creative %d", i),
			Format:      format,
			Label:       matrix.LabelStatic,
			FeedVersion: &matrix.MediaVersion{URL: fmt.Sprintf("https://cdn.example.com/c%d.jpg", i)},
		})
	}

	dims := matrix.Dimensions{FormatSplit: true, Creatives: true, CopyVariants: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matrix.Generate(campaign, aud, cre, dims)
	}
}
