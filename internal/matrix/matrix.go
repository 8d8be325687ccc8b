// Package matrix expands a sparse launch configuration into the full
// combinatorial set of ad sets and ads.
//
// The engine is a pure function library: it never mutates its inputs,
// never touches the network, and never returns an error. Malformed or
// incomplete input yields fewer (or zero) ad sets; callers run their
// own validation pass before invoking it.
package matrix

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"ad-matrix-engine/internal/params"
)

const defaultCTA = "Learn More"

// Generate produces the Cartesian expansion of the launch
// configuration under the given dimensions.
//
// Axes, outermost first: every audience (always expanded), every
// selected placement preset (always expanded), the format split
// [IMAGE, VIDEO] when dims.FormatSplit, and each creative individually
// when dims.Creatives (one ad set per creative) versus the whole
// creative list as a single group otherwise. Combinations whose
// creative subset ends up empty are skipped; ad sets that end up with
// zero ads are dropped.
func Generate(campaign CampaignConfig, aud BulkAudiencesConfig, cre BulkCreativesConfig, dims Dimensions) []GeneratedAdSet {
	if len(aud.Audiences) == 0 || len(aud.PlacementPresets) == 0 || len(cre.Creatives) == 0 {
		return nil
	}

	formats := []CreativeFormat{""}
	if dims.FormatSplit {
		formats = []CreativeFormat{FormatImage, FormatVideo}
	}

	groups := [][]Creative{cre.Creatives}
	if dims.Creatives {
		groups = make([][]Creative, 0, len(cre.Creatives))
		for _, c := range cre.Creatives {
			groups = append(groups, []Creative{c})
		}
	}

	finalURL := buildFinalURL(campaign)

	var out []GeneratedAdSet
	for _, audience := range aud.Audiences {
		for _, preset := range aud.PlacementPresets {
			for _, format := range formats {
				for _, group := range groups {
					subset := filterByFormat(group, format)
					if len(subset) == 0 {
						continue
					}
					adSet := buildAdSet(campaign, aud, cre, audience, preset, format, subset, dims, finalURL)
					if len(adSet.Ads) == 0 {
						continue
					}
					out = append(out, adSet)
				}
			}
		}
	}
	return out
}

func buildAdSet(campaign CampaignConfig, aud BulkAudiencesConfig, cre BulkCreativesConfig,
	audience AudiencePreset, preset PlacementPreset, format CreativeFormat,
	subset []Creative, dims Dimensions, finalURL string) GeneratedAdSet {

	name := fmt.Sprintf("%s - %s", audience.Name, preset)
	if format != "" {
		name = fmt.Sprintf("%s - %s", name, format)
	}

	adSet := GeneratedAdSet{
		ID:                uuid.NewString(),
		Name:              name,
		AudienceID:        audience.ID,
		AudienceName:      audience.Name,
		PlacementPreset:   preset,
		Placements:        preset.Surfaces(),
		Format:            format,
		GeoLocations:      aud.GeoLocations,
		Demographics:      aud.Demographics,
		OptimizationEvent: aud.OptimizationEvent,
	}
	if campaign.BudgetMode == BudgetABO && aud.AdSetBudget != nil {
		b := *aud.AdSetBudget
		adSet.Budget = &b
	}

	ctx := params.Set{
		params.KeyAudience:  audience.Name,
		params.KeyPlacement: preset.DisplayName(),
	}
	if len(aud.GeoLocations.Countries) == 1 {
		ctx[params.KeyCountry] = aud.GeoLocations.Countries[0]
	}
	if len(aud.GeoLocations.Cities) == 1 {
		ctx[params.KeyCity] = aud.GeoLocations.Cities[0]
	}

	for _, creative := range subset {
		feedURL, storyURL := mediaURLs(creative)
		if feedURL == "" && storyURL == "" {
			continue
		}
		ctx[params.KeyLabel] = string(creative.Label)

		for _, copyBlock := range resolveCopies(creative, cre, dims) {
			headline := params.Replace(copyBlock.Headline, ctx)
			adSet.Ads = append(adSet.Ads, GeneratedAd{
				ID:          uuid.NewString(),
				Name:        fmt.Sprintf("%s - %s", creative.Name, headline),
				CreativeID:  creative.ID,
				Headline:    headline,
				PrimaryText: params.Replace(copyBlock.PrimaryText, ctx),
				Description: params.Replace(copyBlock.Description, ctx),
				CTA:         copyBlock.CTA,
				FeedURL:     feedURL,
				StoryURL:    storyURL,
				Destination: campaign.Redirection,
				FinalURL:    finalURL,
			})
		}
	}
	return adSet
}

// resolveCopies returns the ordered copy blocks for one creative.
// Precedence, highest first: the creative's own copy fields (a single
// ad, variants bypassed even when enabled), then one block per variant
// when the copyVariants dimension gates them in, then the configured
// global or per-creative copy.
func resolveCopies(creative Creative, cre BulkCreativesConfig, dims Dimensions) []AdCopy {
	if creative.Headline != "" || creative.PrimaryText != "" || creative.CTA != "" {
		return []AdCopy{{
			Headline:    creative.Headline,
			PrimaryText: creative.PrimaryText,
			Description: creative.Description,
			CTA:         creative.CTA,
		}}
	}

	if dims.CopyVariants && cre.CopyMode == CopyVariantMatrix && len(cre.Variants) > 0 {
		copies := make([]AdCopy, 0, len(cre.Variants))
		for _, v := range cre.Variants {
			copies = append(copies, v.AdCopy)
		}
		return copies
	}

	copyBlock := cre.GlobalCopy
	if cre.CopyMode == CopyPerCreative {
		copyBlock = cre.CreativeCopies[creative.ID]
	}
	if copyBlock.CTA == "" {
		copyBlock.CTA = defaultCTA
	}
	return []AdCopy{copyBlock}
}

func filterByFormat(group []Creative, format CreativeFormat) []Creative {
	if format == "" {
		return group
	}
	var out []Creative
	for _, c := range group {
		if c.Format == format {
			out = append(out, c)
		}
	}
	return out
}

func mediaURLs(c Creative) (feed, story string) {
	if c.FeedVersion != nil {
		feed = c.FeedVersion.URL
	}
	if c.StoryVersion != nil {
		story = c.StoryVersion.URL
	}
	return feed, story
}

// buildFinalURL appends the campaign's tracking params to the landing
// URL. Keys are encoded in sorted order so output is deterministic.
func buildFinalURL(campaign CampaignConfig) string {
	base := campaign.Redirection.URL
	if base == "" || len(campaign.URLParams) == 0 {
		return base
	}
	q := url.Values{}
	for k, v := range campaign.URLParams {
		q.Set(k, v)
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}

// DisplayName is the human label fed to the {{placement}} dynamic
// parameter; ad set names use the raw preset token instead.
func (p PlacementPreset) DisplayName() string {
	switch p {
	case PlacementFeedsReels:
		return "Feeds + Reels"
	case PlacementStoriesOnly:
		return "Stories"
	case PlacementAllPlacements:
		return "All Placements"
	default:
		return string(p)
	}
}

// NormalizeAudiences applies the placement-preset default: a
// configuration whose preset list went empty falls back to
// ALL_PLACEMENTS. Returns a copy; the input is not mutated.
func NormalizeAudiences(aud BulkAudiencesConfig) BulkAudiencesConfig {
	if len(aud.PlacementPresets) == 0 {
		aud.PlacementPresets = []PlacementPreset{PlacementAllPlacements}
	}
	return aud
}
