package matrix

// Stats computes the preview count triple in closed form, without
// materializing any ad content.
//
// The formula does not model the pruning Generate applies when a
// creative has neither feed nor story media or when a format split
// leaves a combination empty, so it is an upper bound in those edge
// cases and exact otherwise. The over-limit warning in the UI relies
// on the estimate staying conservative; do not make it exact.
func Stats(aud BulkAudiencesConfig, cre BulkCreativesConfig, dims Dimensions) MatrixStats {
	if len(aud.Audiences) == 0 || len(aud.PlacementPresets) == 0 || len(cre.Creatives) == 0 {
		return MatrixStats{}
	}

	adSets := len(aud.Audiences) * len(aud.PlacementPresets)
	if dims.FormatSplit {
		adSets *= 2
	}
	adsPerAdSet := len(cre.Creatives)
	if dims.Creatives {
		adSets *= len(cre.Creatives)
		adsPerAdSet = 1
	}
	if dims.CopyVariants && cre.CopyMode == CopyVariantMatrix && len(cre.Variants) > 0 {
		adsPerAdSet *= len(cre.Variants)
	}

	return MatrixStats{
		AdSets:      adSets,
		AdsPerAdSet: adsPerAdSet,
		TotalAds:    adSets * adsPerAdSet,
	}
}
