package matrix

import "time"

// CampaignType classifies a campaign by marketing goal.
type CampaignType string

const (
	CampaignAwareness    CampaignType = "AWARENESS"
	CampaignTraffic      CampaignType = "TRAFFIC"
	CampaignEngagement   CampaignType = "ENGAGEMENT"
	CampaignLeads        CampaignType = "LEADS"
	CampaignAppPromotion CampaignType = "APP_PROMOTION"
	CampaignSales        CampaignType = "SALES"
)

// RedirectionType selects where a click on a generated ad lands.
type RedirectionType string

const (
	RedirectLandingPage RedirectionType = "LANDING_PAGE"
	RedirectLeadForm    RedirectionType = "LEAD_FORM"
	RedirectDeeplink    RedirectionType = "DEEPLINK"
)

// Redirection carries the type-specific destination payload.
// Exactly one of URL, FormID, Deeplink is expected to be set,
// matching Type; the engine does not enforce this (validation is the
// caller's pass).
type Redirection struct {
	Type     RedirectionType `json:"type"`
	URL      string          `json:"url,omitempty"`
	FormID   string          `json:"formId,omitempty"`
	Deeplink string          `json:"deeplink,omitempty"`
}

// BudgetMode says at which level budget is set.
type BudgetMode string

const (
	BudgetCBO BudgetMode = "CBO" // campaign level
	BudgetABO BudgetMode = "ABO" // ad set level
)

// BudgetType is the budget cadence.
type BudgetType string

const (
	BudgetDaily    BudgetType = "DAILY"
	BudgetLifetime BudgetType = "LIFETIME"
)

// Budget is an amount in integer minor units (cents).
type Budget struct {
	Amount int64      `json:"amount"`
	Type   BudgetType `json:"type"`
}

// Schedule is the campaign run window. A zero EndDate means open-ended.
type Schedule struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate,omitempty"`
}

// CampaignConfig is one campaign's top-level settings as supplied by
// the caller. Value object; never mutated by the engine.
type CampaignConfig struct {
	Name        string            `json:"name" validate:"required"`
	Type        CampaignType      `json:"type" validate:"required"`
	Objective   string            `json:"objective" validate:"required"` // platform objective code, e.g. OUTCOME_LEADS
	Redirection Redirection       `json:"redirection"`
	BudgetMode  BudgetMode        `json:"budgetMode"`
	Budget      Budget            `json:"budget"`
	Schedule    Schedule          `json:"schedule"`
	URLParams   map[string]string `json:"urlParams,omitempty"` // tracking params appended to every final URL
}

// AudienceType discriminates AudiencePreset.
type AudienceType string

const (
	AudienceBroad     AudienceType = "BROAD"
	AudienceInterest  AudienceType = "INTEREST"
	AudienceLookalike AudienceType = "LOOKALIKE"
	AudienceCustom    AudienceType = "CUSTOM_AUDIENCE"
)

// AudiencePreset is a named targeting definition. Only the fields
// relevant to Type are populated.
type AudiencePreset struct {
	ID   string       `json:"id" validate:"required"`
	Name string       `json:"name" validate:"required"`
	Type AudienceType `json:"type" validate:"required,oneof=BROAD INTEREST LOOKALIKE CUSTOM_AUDIENCE"`

	Interests         []string `json:"interests,omitempty"`         // INTEREST
	LookalikeSource   string   `json:"lookalikeSource,omitempty"`   // LOOKALIKE
	LookalikePercents []int    `json:"lookalikePercents,omitempty"` // LOOKALIKE
	CustomAudienceID  string   `json:"customAudienceId,omitempty"`  // CUSTOM_AUDIENCE
}

// PlacementPreset is a named bundle of platform surfaces.
type PlacementPreset string

const (
	PlacementFeedsReels    PlacementPreset = "FEEDS_REELS"
	PlacementStoriesOnly   PlacementPreset = "STORIES_ONLY"
	PlacementAllPlacements PlacementPreset = "ALL_PLACEMENTS"
)

var placementSurfaces = map[PlacementPreset][]string{
	PlacementFeedsReels:    {"facebook_feed", "instagram_feed", "facebook_reels", "instagram_reels"},
	PlacementStoriesOnly:   {"facebook_stories", "instagram_stories"},
	PlacementAllPlacements: {"facebook_feed", "instagram_feed", "facebook_reels", "instagram_reels", "facebook_stories", "instagram_stories", "audience_network"},
}

// Surfaces returns the fixed placement strings the preset maps to.
func (p PlacementPreset) Surfaces() []string {
	return append([]string(nil), placementSurfaces[p]...)
}

// GeoLocations are free-form selection keys per geographic level.
type GeoLocations struct {
	Countries []string `json:"countries,omitempty"`
	Regions   []string `json:"regions,omitempty"`
	Cities    []string `json:"cities,omitempty"`
}

// Demographics are the shared targeting demographics for a launch.
type Demographics struct {
	AgeMin    int      `json:"ageMin"`
	AgeMax    int      `json:"ageMax"`
	Gender    string   `json:"gender,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// BulkAudiencesConfig is the full audience-side configuration for one
// launch. PlacementPresets is never empty once normalized (see
// NormalizeAudiences).
type BulkAudiencesConfig struct {
	Audiences []AudiencePreset `json:"audiences" validate:"min=1,dive"`
	// PlacementPresets may arrive empty; NormalizeAudiences defaults
	// it to ALL_PLACEMENTS before generation.
	PlacementPresets  []PlacementPreset `json:"placementPresets" validate:"omitempty,dive,oneof=FEEDS_REELS STORIES_ONLY ALL_PLACEMENTS"`
	GeoLocations      GeoLocations      `json:"geoLocations"`
	Demographics      Demographics      `json:"demographics"`
	OptimizationEvent string            `json:"optimizationEvent,omitempty"`
	AdSetBudget       *Budget           `json:"adSetBudget,omitempty"` // ABO only
}

// CreativeFormat is derived from the uploaded media type.
type CreativeFormat string

const (
	FormatImage CreativeFormat = "IMAGE"
	FormatVideo CreativeFormat = "VIDEO"
)

// CreativeLabel feeds the {{label}} dynamic parameter.
type CreativeLabel string

const (
	LabelStatic CreativeLabel = "Static"
	LabelVideo  CreativeLabel = "Video"
	LabelUGC    CreativeLabel = "UGC"
	LabelOther  CreativeLabel = "Other"
)

// MediaVersion is one rendition of a creative (feed or story aspect).
type MediaVersion struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Creative is one creative asset bundle. Feed and story versions, when
// both present, share Format. A creative with its own Headline,
// PrimaryText or CTA overrides any copy variant for that creative.
type Creative struct {
	ID     string         `json:"id" validate:"required"`
	Name   string         `json:"name" validate:"required"`
	Format CreativeFormat `json:"format" validate:"required,oneof=IMAGE VIDEO"`
	Label  CreativeLabel  `json:"label"`

	FeedVersion  *MediaVersion `json:"feedVersion,omitempty"`
	StoryVersion *MediaVersion `json:"storyVersion,omitempty"`

	Headline    string `json:"headline,omitempty"`
	PrimaryText string `json:"primaryText,omitempty"`
	Description string `json:"description,omitempty"`
	CTA         string `json:"cta,omitempty"`
}

// AdCopy is one headline/primary-text/CTA block.
type AdCopy struct {
	Headline    string `json:"headline"`
	PrimaryText string `json:"primaryText"`
	Description string `json:"description,omitempty"`
	CTA         string `json:"cta,omitempty"`
}

// CopyVariant is a named alternative wording used for A/B copy
// multiplication.
type CopyVariant struct {
	ID   string `json:"id"`
	Name string `json:"name"` // e.g. "VP-A"
	AdCopy
}

// CopyMode is the tagged state replacing the legacy
// sameCopyForAll/enableVariants boolean pair; the pair allowed
// contradictory states the type system could not rule out.
type CopyMode string

const (
	// CopyGlobal: every ad uses GlobalCopy.
	CopyGlobal CopyMode = "GLOBAL"
	// CopyPerCreative: each ad uses CreativeCopies[creative.ID].
	CopyPerCreative CopyMode = "PER_CREATIVE"
	// CopyVariantMatrix: the variant list multiplies ads when the
	// copyVariants dimension is on; GlobalCopy is the fallback when
	// it is off or the list is empty.
	CopyVariantMatrix CopyMode = "VARIANT_MATRIX"
)

// BulkCreativesConfig is the full creative-side configuration for one
// launch.
type BulkCreativesConfig struct {
	Creatives []Creative `json:"creatives" validate:"min=1,dive"`

	CopyMode       CopyMode          `json:"copyMode"`
	GlobalCopy     AdCopy            `json:"globalCopy"`
	CreativeCopies map[string]AdCopy `json:"creativeCopies,omitempty"` // keyed by creative id
	Variants       []CopyVariant     `json:"variants,omitempty"`
}

// Dimensions are the five generation toggles. Audiences and placements
// always expand into separate ad sets regardless of any flag; only
// FormatSplit, Creatives and CopyVariants actually gate multiplication.
// Placements and FormatVariants are accepted for compatibility but have
// no effect.
type Dimensions struct {
	Placements     bool `json:"placements"`
	FormatSplit    bool `json:"formatSplit"`
	Creatives      bool `json:"creatives"`
	FormatVariants bool `json:"formatVariants"`
	CopyVariants   bool `json:"copyVariants"`
}

// GeneratedAd is one materialized ad within an ad set.
type GeneratedAd struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreativeID string `json:"creativeId"`

	Headline    string `json:"headline"`
	PrimaryText string `json:"primaryText"`
	Description string `json:"description,omitempty"`
	CTA         string `json:"cta"`

	FeedURL  string `json:"feedUrl,omitempty"`
	StoryURL string `json:"storyUrl,omitempty"`

	Destination Redirection `json:"destination"`
	FinalURL    string      `json:"finalUrl,omitempty"`
}

// GeneratedAdSet bundles one audience and placement preset (and
// optionally one format split or creative) with denormalized targeting
// and budget settings. Produced fresh on every Generate call.
type GeneratedAdSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	AudienceID      string          `json:"audienceId"`
	AudienceName    string          `json:"audienceName"`
	PlacementPreset PlacementPreset `json:"placementPreset"`
	Placements      []string        `json:"placements"`
	Format          CreativeFormat  `json:"format,omitempty"` // set only under formatSplit

	GeoLocations      GeoLocations `json:"geoLocations"`
	Demographics      Demographics `json:"demographics"`
	OptimizationEvent string       `json:"optimizationEvent,omitempty"`
	Budget            *Budget      `json:"budget,omitempty"` // ABO only

	Ads []GeneratedAd `json:"ads"`
}

// MatrixStats is the closed-form count triple shown on the preview
// stat cards. An upper bound, not an exact match, whenever creatives
// lack both feed and story media or a format split leaves a
// combination empty.
type MatrixStats struct {
	AdSets      int `json:"adSets"`
	AdsPerAdSet int `json:"adsPerAdSet"`
	TotalAds    int `json:"totalAds"`
}
