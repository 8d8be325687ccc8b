// Package naming resolves campaign-name templates against a launch
// context.
//
// Unlike ad-copy substitution, any placeholder left unresolved after a
// full pass becomes the literal "N/A": a campaign name goes straight
// to the ad platform, so a stray {{typo}} must not survive into it.
package naming

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ad-matrix-engine/internal/matrix"
	"ad-matrix-engine/internal/params"
)

const notAvailable = "N/A"

// DateFormat selects how the {{date}} variable is rendered.
type DateFormat string

const (
	DateMMYYYY   DateFormat = "MMYYYY"
	DateMMDDYYYY DateFormat = "MMDDYYYY"
	DateISO      DateFormat = "YYYY-MM-DD"
	DateDMY      DateFormat = "DD/MM/YYYY"
)

// LocationStrategy selects which geo level feeds {{location}}.
type LocationStrategy string

const (
	LocationAuto    LocationStrategy = "auto"
	LocationCountry LocationStrategy = "country"
	LocationRegion  LocationStrategy = "region"
	LocationCity    LocationStrategy = "city"
)

// Convention is a reusable campaign-name template plus per-variable
// settings.
type Convention struct {
	Name      string    `json:"name,omitempty" yaml:"name"`
	Template  string    `json:"template" yaml:"template"`
	Variables Variables `json:"variables,omitempty" yaml:"variables"`
}

// Variables carries the pluggable settings for template variables.
type Variables struct {
	Date struct {
		Format DateFormat `json:"format,omitempty" yaml:"format"`
	} `json:"date,omitempty" yaml:"date"`
	Location struct {
		Strategy LocationStrategy `json:"strategy,omitempty" yaml:"strategy"`
	} `json:"location,omitempty" yaml:"location"`
}

// Context supplies the values a template resolves against. Campaign
// and Audiences may be nil; every variable degrades to its fallback.
type Context struct {
	ClientName string `json:"clientName,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Type       string `json:"type,omitempty"`
	Budget     string `json:"budget,omitempty"`

	Campaign  *matrix.CampaignConfig      `json:"campaign,omitempty"`
	Audiences *matrix.BulkAudiencesConfig `json:"audiences,omitempty"`

	CustomVariables map[string]string `json:"customVariables,omitempty"`
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// GenerateCampaignName resolves every placeholder in the convention's
// template. Never fails: unknown variables and missing context degrade
// to "N/A".
func GenerateCampaignName(conv Convention, ctx Context) string {
	return placeholderRe.ReplaceAllStringFunc(conv.Template, func(m string) string {
		name := strings.TrimSpace(placeholderRe.FindStringSubmatch(m)[1])
		if v, ok := resolveVariable(name, conv, ctx); ok {
			return v
		}
		for k, v := range ctx.CustomVariables {
			if strings.EqualFold(k, name) {
				return v
			}
		}
		return notAvailable
	})
}

func resolveVariable(name string, conv Convention, ctx Context) (string, bool) {
	switch {
	case strings.EqualFold(name, "clientName"):
		return fallback(ctx.ClientName, "Client"), true
	case strings.EqualFold(name, "subject"):
		return fallback(ctx.Subject, "Campaign"), true
	case strings.EqualFold(name, "type"):
		return fallback(ctx.Type, notAvailable), true
	case strings.EqualFold(name, "budget"):
		return fallback(ctx.Budget, notAvailable), true
	case strings.EqualFold(name, "date"):
		return formatDate(startDate(ctx), conv.Variables.Date.Format), true
	case strings.EqualFold(name, "location"):
		return getLocation(ctx, conv.Variables.Location.Strategy), true
	case strings.EqualFold(name, "objective"):
		return objectiveToken(ctx), true
	case strings.EqualFold(name, "redirectionType"):
		return redirectionTypeToken(ctx), true
	case strings.EqualFold(name, "redirectionName"):
		return redirectionName(ctx), true
	}
	return "", false
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func startDate(ctx Context) time.Time {
	if ctx.Campaign != nil && !ctx.Campaign.Schedule.StartDate.IsZero() {
		return ctx.Campaign.Schedule.StartDate
	}
	return time.Now()
}

func formatDate(t time.Time, f DateFormat) string {
	switch f {
	case DateMMDDYYYY:
		return t.Format("01022006")
	case DateISO:
		return t.Format("2006-01-02")
	case DateDMY:
		return t.Format("02/01/2006")
	default: // DateMMYYYY
		return t.Format("012006")
	}
}

// getLocation derives the {{location}} token from the geo selections.
// Auto picks the most specific non-empty level (cities > regions >
// countries). A single country is emitted verbatim (country codes are
// already short); single regions and cities get a level prefix;
// multiple values at any level collapse to a count label.
func getLocation(ctx Context, strategy LocationStrategy) string {
	var geo matrix.GeoLocations
	if ctx.Audiences != nil {
		geo = ctx.Audiences.GeoLocations
	}

	switch strategy {
	case LocationCountry:
		return locationToken(geo.Countries, "", "countries")
	case LocationRegion:
		return locationToken(geo.Regions, "region", "regions")
	case LocationCity:
		return locationToken(geo.Cities, "city", "cities")
	default: // auto
		if len(geo.Cities) > 0 {
			return locationToken(geo.Cities, "city", "cities")
		}
		if len(geo.Regions) > 0 {
			return locationToken(geo.Regions, "region", "regions")
		}
		return locationToken(geo.Countries, "", "countries")
	}
}

func locationToken(values []string, singular, plural string) string {
	switch len(values) {
	case 0:
		return notAvailable
	case 1:
		if singular == "" {
			return values[0]
		}
		return singular + "-" + values[0]
	default:
		return fmt.Sprintf("%s-%d", plural, len(values))
	}
}

var objectiveTokens = map[string]string{
	"OUTCOME_AWARENESS":     "AWARE",
	"OUTCOME_TRAFFIC":       "TRAFFIC",
	"OUTCOME_ENGAGEMENT":    "ENGAGE",
	"OUTCOME_LEADS":         "LEAD",
	"OUTCOME_APP_PROMOTION": "APP",
	"OUTCOME_SALES":         "SALES",
}

func objectiveToken(ctx Context) string {
	if ctx.Campaign == nil || ctx.Campaign.Objective == "" {
		return notAvailable
	}
	if tok, ok := objectiveTokens[ctx.Campaign.Objective]; ok {
		return tok
	}
	return ctx.Campaign.Objective // unknown codes pass through
}

func redirectionTypeToken(ctx Context) string {
	if ctx.Campaign == nil || ctx.Campaign.Redirection.Type == "" {
		return notAvailable
	}
	switch ctx.Campaign.Redirection.Type {
	case matrix.RedirectLandingPage:
		return "LP"
	case matrix.RedirectLeadForm:
		return "LF"
	case matrix.RedirectDeeplink:
		return "DL"
	default:
		return string(ctx.Campaign.Redirection.Type)
	}
}

var slugStripRe = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// redirectionName extracts a short slug from the landing URL: last
// non-empty path segment, stripped and truncated, with the host label
// as fallback.
func redirectionName(ctx Context) string {
	if ctx.Campaign == nil || ctx.Campaign.Redirection.URL == "" {
		return notAvailable
	}
	u, err := url.Parse(ctx.Campaign.Redirection.URL)
	if err != nil {
		return notAvailable
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		slug := slugStripRe.ReplaceAllString(segments[i], "")
		if slug != "" {
			if len(slug) > 30 {
				slug = slug[:30]
			}
			return slug
		}
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if label, _, found := strings.Cut(host, "."); found && label != "" {
		return label
	}
	if host != "" {
		return host
	}
	return notAvailable
}

// ValidationResult reports template problems found by ValidateTemplate.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateTemplate checks a template for structural problems. The UI
// calls this before accepting a template; GenerateCampaignName itself
// never rejects one.
func ValidateTemplate(template string) ValidationResult {
	var errs []string
	if strings.TrimSpace(template) == "" {
		errs = append(errs, "template is empty")
	}
	if strings.Count(template, "{{") != strings.Count(template, "}}") {
		errs = append(errs, "unbalanced {{ }} braces")
	}
	if regexp.MustCompile(`\{\{\s*\}\}`).MatchString(template) {
		errs = append(errs, "empty {{}} placeholder")
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ExtractTemplateVariables returns the de-duplicated variable names a
// template references.
func ExtractTemplateVariables(template string) []string {
	return params.Extract(template)
}
