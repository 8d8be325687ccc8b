package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"ad-matrix-engine/internal/conventions"
	"ad-matrix-engine/internal/matrix"
	"ad-matrix-engine/internal/naming"
	"ad-matrix-engine/internal/observability"
	"ad-matrix-engine/internal/params"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PreviewHandler serves the dashboard's dry-run endpoints over the
// pure matrix/naming/params core.
type PreviewHandler struct {
	Conventions *conventions.Registry
	MaxTotalAds int
}

func NewPreviewHandler(reg *conventions.Registry, maxTotalAds int) *PreviewHandler {
	return &PreviewHandler{Conventions: reg, MaxTotalAds: maxTotalAds}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error string `json:"error"`
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: verrs.Error()})
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		return false
	}
	return true
}

type GenerateRequest struct {
	Campaign   matrix.CampaignConfig      `json:"campaign" validate:"required"`
	Audiences  matrix.BulkAudiencesConfig `json:"audiences" validate:"required"`
	Creatives  matrix.BulkCreativesConfig `json:"creatives" validate:"required"`
	Dimensions matrix.Dimensions          `json:"dimensions"`
}

type GenerateResponse struct {
	AdSets []matrix.GeneratedAdSet `json:"adSets"`
	Stats  matrix.MatrixStats      `json:"stats"`
}

// Generate materializes the full ad-set matrix for a dry-run preview.
func (h *PreviewHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	aud := matrix.NormalizeAudiences(req.Audiences)

	adSets := matrix.Generate(req.Campaign, aud, req.Creatives, req.Dimensions)
	stats := matrix.Stats(aud, req.Creatives, req.Dimensions)

	total := 0
	for _, as := range adSets {
		total += len(as.Ads)
	}
	observability.GeneratedAdSets.Add(float64(len(adSets)))
	observability.GeneratedAds.Add(float64(total))
	log.Debug().Int("ad_sets", len(adSets)).Int("ads", total).Msg("matrix generated")

	writeJSON(w, http.StatusOK, GenerateResponse{AdSets: adSets, Stats: stats})
}

type StatsRequest struct {
	Audiences  matrix.BulkAudiencesConfig `json:"audiences" validate:"required"`
	Creatives  matrix.BulkCreativesConfig `json:"creatives" validate:"required"`
	Dimensions matrix.Dimensions          `json:"dimensions"`
}

type StatsResponse struct {
	matrix.MatrixStats
	OverLimit bool `json:"overLimit"`
	Limit     int  `json:"limit"`
}

// Stats returns the closed-form count triple plus the soft-limit flag
// backing the over-limit warning banner.
func (h *PreviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var req StatsRequest
	if !decode(w, r, &req) {
		return
	}
	stats := matrix.Stats(matrix.NormalizeAudiences(req.Audiences), req.Creatives, req.Dimensions)

	over := stats.TotalAds > h.MaxTotalAds
	if over {
		observability.OverLimitPreviews.Inc()
	}
	writeJSON(w, http.StatusOK, StatsResponse{MatrixStats: stats, OverLimit: over, Limit: h.MaxTotalAds})
}

type NamingPreviewRequest struct {
	Convention     *naming.Convention `json:"convention" validate:"required_without=ConventionName"`
	ConventionName string             `json:"conventionName" validate:"required_without=Convention,excluded_with=Convention"`
	Context        naming.Context     `json:"context" validate:"-"` // partial contexts are fine; naming degrades to N/A
}

type NamingPreviewResponse struct {
	Name string `json:"name"`
}

// NamingPreview resolves a campaign name from an inline convention or
// one registered in the conventions file.
func (h *PreviewHandler) NamingPreview(w http.ResponseWriter, r *http.Request) {
	var req NamingPreviewRequest
	if !decode(w, r, &req) {
		return
	}

	var conv naming.Convention
	if req.Convention != nil {
		conv = *req.Convention
	} else {
		var ok bool
		conv, ok = h.Conventions.Get(req.ConventionName)
		if !ok {
			writeJSON(w, http.StatusNotFound, apiError{Error: "unknown convention: " + req.ConventionName})
			return
		}
	}
	writeJSON(w, http.StatusOK, NamingPreviewResponse{Name: naming.GenerateCampaignName(conv, req.Context)})
}

type NamingValidateRequest struct {
	Template string `json:"template" validate:"required"`
}

type NamingValidateResponse struct {
	naming.ValidationResult
	Variables []string `json:"variables,omitempty"`
}

// NamingValidate checks a template and reports the variables it uses.
func (h *PreviewHandler) NamingValidate(w http.ResponseWriter, r *http.Request) {
	var req NamingValidateRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, NamingValidateResponse{
		ValidationResult: naming.ValidateTemplate(req.Template),
		Variables:        naming.ExtractTemplateVariables(req.Template),
	})
}

// ListConventions returns the registered convention names.
func (h *PreviewHandler) ListConventions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"conventions": h.Conventions.Names()})
}

type ParamsPreviewRequest struct {
	Text string `json:"text" validate:"required"`
}

type ParamsPreviewResponse struct {
	Preview string   `json:"preview"`
	Params  []string `json:"params,omitempty"`
}

// ParamsPreview renders ad copy with the fixed example parameter set.
func (h *PreviewHandler) ParamsPreview(w http.ResponseWriter, r *http.Request) {
	var req ParamsPreviewRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ParamsPreviewResponse{
		Preview: params.Preview(req.Text),
		Params:  params.Extract(req.Text),
	})
}
