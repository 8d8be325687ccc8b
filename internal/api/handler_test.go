package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-matrix-engine/internal/conventions"
	"ad-matrix-engine/internal/matrix"
)

func newTestRouter(t *testing.T, maxTotalAds int) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conventions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
conventions:
  - name: default
    template: "{{clientName}} - {{date}}"
    variables:
      date:
        format: "MMYYYY"
`), 0o644))

	reg := conventions.NewRegistry()
	require.NoError(t, reg.LoadFile(path))
	return Router(NewPreviewHandler(reg, maxTotalAds))
}

func doJSON(t *testing.T, h http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func validGenerateRequest() GenerateRequest {
	return GenerateRequest{
		Campaign: matrix.CampaignConfig{
			Name:      "Summer Launch",
			Type:      matrix.CampaignLeads,
			Objective: "OUTCOME_LEADS",
			Redirection: matrix.Redirection{
				Type: matrix.RedirectLandingPage,
				URL:  "https://acme.com/summer",
			},
			BudgetMode: matrix.BudgetCBO,
		},
		Audiences: matrix.BulkAudiencesConfig{
			Audiences: []matrix.AudiencePreset{
				{ID: "a1", Name: "A", Type: matrix.AudienceBroad},
				{ID: "a2", Name: "B", Type: matrix.AudienceBroad},
			},
			PlacementPresets: []matrix.PlacementPreset{matrix.PlacementFeedsReels},
		},
		Creatives: matrix.BulkCreativesConfig{
			Creatives: []matrix.Creative{{
				ID:          "c1",
				Name:        "C1",
				Format:      matrix.FormatImage,
				Label:       matrix.LabelStatic,
				FeedVersion: &matrix.MediaVersion{URL: "https://cdn.acme.com/c1.jpg"},
			}},
			CopyMode:   matrix.CopyGlobal,
			GlobalCopy: matrix.AdCopy{Headline: "Buy now", PrimaryText: "Deal"},
		},
	}
}

func TestGenerateEndpoint(t *testing.T) {
	h := newTestRouter(t, 250)

	w := doJSON(t, h, http.MethodPost, "/v1/matrix/generate", validGenerateRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.AdSets, 2)
	assert.Equal(t, "A - FEEDS_REELS", resp.AdSets[0].Name)
	assert.Equal(t, matrix.MatrixStats{AdSets: 2, AdsPerAdSet: 1, TotalAds: 2}, resp.Stats)
}

func TestGenerateEndpoint_DefaultsPlacements(t *testing.T) {
	h := newTestRouter(t, 250)
	req := validGenerateRequest()
	req.Audiences.PlacementPresets = nil

	w := doJSON(t, h, http.MethodPost, "/v1/matrix/generate", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.AdSets, 2)
	assert.Equal(t, matrix.PlacementAllPlacements, resp.AdSets[0].PlacementPreset)
}

func TestGenerateEndpoint_Rejections(t *testing.T) {
	h := newTestRouter(t, 250)

	missingName := validGenerateRequest()
	missingName.Campaign.Name = ""

	noAudiences := validGenerateRequest()
	noAudiences.Audiences.Audiences = nil

	badFormat := validGenerateRequest()
	badFormat.Creatives.Creatives[0].Format = "GIF"

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"missing campaign name", missingName, http.StatusUnprocessableEntity},
		{"no audiences", noAudiences, http.StatusUnprocessableEntity},
		{"unknown creative format", badFormat, http.StatusUnprocessableEntity},
		{"invalid json", "{not json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if s, ok := tt.body.(string); ok {
				req := httptest.NewRequest(http.MethodPost, "/v1/matrix/generate", bytes.NewBufferString(s))
				w = httptest.NewRecorder()
				h.ServeHTTP(w, req)
			} else {
				w = doJSON(t, h, http.MethodPost, "/v1/matrix/generate", tt.body)
			}
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStatsEndpoint_OverLimit(t *testing.T) {
	h := newTestRouter(t, 1)
	req := validGenerateRequest()

	w := doJSON(t, h, http.MethodPost, "/v1/matrix/stats", StatsRequest{
		Audiences:  req.Audiences,
		Creatives:  req.Creatives,
		Dimensions: matrix.Dimensions{},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalAds)
	assert.True(t, resp.OverLimit)
	assert.Equal(t, 1, resp.Limit)
}

func TestNamingPreviewEndpoint(t *testing.T) {
	h := newTestRouter(t, 250)

	t.Run("registered convention", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/v1/naming/preview", map[string]any{
			"conventionName": "default",
			"context": map[string]any{
				"clientName": "Acme",
				"campaign":   map[string]any{"schedule": map[string]any{"startDate": "2025-02-15T00:00:00Z"}},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp NamingPreviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Acme - 022025", resp.Name)
	})

	t.Run("inline convention", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/v1/naming/preview", map[string]any{
			"convention": map[string]any{"template": "{{clientName}}!"},
			"context":    map[string]any{"clientName": "Acme"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp NamingPreviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Acme!", resp.Name)
	})

	t.Run("unknown convention", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/v1/naming/preview", map[string]any{
			"conventionName": "nope",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("neither convention nor name", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/v1/naming/preview", map[string]any{
			"context": map[string]any{"clientName": "Acme"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestNamingValidateEndpoint(t *testing.T) {
	h := newTestRouter(t, 250)

	w := doJSON(t, h, http.MethodPost, "/v1/naming/validate", NamingValidateRequest{
		Template: "{{clientName}} - {{date}}",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp NamingValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, []string{"clientName", "date"}, resp.Variables)

	w = doJSON(t, h, http.MethodPost, "/v1/naming/validate", NamingValidateRequest{Template: "{{oops}"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
}

func TestListConventionsEndpoint(t *testing.T) {
	h := newTestRouter(t, 250)

	w := doJSON(t, h, http.MethodGet, "/v1/naming/conventions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"default"}, resp["conventions"])
}

func TestParamsPreviewEndpoint(t *testing.T) {
	h := newTestRouter(t, 250)

	w := doJSON(t, h, http.MethodPost, "/v1/params/preview", ParamsPreviewRequest{
		Text: "{{label}} ad in {{city}}",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ParamsPreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Premium ad in Paris", resp.Preview)
	assert.Equal(t, []string{"label", "city"}, resp.Params)
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, 250)
	w := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
