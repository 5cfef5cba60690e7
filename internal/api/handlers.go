package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/scoring"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ClassifyResponse is the data of POST /api/classify.
type ClassifyResponse struct {
	Match model.CategoryMatch `json:"match"`
	Tags  []string            `json:"tags"`
}

// ClassifyBatchRequest is the body of POST /api/classify/batch.
type ClassifyBatchRequest struct {
	Bills []model.BillInput `json:"bills"`
}

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	Reference  *model.Location        `json:"reference"`
	Sort       string                 `json:"sort,omitempty"`
	Candidates []model.PlaceCandidate `json:"candidates"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"status": "ok",
		"rules":  s.classifier.GetRuleCount(),
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req model.BillInput
	if !decodeBody(w, r, &req) {
		return
	}

	match := s.classifier.Classify(req.Text, req.CompanyName, req.Description)
	tags := s.classifier.SuggestTags(match.Category, match.Subcategory)

	slog.Debug("Classified bill", "category", match.Category, "confidence", match.Confidence)
	writeSuccess(w, ClassifyResponse{Match: match, Tags: tags})
}

func (s *Server) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var req ClassifyBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	matches, err := s.classifier.ClassifyBatch(r.Context(), req.Bills)
	if err != nil {
		slog.Error("Failed to classify batch", "error", err)
		writeError(w, http.StatusInternalServerError, CodeServerError, "")
		return
	}

	results := make([]ClassifyResponse, len(matches))
	for i, m := range matches {
		results[i] = ClassifyResponse{Match: m, Tags: s.classifier.SuggestTags(m.Category, m.Subcategory)}
	}

	writeSuccess(w, map[string]any{"results": results})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, CodeMissingParams, "missing required parameter: category")
		return
	}
	subcategory := strings.TrimSpace(r.URL.Query().Get("subcategory"))

	writeSuccess(w, map[string]any{
		"tags": s.classifier.SuggestTags(category, subcategory),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Reference == nil {
		writeError(w, http.StatusBadRequest, CodeMissingParams, "missing required parameter: reference")
		return
	}

	key, err := scoring.ParseSortKey(req.Sort)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidSort, err.Error())
		return
	}

	places, err := s.scorer.Score(r.Context(), req.Candidates, req.Reference.Lat, req.Reference.Lon)
	if err != nil {
		slog.Error("Failed to score candidates", "error", err)
		writeError(w, http.StatusInternalServerError, CodeServerError, "")
		return
	}

	writeSuccess(w, map[string]any{
		"places": scoring.SortBy(places, key),
	})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"rules": s.classifier.Rules(),
	})
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("Rejected malformed request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, CodeInvalidParams, "invalid request body: "+err.Error())
		return false
	}
	return true
}
