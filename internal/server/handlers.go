package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/service"
)

// queryRequest pairs price evidence with a single market condition.
type queryRequest struct {
	Prices    service.PriceRequest `json:"prices"`
	Condition conditionPayload     `json:"condition"`
}

// handicapRequest pairs price evidence with a handicap line.
type handicapRequest struct {
	Prices service.PriceRequest `json:"prices"`
	Line   float64              `json:"line"`
}

// conditionPayload is the wire form of a MarketCondition. Result classes use
// the conventional betting codes ("1", "X", "2", "1X", "12", "X2").
type conditionPayload struct {
	FirstHalf  scopePayload `json:"first_half"`
	SecondHalf scopePayload `json:"second_half"`
	FullTime   scopePayload `json:"full_time"`
}

type scopePayload struct {
	Result     *string       `json:"result,omitempty"`
	Total      *totalPayload `json:"total,omitempty"`
	BothScored *bool         `json:"both_scored,omitempty"`
	Exact      *models.Score `json:"exact_score,omitempty"`
}

type totalPayload struct {
	Cmp  string  `json:"cmp"` // "over", "under" or "exactly"
	Line float64 `json:"line"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (p conditionPayload) toCondition() (models.MarketCondition, error) {
	var cond models.MarketCondition
	scopes := []struct {
		payload scopePayload
		scope   models.Scope
	}{
		{p.FirstHalf, models.ScopeFirstHalf},
		{p.SecondHalf, models.ScopeSecondHalf},
		{p.FullTime, models.ScopeFullTime},
	}
	for _, sc := range scopes {
		part, err := sc.payload.toCondition(sc.scope)
		if err != nil {
			return models.MarketCondition{}, err
		}
		cond = cond.And(part)
	}
	return cond, nil
}

func (p scopePayload) toCondition(scope models.Scope) (models.MarketCondition, error) {
	var cond models.MarketCondition
	if p.Result != nil {
		class, err := models.ParseResultClass(*p.Result)
		if err != nil {
			return models.MarketCondition{}, err
		}
		cond = cond.And(models.ResultCondition(scope, class))
	}
	if p.Total != nil {
		cmp, err := parseTotalComparison(p.Total.Cmp)
		if err != nil {
			return models.MarketCondition{}, err
		}
		cond = cond.And(models.TotalsCondition(scope, cmp, p.Total.Line))
	}
	if p.BothScored != nil {
		cond = cond.And(models.BothScoredCondition(scope, *p.BothScored))
	}
	if p.Exact != nil {
		cond = cond.And(models.ExactScoreCondition(scope, *p.Exact))
	}
	return cond, nil
}

func parseTotalComparison(cmp string) (models.TotalComparison, error) {
	switch cmp {
	case "over":
		return models.TotalOver, nil
	case "under":
		return models.TotalUnder, nil
	case "exactly":
		return models.TotalExactly, nil
	}
	return 0, fmt.Errorf("unknown total comparison %q", cmp)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	var req service.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sheet, err := s.pricing.Sheet(req)
	if err != nil {
		s.writePricingError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cond, err := req.Condition.toCondition()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	price, err := s.pricing.Query(req.Prices, cond)
	if err != nil {
		s.writePricingError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, price)
}

func (s *Server) handleHandicap(w http.ResponseWriter, r *http.Request) {
	var req handicapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	triple, twoWay, err := s.pricing.QueryHandicap(req.Prices, req.Line)
	if err != nil {
		s.writePricingError(w, err)
		return
	}
	if twoWay != nil {
		s.writeJSON(w, http.StatusOK, twoWay)
		return
	}
	s.writeJSON(w, http.StatusOK, triple)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   s.cfg.App.Name,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writePricingError distinguishes recoverable input problems from internal
// faults: validation and non-convergence map to 422, anything else to 500.
func (s *Server) writePricingError(w http.ResponseWriter, err error) {
	if service.IsValidationError(err) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	s.log.WithError(err).Error("pricing request failed")
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}
