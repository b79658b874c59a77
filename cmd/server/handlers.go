package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/conveyor/internal/catalog"
	"github.com/Simplici0/conveyor/internal/configurator"
	"github.com/Simplici0/conveyor/internal/gearmotor"
	"github.com/Simplici0/conveyor/internal/logger"
	"github.com/Simplici0/conveyor/internal/record"
	"github.com/Simplici0/conveyor/internal/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req configurator.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.svc.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Parameters())
}

func (s *server) handleSaveConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurator.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = ""

	saved, err := s.svc.Save(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleUpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurator.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	saved, err := s.svc.Save(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequirement(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	candidates, err := s.svc.Candidates(r.Context(), req, r.URL.Query().Get("vendor"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// parseRequirement reads rpm and torque (required) and sf, limit,
// max_delta_pct, drive_dia and chain_ratio (optional) from the query string.
// The vendor filter is read by the handler.
func parseRequirement(q url.Values) (gearmotor.Requirement, error) {
	var req gearmotor.Requirement
	fields := []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"rpm", &req.OutputRPM, true},
		{"torque", &req.TorqueInLb, true},
		{"sf", &req.TargetServiceFactor, false},
		{"max_delta_pct", &req.MaxSpeedDeltaPct, false},
		{"drive_dia", &req.DriveDiaIn, false},
		{"chain_ratio", &req.ChainRatio, false},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			if f.required {
				return req, fmt.Errorf("%w: %s is required", configurator.ErrInvalidRequest, f.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: %s must be a number", configurator.ErrInvalidRequest, f.name)
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("%w: limit must be an integer", configurator.ErrInvalidRequest)
		}
		req.Limit = n
	}
	return req, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", configurator.ErrInvalidRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, configurator.ErrInvalidRequest),
		errors.Is(err, record.ErrMalformed),
		errors.Is(err, record.ErrUnsupportedSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
