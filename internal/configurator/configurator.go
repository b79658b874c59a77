// Package configurator is the application service around the calculation
// engine: it enriches a configuration from the catalog, runs the engine,
// ranks gearmotors and persists the outcome.
package configurator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/catalog"
	"github.com/Simplici0/conveyor/internal/gearmotor"
	"github.com/Simplici0/conveyor/internal/logger"
	"github.com/Simplici0/conveyor/internal/record"
	"github.com/Simplici0/conveyor/internal/store"
	"github.com/Simplici0/conveyor/internal/validation"
)

// ErrInvalidRequest marks a request that failed structural validation.
var ErrInvalidRequest = errors.New("configurator: invalid request")

// DefaultCandidateLimit caps the ranked gearmotor list when a request sets no
// limit.
const DefaultCandidateLimit = 10

// Repository persists configurations.
type Repository interface {
	Save(ctx context.Context, c store.Configuration) (store.Configuration, error)
	Get(ctx context.Context, id string) (store.Configuration, error)
	List(ctx context.Context, query string) ([]store.Summary, error)
}

// Request is one calculation request.
type Request struct {
	Inputs              record.Record   `json:"inputs" validate:"required"`
	ProductKey          string          `json:"product_key"`
	Parameters          json.RawMessage `json:"parameters,omitempty"`
	TargetServiceFactor float64         `json:"target_service_factor" validate:"omitempty,gte=1,lte=4"`
	CandidateLimit      int             `json:"candidate_limit" validate:"gte=0,lte=100"`
	MaxSpeedDeltaPct    float64         `json:"max_speed_delta_pct" validate:"omitempty,gt=0"`
	Vendor              string          `json:"vendor,omitempty" validate:"max=100"`
}

// SaveRequest is a calculation request that is also persisted.
type SaveRequest struct {
	Request
	ID    string `json:"id,omitempty" validate:"omitempty,uuid"`
	Title string `json:"title" validate:"max=200"`
}

// Response is the engine result with its gearmotor shortlist.
type Response struct {
	Result     calc.Result           `json:"result"`
	Candidates []gearmotor.Candidate `json:"candidates"`
	Belt       *catalog.Belt         `json:"belt,omitempty"`
}

// Service wires the engine to the catalog and the repository.
type Service struct {
	catalog catalog.Client
	repo    Repository
	params  calc.Parameters
	log     *logger.Logger
}

// New returns a Service using params as the base engineering constants.
func New(cat catalog.Client, repo Repository, params calc.Parameters) *Service {
	return &Service{
		catalog: cat,
		repo:    repo,
		params:  params,
		log:     logger.Named("configurator"),
	}
}

// Parameters returns the base engineering constants.
func (s *Service) Parameters() calc.Parameters {
	return s.params
}

// Calculate runs one request. Domain problems are reported in the result;
// the error is reserved for malformed requests and infrastructure failures.
func (s *Service) Calculate(ctx context.Context, req Request) (Response, error) {
	resp, _, err := s.calculate(ctx, req)
	return resp, err
}

// calculate also returns the migrated inputs without catalog values, which
// is what gets stored so a reload picks up catalog changes.
func (s *Service) calculate(ctx context.Context, req Request) (Response, record.Record, error) {
	if err := check(req); err != nil {
		return Response{}, nil, err
	}
	params, err := s.resolveParameters(req.Parameters)
	if err != nil {
		return Response{}, nil, err
	}

	migrated, err := record.Migrate(req.Inputs)
	if err != nil {
		return Response{}, nil, fmt.Errorf("migrate inputs: %w", err)
	}

	rec := migrated.Clone()
	belt, beltErr := s.enrichBelt(ctx, rec)
	if beltErr != nil && !errors.Is(beltErr, catalog.ErrNotFound) {
		return Response{}, nil, beltErr
	}

	res, err := calc.Run(rec, &params, req.ProductKey)
	if err != nil {
		return Response{}, nil, fmt.Errorf("run calculation: %w", err)
	}
	if beltErr != nil && calc.RequiresBeltValidation(req.ProductKey) {
		res.Errors = append(res.Errors, calc.Issue{
			Field:    record.KeyBeltCatalogKey,
			Message:  fmt.Sprintf("belt %q is not in the catalog", rec.String(record.KeyBeltCatalogKey)),
			Severity: calc.SeverityError,
		})
		res.Success = false
	}

	candidates, err := s.rank(ctx, res.Outputs, req, params)
	if err != nil {
		return Response{}, nil, err
	}

	logger.C(ctx).Info().
		Str("component", "configurator").
		Str("product_key", req.ProductKey).
		Bool("success", res.Success).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Int("candidates", len(candidates)).
		Msg("calculated configuration")

	return Response{Result: res, Candidates: candidates, Belt: belt}, migrated, nil
}

// Save calculates req and stores the normalized inputs with their result.
func (s *Service) Save(ctx context.Context, req SaveRequest) (store.Configuration, error) {
	if err := check(req); err != nil {
		return store.Configuration{}, err
	}
	resp, inputs, err := s.calculate(ctx, req.Request)
	if err != nil {
		return store.Configuration{}, err
	}

	saved, err := s.repo.Save(ctx, store.Configuration{
		ID:            req.ID,
		Title:         strings.TrimSpace(req.Title),
		ProductKey:    req.ProductKey,
		SchemaVersion: record.CurrentSchemaVersion,
		Inputs:        inputs,
		Result:        resp.Result,
	})
	if err != nil {
		return store.Configuration{}, fmt.Errorf("save configuration: %w", err)
	}
	s.log.Info().Str("id", saved.ID).Bool("success", saved.Result.Success).Msg("saved configuration")
	return saved, nil
}

// Load returns a stored configuration recalculated against the current
// schema and parameters.
func (s *Service) Load(ctx context.Context, id string) (store.Configuration, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return store.Configuration{}, fmt.Errorf("load configuration: %w", err)
	}
	resp, inputs, err := s.calculate(ctx, Request{Inputs: c.Inputs, ProductKey: c.ProductKey})
	if err != nil {
		return store.Configuration{}, err
	}
	c.Inputs = inputs
	c.SchemaVersion = record.CurrentSchemaVersion
	c.Result = resp.Result
	return c, nil
}

// List returns stored configuration summaries.
func (s *Service) List(ctx context.Context, query string) ([]store.Summary, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	return items, nil
}

// Candidates ranks the catalog against an explicit requirement, optionally
// restricted to one vendor.
func (s *Service) Candidates(ctx context.Context, req gearmotor.Requirement, vendor string) ([]gearmotor.Candidate, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	points, err := s.catalog.PerformancePoints(ctx, candidateFilter(req, vendor))
	if err != nil {
		return nil, fmt.Errorf("load performance points: %w", err)
	}
	return gearmotor.Rank(req, points), nil
}

func (s *Service) resolveParameters(raw json.RawMessage) (calc.Parameters, error) {
	p := s.params
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}
	// Overrides decode over a private copy of the base constants.
	p.BeltWeightBrackets = append([]calc.BeltWeightBracket(nil), s.params.BeltWeightBrackets...)
	p.TubeStressLimitsPsi = make(map[string]float64, len(s.params.TubeStressLimitsPsi))
	for k, v := range s.params.TubeStressLimitsPsi {
		p.TubeStressLimitsPsi[k] = v
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return calc.Parameters{}, fmt.Errorf("%w: parameters: %v", ErrInvalidRequest, err)
	}
	return p, nil
}

// enrichBelt fills belt coefficients and pulley limits from the catalog into
// rec, leaving values the caller supplied untouched.
func (s *Service) enrichBelt(ctx context.Context, rec record.Record) (*catalog.Belt, error) {
	key := rec.String(record.KeyBeltCatalogKey)
	if key == "" {
		return nil, nil
	}
	b, err := s.catalog.Belt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("look up belt: %w", err)
	}

	fill := func(k string, v float64) {
		if !rec.Has(k) && !math.IsNaN(v) {
			rec[k] = v
		}
	}
	fill(record.KeyBeltPIW, b.PIW)
	fill(record.KeyBeltPIL, b.PIL)
	fill(record.KeyBeltMinDiaNoVGuide, b.MinPulley.NoVGuideIn.Float())
	fill(record.KeyBeltMinDiaWithVGuide, b.MinPulley.WithVGuideIn.Float())
	return &b, nil
}

func (s *Service) rank(ctx context.Context, out calc.Outputs, req Request, params calc.Parameters) ([]gearmotor.Candidate, error) {
	if !out.GearmotorOutputRPM.Valid() || !out.GearmotorTorqueInLb.Valid() {
		return []gearmotor.Candidate{}, nil
	}

	targetSF := req.TargetServiceFactor
	if targetSF == 0 {
		targetSF = params.TargetServiceFactor
	}
	requirement := gearmotor.FromOutputs(out, targetSF)
	requirement.Limit = req.CandidateLimit
	if requirement.Limit == 0 {
		requirement.Limit = DefaultCandidateLimit
	}
	requirement.MaxSpeedDeltaPct = req.MaxSpeedDeltaPct

	points, err := s.catalog.PerformancePoints(ctx, candidateFilter(requirement, req.Vendor))
	if err != nil {
		return nil, fmt.Errorf("load performance points: %w", err)
	}
	return gearmotor.Rank(requirement, points), nil
}

// candidateFilter narrows the catalog query to the speed window of req. The
// bounds are padded slightly; Rank applies the exact window.
func candidateFilter(req gearmotor.Requirement, vendor string) catalog.Filter {
	f := catalog.Filter{Vendor: strings.TrimSpace(vendor)}
	if req.MaxSpeedDeltaPct > 0 && req.OutputRPM > 0 {
		span := req.OutputRPM * req.MaxSpeedDeltaPct / 100
		pad := req.OutputRPM * 1e-6
		f.MinOutputRPM = math.Max(req.OutputRPM-span-pad, 0)
		f.MaxOutputRPM = req.OutputRPM + span + pad
	}
	return f
}

func check(v any) error {
	issues := validation.Get().Struct(v)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, is.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}
