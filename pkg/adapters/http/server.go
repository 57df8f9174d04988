package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/escrowrail"
	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/aretw0/escrowrail/internal/metrics"
	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/aretw0/escrowrail/pkg/signoff"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Engine defines the planning operations exposed over HTTP.
type Engine interface {
	BuildPlan(ctx context.Context, dealName string, profiles []domain.Profile, currency string, amount decimal.Decimal) *domain.EscrowPlan
	ResolvePath(originator, beneficiary domain.Profile, currency string) domain.SettlementPath
	AutoResolve(ctx context.Context, plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) int
}

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go openapi.yaml

// Server implements the generated ServerInterface.
type Server struct {
	Engine   Engine
	Plans    *signoff.Manager
	Metrics  *metrics.Collector
	Logger   *slog.Logger
	Currency string

	spec *openapi3.T
}

var _ ServerInterface = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request counts and exposes GET /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.Metrics = c
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithCurrency sets the currency used when a request names none.
func WithCurrency(code string) Option {
	return func(s *Server) {
		s.Currency = code
	}
}

// NewHandler creates the HTTP handler for the engine.
// Plans built through the API are stored with the sign-off manager.
func NewHandler(engine Engine, plans *signoff.Manager, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Engine:   engine,
		Plans:    plans,
		Logger:   logging.NewNop(),
		Currency: domain.BaseCurrency,
		spec:     spec,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		raw, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.Logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Write(raw)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:  r,
		Middlewares: []MiddlewareFunc{bodyValidator{doc: spec}.Middleware},
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	}), nil
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		if s.Metrics != nil {
			s.Metrics.ObserveRequest(route, status)
		}
		s.Logger.DebugContext(r.Context(), "request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Escrowrail API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, Info{
		App:        "escrowrail-http",
		Version:    strings.TrimSpace(escrowrail.Version),
		ApiVersion: apiVersion,
	})
}

// BuildPlan handles the POST /plans request.
func (s *Server) BuildPlan(w http.ResponseWriter, r *http.Request) {
	var body BuildPlanJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}

	profiles, ok := s.parseEntities(w, body.Entities)
	if !ok {
		return
	}
	amount := decimal.Zero
	if body.Amount != nil && *body.Amount != "" {
		var err error
		if amount, err = decimal.NewFromString(*body.Amount); err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}
	}

	plan := s.Engine.BuildPlan(r.Context(), body.DealName, profiles, s.currency(body.Currency), amount)
	if body.AutoResolve != nil && *body.AutoResolve {
		s.Engine.AutoResolve(r.Context(), plan, profiles, evidenceIndex(body.Evidence))
	}
	if err := s.Plans.Save(r.Context(), plan); err != nil {
		s.Logger.ErrorContext(r.Context(), "plan save failed", "plan_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "plan save failed")
		return
	}
	w.Header().Set("Location", "/plans/"+plan.ID)
	writeJSON(w, http.StatusCreated, plan)
}

// ListPlans handles the GET /plans request.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Plans.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, PlanList{Plans: &ids})
}

// GetPlan handles the GET /plans/{planId} request.
// The plan is rendered as Markdown when format=markdown.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request, planId PlanID, params GetPlanParams) {
	plan, err := s.Plans.Load(r.Context(), planId)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if params.Format != nil && *params.Format == Markdown {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, report.Markdown(plan, report.Options{Diagram: true}))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan handles the DELETE /plans/{planId} request.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request, planId PlanID) {
	if err := s.Plans.Delete(r.Context(), planId); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AutoResolve handles the POST /plans/{planId}/resolve request.
func (s *Server) AutoResolve(w http.ResponseWriter, r *http.Request, planId PlanID) {
	var body AutoResolveJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	var records []Entity
	if body.Entities != nil {
		records = *body.Entities
	}
	profiles, ok := s.parseEntities(w, records)
	if !ok {
		return
	}

	diff, err := s.Plans.AutoResolve(r.Context(), planId, profiles, evidenceIndex(body.Evidence))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

// SignCondition handles the POST /plans/{planId}/conditions/{conditionId} request.
func (s *Server) SignCondition(w http.ResponseWriter, r *http.Request, planId PlanID, conditionId string) {
	var body SignConditionJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}

	diff, err := s.Plans.Sign(r.Context(), planId, conditionId, domain.ConditionStatus(body.Status), body.Note)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

// ResolvePath handles the POST /path request.
func (s *Server) ResolvePath(w http.ResponseWriter, r *http.Request) {
	var body ResolvePathJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	profiles, ok := s.parseEntities(w, []Entity{body.Originator, body.Beneficiary})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.ResolvePath(profiles[0], profiles[1], s.currency(body.Currency)))
}

// -- Helpers --

// decode reads a body the validator middleware has already checked.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		s.Logger.WarnContext(r.Context(), "request body rejected", "err", err)
		return false
	}
	return true
}

func (s *Server) currency(requested *string) string {
	if requested == nil || strings.TrimSpace(*requested) == "" {
		return s.Currency
	}
	return *requested
}

// parseEntities validates every record and answers 422 listing all failures.
func (s *Server) parseEntities(w http.ResponseWriter, records []Entity) ([]domain.Profile, bool) {
	profiles := make([]domain.Profile, 0, len(records))
	var details []string
	for i, raw := range records {
		p, err := schema.Parse(raw)
		if err != nil {
			errs := schema.ValidationErrors(err)
			if errs == nil {
				errs = []error{err}
			}
			for _, e := range errs {
				details = append(details, fmt.Sprintf("entities[%d]: %v", i, e))
			}
			continue
		}
		profiles = append(profiles, p)
	}
	if len(details) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "invalid entity profiles", details...)
		return nil, false
	}
	return profiles, true
}

func evidenceIndex(e *Evidence) domain.EvidenceIndex {
	if e == nil {
		return nil
	}
	return domain.EvidenceIndex(*e)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrPlanNotFound), errors.Is(err, domain.ErrConditionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrMissingNote):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "plan is locked by another sign-off")
	default:
		s.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, code int, msg string, details ...string) {
	resp := Error{Error: msg}
	if len(details) > 0 {
		resp.Details = &details
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
