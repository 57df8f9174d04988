package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/escrowrail"
	"github.com/aretw0/escrowrail/internal/metrics"
	"github.com/aretw0/escrowrail/pkg/adapters/memory"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/signoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuer = map[string]any{
	"entity": map[string]any{
		"legal_name":   "Acme Issuer SPV",
		"jurisdiction": "US-DE",
		"entity_type":  "special_purpose_vehicle",
		"banking": map[string]any{
			"settlement_bank": "JPMorgan Chase Bank, N.A.",
			"swift_code":      "CHASUS33",
			"aba_routing":     "021000021",
		},
		"signatories": []any{map[string]any{"name": "J. Doe", "can_bind_company": true}},
	},
}

var investor = map[string]any{
	"legal_name":   "Investor LLC",
	"jurisdiction": "US",
	"signatories":  []any{map[string]any{"name": "R. Roe", "can_bind_company": true}},
}

func newTestServer(t *testing.T) (http.Handler, *metrics.Collector) {
	t.Helper()
	collector := metrics.New()
	engine := escrowrail.New(
		escrowrail.WithIDGenerator(func() string { return "plan-1" }),
		escrowrail.WithLifecycleHooks(collector.Hooks()),
	)
	plans := signoff.NewManager(memory.NewStore(), signoff.WithHooks(collector.Hooks()))

	handler, err := NewHandler(engine, plans, WithMetrics(collector))
	require.NoError(t, err)
	return handler, collector
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	for _, name := range []string{"BuildPlanRequest", "ResolveRequest", "SignRequest", "PathRequest"} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}

func TestHealthAndDocs(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody[map[string]any](t, w)
	assert.Equal(t, "3.0.3", doc["openapi"])

	w = do(t, h, http.MethodGet, "/info", nil)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(escrowrail.Version), info["version"])
}

func TestPlanLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/plans", map[string]any{
		"deal_name": "Acme MTN",
		"amount":    "10000000",
		"entities":  []any{issuer, investor},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/plans/plan-1", w.Header().Get("Location"))
	plan := decodeBody[domain.EscrowPlan](t, w)
	assert.Equal(t, "plan-1", plan.ID)
	assert.True(t, plan.OverallValid, "%v", plan.OverallIssues)
	assert.Equal(t, "USD", plan.Terms.Currency)
	assert.Equal(t, 0, plan.Terms.MetCount())

	w = do(t, h, http.MethodGet, "/plans", nil)
	assert.JSONEq(t, `{"plans":["plan-1"]}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/plans/plan-1/resolve", map[string]any{
		"entities": []any{issuer, investor},
		"evidence": map[string]any{
			"Acme":     []string{"KYC_Passport.pdf"},
			"investor": []string{"cis_questionnaire.pdf"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	diff := decodeBody[domain.TermsDiff](t, w)
	var changed []string
	for _, c := range diff.Changes {
		changed = append(changed, c.ConditionID)
		assert.Equal(t, domain.StatusSatisfied, c.To)
	}
	assert.Equal(t, []string{"ESC-002", "ESC-003", "ESC-005"}, changed)

	w = do(t, h, http.MethodPost, "/plans/plan-1/conditions/ESC-006", map[string]any{
		"status": "SATISFIED",
		"note":   "Wire confirmation received.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	diff = decodeBody[domain.TermsDiff](t, w)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, "Wire confirmation received.", diff.Changes[0].Notes)

	w = do(t, h, http.MethodGet, "/plans/plan-1", nil)
	plan = decodeBody[domain.EscrowPlan](t, w)
	assert.Equal(t, 4, plan.Terms.MetCount())

	w = do(t, h, http.MethodGet, "/plans/plan-1?format=markdown", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "Acme MTN")

	w = do(t, h, http.MethodDelete, "/plans/plan-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/plans/plan-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignConditionErrors(t *testing.T) {
	h, _ := newTestServer(t)
	w := do(t, h, http.MethodPost, "/plans", map[string]any{
		"deal_name": "Acme MTN",
		"entities":  []any{issuer, investor},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	sign := map[string]any{"status": "WAIVED", "note": "Waived by counsel."}
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/plans/plan-1/conditions/ESC-004", sign).Code)

	tests := []struct {
		name   string
		target string
		body   map[string]any
		code   int
	}{
		{"terminal condition", "/plans/plan-1/conditions/ESC-004", sign, http.StatusConflict},
		{"unknown condition", "/plans/plan-1/conditions/ESC-099", sign, http.StatusNotFound},
		{"unknown plan", "/plans/missing/conditions/ESC-001", sign, http.StatusNotFound},
		{"missing note", "/plans/plan-1/conditions/ESC-001", map[string]any{"status": "FAILED"}, http.StatusBadRequest},
		{"pending is not a decision", "/plans/plan-1/conditions/ESC-001", map[string]any{"status": "PENDING", "note": "x"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			resp := decodeBody[Error](t, w)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestBuildPlanRejectsBadInput(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/plans", map[string]any{"entities": []any{investor}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[Error](t, w)
	require.NotNil(t, resp.Details)
	assert.Contains(t, (*resp.Details)[0], "deal_name")

	w = do(t, h, http.MethodPost, "/plans", map[string]any{
		"deal_name": "Broken",
		"entities": []any{
			investor,
			map[string]any{"legal_name": "", "jurisdiction": "Narnia"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp = decodeBody[Error](t, w)
	require.NotNil(t, resp.Details)
	require.Len(t, *resp.Details, 2)
	assert.True(t, strings.HasPrefix((*resp.Details)[0], "entities[1]: "), (*resp.Details)[0])

	w = do(t, h, http.MethodGet, "/plans", nil)
	assert.JSONEq(t, `{"plans":[]}`, w.Body.String())
}

func TestResolvePath(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/path", map[string]any{
		"originator":  issuer,
		"beneficiary": map[string]any{"legal_name": "Saigon Platform JSC", "jurisdiction": "VN"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	path := decodeBody[domain.SettlementPath](t, w)
	assert.Equal(t, "Acme Issuer SPV", path.Originator)
	assert.Equal(t, "USD", path.Currency)
	assert.True(t, path.RequiresFX)
	assert.NotEmpty(t, path.Nodes)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)
	do(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/plans", map[string]any{
		"deal_name": "Acme MTN",
		"entities":  []any{issuer, investor},
	}).Code)

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `escrowrail_http_requests_total{code="200",route="/healthz"} 1`)
	assert.Contains(t, body, `escrowrail_plans_built_total{valid="true"} 1`)
}
