package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/escrowrail"
	"github.com/aretw0/escrowrail/internal/presentation/report"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/registry"
	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/aretw0/escrowrail/pkg/signoff"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"
)

const (
	// AgentsURI is the resource listing the escrow agent registry.
	AgentsURI = "escrowrail://agents"
	// AgentURITemplate resolves a single escrow agent by bank identifier code.
	AgentURITemplate = "escrowrail://agents/{swift}"
	// BanksURI is the resource listing the known bank directory.
	BanksURI = "escrowrail://banks"
)

// PlanResponse is the structured result of the build_plan tool.
type PlanResponse struct {
	PlanID          string   `json:"plan_id" jsonschema_description:"Identifier of the stored plan"`
	OverallValid    bool     `json:"overall_valid" jsonschema_description:"True when every leg is valid and every entity has a bank"`
	Issues          []string `json:"overall_issues" jsonschema_description:"Plan level issues"`
	Recommendations []string `json:"recommendations" jsonschema_description:"Ordered action items"`
	Report          string   `json:"report" jsonschema_description:"Markdown summary of the plan"`
}

// BuildPlanArgs are the arguments of the build_plan tool.
type BuildPlanArgs struct {
	DealName    string `json:"deal_name"`
	Entities    string `json:"entities"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
	Evidence    string `json:"evidence"`
	AutoResolve bool   `json:"auto_resolve"`
}

// ResolvePathArgs are the arguments of the resolve_path tool.
type ResolvePathArgs struct {
	Originator  string `json:"originator"`
	Beneficiary string `json:"beneficiary"`
	Currency    string `json:"currency"`
}

// SignConditionArgs are the arguments of the sign_condition tool.
type SignConditionArgs struct {
	PlanID      string `json:"plan_id"`
	ConditionID string `json:"condition_id"`
	Status      string `json:"status"`
	Note        string `json:"note"`
}

// Engine defines the planning operations the MCP server exposes.
type Engine interface {
	BuildPlan(ctx context.Context, dealName string, profiles []domain.Profile, currency string, amount decimal.Decimal) *domain.EscrowPlan
	ResolvePath(originator, beneficiary domain.Profile, currency string) domain.SettlementPath
	AutoResolve(ctx context.Context, plan *domain.EscrowPlan, profiles []domain.Profile, evidence domain.EvidenceIndex) int
	Agents() *registry.Agents
	Directory() *registry.Directory
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	plans     *signoff.Manager
	currency  string
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// Built plans are stored with the sign-off manager.
func NewServer(engine Engine, plans *signoff.Manager, currency string) *Server {
	if currency == "" {
		currency = domain.BaseCurrency
	}
	s := &Server{
		engine:    engine,
		plans:     plans,
		currency:  currency,
		mcpServer: server.NewMCPServer("escrowrail-mcp", strings.TrimSpace(escrowrail.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: build_plan
	buildTool := mcp.NewTool("build_plan",
		mcp.WithDescription("Build an escrow and settlement rail plan for a deal group and store it."),
		mcp.WithString("deal_name", mcp.Required(), mcp.Description("Name of the deal")),
		mcp.WithString("entities", mcp.Required(), mcp.Description("JSON array of entity profiles")),
		mcp.WithString("currency", mcp.Description("ISO currency code (defaults to the configured currency)")),
		mcp.WithString("amount", mcp.Description("Decimal escrow amount")),
		mcp.WithString("evidence", mcp.Description("JSON object mapping evidence folders to file names")),
		mcp.WithBoolean("auto_resolve", mcp.Description("Resolve conditions from the evidence before storing")),
		mcp.WithOutputSchema[PlanResponse](),
	)
	s.mcpServer.AddTool(buildTool, mcp.NewStructuredToolHandler(s.handleBuildPlan))

	// TOOL: resolve_path
	pathTool := mcp.NewTool("resolve_path",
		mcp.WithDescription("Resolve the bank path between two entities."),
		mcp.WithString("originator", mcp.Required(), mcp.Description("JSON object of the paying entity")),
		mcp.WithString("beneficiary", mcp.Required(), mcp.Description("JSON object of the receiving entity")),
		mcp.WithString("currency", mcp.Description("ISO currency code")),
		mcp.WithOutputSchema[domain.SettlementPath](),
	)
	s.mcpServer.AddTool(pathTool, mcp.NewStructuredToolHandler(s.handleResolvePath))

	// TOOL: sign_condition
	signTool := mcp.NewTool("sign_condition",
		mcp.WithDescription("Record a manual decision on a PENDING release condition of a stored plan."),
		mcp.WithString("plan_id", mcp.Required(), mcp.Description("Stored plan ID")),
		mcp.WithString("condition_id", mcp.Required(), mcp.Description("Condition ID, e.g. ESC-006")),
		mcp.WithString("status", mcp.Required(), mcp.Enum("SATISFIED", "WAIVED", "FAILED"), mcp.Description("New status")),
		mcp.WithString("note", mcp.Required(), mcp.Description("Justification for the decision")),
		mcp.WithOutputSchema[domain.TermsDiff](),
	)
	s.mcpServer.AddTool(signTool, mcp.NewStructuredToolHandler(s.handleSignCondition))

	// TOOL: get_plan
	s.mcpServer.AddTool(mcp.NewTool("get_plan",
		mcp.WithDescription("Get the Markdown report of a stored plan."),
		mcp.WithString("plan_id", mcp.Required(), mcp.Description("Stored plan ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		plan, err := s.plans.Load(ctx, request.GetString("plan_id", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(report.Markdown(plan, report.Options{})), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleBuildPlan(ctx context.Context, request mcp.CallToolRequest, args BuildPlanArgs) (PlanResponse, error) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(args.Entities), &records); err != nil {
		return PlanResponse{}, fmt.Errorf("entities must be a JSON array: %w", err)
	}
	profiles, err := parseProfiles(records)
	if err != nil {
		return PlanResponse{}, err
	}

	amount := decimal.Zero
	if args.Amount != "" {
		if amount, err = decimal.NewFromString(args.Amount); err != nil {
			return PlanResponse{}, fmt.Errorf("invalid amount: %w", err)
		}
	}

	plan := s.engine.BuildPlan(ctx, args.DealName, profiles, s.currencyOr(args.Currency), amount)
	if args.AutoResolve {
		evidence := domain.EvidenceIndex{}
		if args.Evidence != "" {
			var raw map[string][]string
			if err := json.Unmarshal([]byte(args.Evidence), &raw); err != nil {
				return PlanResponse{}, fmt.Errorf("evidence must be a JSON object: %w", err)
			}
			for folder, files := range raw {
				for _, f := range files {
					evidence.Add(folder, f)
				}
			}
		}
		s.engine.AutoResolve(ctx, plan, profiles, evidence)
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return PlanResponse{}, fmt.Errorf("save failed: %w", err)
	}

	return PlanResponse{
		PlanID:          plan.ID,
		OverallValid:    plan.OverallValid,
		Issues:          plan.OverallIssues,
		Recommendations: plan.Recommendations,
		Report:          report.Markdown(plan, report.Options{}),
	}, nil
}

func (s *Server) handleResolvePath(ctx context.Context, request mcp.CallToolRequest, args ResolvePathArgs) (domain.SettlementPath, error) {
	records := make([]map[string]any, 2)
	for i, raw := range []string{args.Originator, args.Beneficiary} {
		if err := json.Unmarshal([]byte(raw), &records[i]); err != nil {
			return domain.SettlementPath{}, fmt.Errorf("entity %d must be a JSON object: %w", i+1, err)
		}
	}
	profiles, err := parseProfiles(records)
	if err != nil {
		return domain.SettlementPath{}, err
	}
	return s.engine.ResolvePath(profiles[0], profiles[1], s.currencyOr(args.Currency)), nil
}

func (s *Server) handleSignCondition(ctx context.Context, request mcp.CallToolRequest, args SignConditionArgs) (domain.TermsDiff, error) {
	diff, err := s.plans.Sign(ctx, args.PlanID, args.ConditionID, domain.ConditionStatus(strings.ToUpper(args.Status)), args.Note)
	if err != nil {
		return domain.TermsDiff{}, fmt.Errorf("sign-off failed: %w", err)
	}
	return *diff, nil
}

func (s *Server) registerResources() {
	// EXPOSE: escrowrail://agents
	s.mcpServer.AddResource(mcp.NewResource(AgentsURI, "Escrow Agent Registry",
		mcp.WithMIMEType("application/json"),
	), s.readAgents)

	// EXPOSE: escrowrail://agents/{swift}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(AgentURITemplate, "Escrow Agent",
		mcp.WithTemplateDescription("A single escrow agent looked up by SWIFT code"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readAgent)

	// EXPOSE: escrowrail://banks
	s.mcpServer.AddResource(mcp.NewResource(BanksURI, "Bank Directory",
		mcp.WithMIMEType("application/json"),
	), s.readBanks)
}

func (s *Server) readAgents(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(AgentsURI, s.engine.Agents().All())
}

func (s *Server) readAgent(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	code := strings.TrimPrefix(uri, AgentsURI+"/")
	agent, ok := s.engine.Agents().Agent(code)
	if !ok {
		return nil, fmt.Errorf("unknown escrow agent: %s", code)
	}
	return jsonResource(uri, agent)
}

func (s *Server) readBanks(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(BanksURI, s.engine.Directory().Banks())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) currencyOr(code string) string {
	if code == "" {
		return s.currency
	}
	return strings.ToUpper(code)
}

func parseProfiles(records []map[string]any) ([]domain.Profile, error) {
	profiles := make([]domain.Profile, 0, len(records))
	var errs []error
	for i, raw := range records {
		p, err := schema.Parse(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("entity %d: %w", i+1, err))
			continue
		}
		profiles = append(profiles, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return profiles, nil
}
