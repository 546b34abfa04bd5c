// Package serve exposes the gemini tools over MCP so editor and agent
// hosts can call them. The server speaks stdio and registers one tool
// per builtin template plus config, templates, and status resources.
package serve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gembridge/internal/cache"
	"gembridge/internal/config"
	"gembridge/internal/gemini"
	"gembridge/internal/review"
	"gembridge/internal/templates"
)

// caller is the slice of gemini.Client the server needs. Tests swap in
// a fake.
type caller interface {
	VerifyAuthentication(ctx context.Context) error
	CallStructured(ctx context.Context, systemPrompt, userPrompt, contextText string, opts *gemini.Options) (gemini.Response, error)
}

// Server wires the gemini client, template catalog, and response
// cache behind MCP tools.
type Server struct {
	cfg     *config.Config
	client  caller
	catalog *templates.Catalog
	cache   *cache.Store // nil when caching is disabled
	opts    gemini.Options
}

// New builds a Server from loaded config. The cache store may be nil.
func New(cfg *config.Config, client *gemini.Client, catalog *templates.Catalog, store *cache.Store) *Server {
	return &Server{
		cfg:     cfg,
		client:  client,
		catalog: catalog,
		cache:   store,
		opts:    OptionsFromConfig(cfg),
	}
}

// OptionsFromConfig maps the config's gemini section to invocation
// options.
func OptionsFromConfig(cfg *config.Config) gemini.Options {
	return gemini.Options{
		Model:           cfg.Gemini.Model,
		FallbackModels:  cfg.Gemini.FallbackModels,
		Sandbox:         cfg.Gemini.Sandbox,
		Debug:           cfg.Gemini.Debug,
		AllFiles:        cfg.Gemini.AllFiles,
		ShowMemoryUsage: cfg.Gemini.ShowMemoryUsage,
		AutoAccept:      cfg.Gemini.AutoAccept,
		Checkpointing:   cfg.Gemini.Checkpointing,
	}
}

// Run serves MCP over stdio until the context is cancelled or the
// host closes the stream.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) mcpServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    config.ServerName,
		Version: config.Version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "gemini_review_code",
		Description: "Analyze code quality, style, and potential issues using Gemini",
	}, s.reviewCode)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "gemini_proofread_feature_plan",
		Description: "Review a feature plan or specification for completeness and feasibility",
	}, s.proofreadFeaturePlan)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "gemini_analyze_bug",
		Description: "Analyze a bug report and suggest root cause and fixes",
	}, s.analyzeBug)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "gemini_explain_code",
		Description: "Explain what a piece of code does and how it works",
	}, s.explainCode)

	srv.AddResource(&mcp.Resource{
		URI:      "gembridge://config",
		Name:     "Server configuration",
		MIMEType: "application/json",
	}, s.configResource)
	srv.AddResource(&mcp.Resource{
		URI:      "gembridge://templates",
		Name:     "Available prompt templates",
		MIMEType: "application/json",
	}, s.templatesResource)
	srv.AddResource(&mcp.Resource{
		URI:      "gembridge://status",
		Name:     "Gemini CLI status",
		MIMEType: "application/json",
	}, s.statusResource)

	return srv
}

// callModel formats a template and routes the prompt through the
// client, consulting the cache on the way in and out.
func (s *Server) callModel(ctx context.Context, templateName string, values map[string]string) (gemini.Response, error) {
	tpl := s.catalog.Get(templateName)
	if tpl == nil {
		return gemini.Response{}, fmt.Errorf("template %q not found", templateName)
	}
	systemPrompt, userPrompt, err := tpl.Format(values)
	if err != nil {
		return gemini.Response{}, err
	}

	prompt := gemini.Compose(systemPrompt, userPrompt, "")
	if s.cache != nil {
		if content, ok := s.cache.Get(s.opts.Model, prompt); ok {
			return gemini.Response{
				Content:     content,
				Success:     true,
				InputPrompt: prompt,
				Metadata:    map[string]any{"cached": true, "model": s.opts.Model},
			}, nil
		}
	}

	opts := s.opts
	resp, err := s.client.CallStructured(ctx, systemPrompt, userPrompt, "", &opts)
	if err != nil {
		return gemini.Response{}, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("gemini call failed: %s", resp.ErrorMessage())
	}
	if s.cache != nil {
		// A failed write only costs us a cache miss next time.
		_ = s.cache.Put(s.opts.Model, prompt, resp.Content)
	}
	return resp, nil
}

type reviewCodeInput struct {
	Code     string `json:"code" jsonschema:"Code to review"`
	Language string `json:"language,omitempty" jsonschema:"Programming language"`
	Focus    string `json:"focus,omitempty" jsonschema:"Focus area: general, security, performance, style, or bugs"`
}

type reviewCodeOutput struct {
	Review      review.Result `json:"review"`
	InputPrompt string        `json:"input_prompt"`
	RawResponse string        `json:"gemini_response"`
}

func (s *Server) reviewCode(ctx context.Context, req *mcp.CallToolRequest, in reviewCodeInput) (*mcp.CallToolResult, reviewCodeOutput, error) {
	lang := in.Language
	if lang == "" {
		lang = "auto-detect"
	}
	resp, err := s.callModel(ctx, "code_review", map[string]string{
		"language":          lang,
		"code":              in.Code,
		"focus_instruction": review.FocusInstruction(in.Focus),
	})
	if err != nil {
		return nil, reviewCodeOutput{}, err
	}
	out := reviewCodeOutput{
		Review:      review.Parse(resp.Content),
		InputPrompt: resp.InputPrompt,
		RawResponse: resp.Content,
	}
	return textResult(review.Render(out.Review)), out, nil
}

type featurePlanInput struct {
	FeaturePlan string `json:"feature_plan" jsonschema:"Feature plan document to review"`
	Context     string `json:"context,omitempty" jsonschema:"Project context and constraints"`
	FocusAreas  string `json:"focus_areas,omitempty" jsonschema:"Specific areas to focus on"`
}

type textOutput struct {
	Result      string         `json:"result"`
	InputPrompt string         `json:"input_prompt"`
	RawResponse string         `json:"gemini_response"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (s *Server) proofreadFeaturePlan(ctx context.Context, req *mcp.CallToolRequest, in featurePlanInput) (*mcp.CallToolResult, textOutput, error) {
	resp, err := s.callModel(ctx, "feature_plan_review", map[string]string{
		"feature_plan": in.FeaturePlan,
		"context":      orDefault(in.Context, "No additional context provided"),
		"focus_areas":  orDefault(in.FocusAreas, "General review"),
	})
	if err != nil {
		return nil, textOutput{}, err
	}
	out := outputFrom(resp)
	return textResult(resp.Content), out, nil
}

type analyzeBugInput struct {
	BugDescription   string `json:"bug_description" jsonschema:"Description of the bug"`
	CodeContext      string `json:"code_context,omitempty" jsonschema:"Relevant code snippets"`
	ErrorLogs        string `json:"error_logs,omitempty" jsonschema:"Error messages and logs"`
	Environment      string `json:"environment,omitempty" jsonschema:"Environment details"`
	ReproductionStep string `json:"reproduction_steps,omitempty" jsonschema:"Steps to reproduce the issue"`
	Language         string `json:"language,omitempty" jsonschema:"Programming language"`
}

func (s *Server) analyzeBug(ctx context.Context, req *mcp.CallToolRequest, in analyzeBugInput) (*mcp.CallToolResult, textOutput, error) {
	resp, err := s.callModel(ctx, "bug_analysis", map[string]string{
		"bug_description":    in.BugDescription,
		"code_context":       orDefault(in.CodeContext, "No code provided"),
		"error_logs":         orDefault(in.ErrorLogs, "No logs provided"),
		"environment":        orDefault(in.Environment, "Not specified"),
		"reproduction_steps": orDefault(in.ReproductionStep, "Not specified"),
		"language":           orDefault(in.Language, "auto-detect"),
	})
	if err != nil {
		return nil, textOutput{}, err
	}
	return textResult(resp.Content), outputFrom(resp), nil
}

type explainCodeInput struct {
	Code        string `json:"code" jsonschema:"Code to explain"`
	Language    string `json:"language,omitempty" jsonschema:"Programming language"`
	DetailLevel string `json:"detail_level,omitempty" jsonschema:"Level of detail: basic, intermediate, or advanced"`
	Questions   string `json:"questions,omitempty" jsonschema:"Specific questions about the code"`
}

func (s *Server) explainCode(ctx context.Context, req *mcp.CallToolRequest, in explainCodeInput) (*mcp.CallToolResult, textOutput, error) {
	resp, err := s.callModel(ctx, "code_explanation", map[string]string{
		"code":         in.Code,
		"language":     orDefault(in.Language, "auto-detect"),
		"detail_level": orDefault(in.DetailLevel, "intermediate"),
		"questions":    orDefault(in.Questions, "None"),
	})
	if err != nil {
		return nil, textOutput{}, err
	}
	return textResult(resp.Content), outputFrom(resp), nil
}

func (s *Server) configResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("gembridge://config", map[string]any{
		"name":            config.ServerName,
		"version":         config.Version,
		"model":           s.opts.Model,
		"fallback_models": s.opts.FallbackModels,
		"sandbox":         s.opts.Sandbox,
		"caching":         s.cache != nil,
		"cache_ttl":       s.cfg.Cache.TTLSeconds,
	})
}

func (s *Server) templatesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	list := make(map[string]string)
	for _, tpl := range s.catalog.List() {
		list[tpl.Name] = tpl.Description
	}
	return jsonResource("gembridge://templates", list)
}

func (s *Server) statusResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	status := map[string]any{
		"server":        config.ServerName,
		"version":       config.Version,
		"model":         s.opts.Model,
		"authenticated": true,
	}
	if err := s.client.VerifyAuthentication(ctx); err != nil {
		status["authenticated"] = false
		status["error"] = err.Error()
	}
	return jsonResource("gembridge://status", status)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func outputFrom(resp gemini.Response) textOutput {
	return textOutput{
		Result:      resp.Content,
		InputPrompt: resp.InputPrompt,
		RawResponse: resp.Content,
		Metadata:    resp.Metadata,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
