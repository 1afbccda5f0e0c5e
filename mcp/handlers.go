package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies("")
	}
	return &HandlerSet{deps: deps}
}

// HandleRankHashes handles the rank_hashes tool
func (h *HandlerSet) HandleRankHashes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.collisionRequest(args)
	if errResult != nil {
		return errResult, nil
	}

	if hashes, ok := stringSliceArg(args, "hashes"); ok {
		req.Functions = hashes
		req.ExplicitFlags[config.FlagHash] = true
	}
	if extended, ok := args["extended"].(bool); ok {
		req.Extended = extended
		req.ExplicitFlags[config.FlagExtended] = true
	}
	if mode, ok := args["mode"].(string); ok {
		req.Mode = domain.RankMode(mode)
		req.ExplicitFlags[config.FlagMode] = true
	}
	if topK, ok := args["top_k"].(float64); ok {
		req.TopK = int(topK)
		req.ExplicitFlags[config.FlagTop] = true
	}
	if threshold, ok := args["threshold"].(float64); ok {
		req.Threshold = threshold
		req.ExplicitFlags[config.FlagThreshold] = true
	}

	return h.runCollision(ctx, req, outputMode(args))
}

// HandleEvaluateHash handles the evaluate_hash tool
func (h *HandlerSet) HandleEvaluateHash(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	name, ok := args["function"].(string)
	if !ok {
		return mcp.NewToolResultError("function parameter is required and must be a string"), nil
	}
	fn, err := hashfn.Lookup(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req, errResult := h.collisionRequest(args)
	if errResult != nil {
		return errResult, nil
	}
	req.Functions = []string{fn.Name}
	req.Mode = domain.RankModeAll
	req.ExplicitFlags[config.FlagHash] = true
	req.ExplicitFlags[config.FlagMode] = true

	return h.runCollision(ctx, req, outputMode(args))
}

// HandleDigestString handles the digest_string tool
func (h *HandlerSet) HandleDigestString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	keys, ok := stringSliceArg(args, "keys")
	if !ok || len(keys) == 0 {
		return mcp.NewToolResultError("keys parameter is required and must be a non-empty array of strings"), nil
	}

	digestReq := domain.DigestRequest{Keys: keys}
	if hashes, ok := stringSliceArg(args, "hashes"); ok {
		digestReq.Functions = hashes
	}
	if extended, ok := args["extended"].(bool); ok {
		digestReq.Extended = extended
	}

	entries, err := h.deps.DigestService().Digest(ctx, digestReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("digest failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"digests": entries})
}

// HandleListHashes handles the list_hashes tool
func (h *HandlerSet) HandleListHashes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fns := hashfn.All()
	catalog := make([]map[string]interface{}, len(fns))
	for i, fn := range fns {
		catalog[i] = map[string]interface{}{
			"name":        fn.Name,
			"aliases":     fn.Aliases,
			"description": fn.Description,
			"width":       fn.Width,
			"normative":   fn.Normative,
			"extended":    fn.Extended,
		}
	}
	return jsonResult(map[string]interface{}{"functions": catalog})
}

// collisionRequest parses the corpus and capacity arguments shared by the collision tools
func (h *HandlerSet) collisionRequest(args map[string]interface{}) (domain.CollisionRequest, *mcp.CallToolResult) {
	req := domain.CollisionRequest{
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  io.Discard,
		NoOpen:        true,
		ConfigPath:    h.deps.ConfigPath(),
		ExplicitFlags: map[string]bool{},
	}

	if path, ok := args["path"].(string); ok && path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return req, mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
		}
		req.Paths = []string{path}
	}

	if raw, ok := args["capacities"].([]interface{}); ok {
		for _, v := range raw {
			size, ok := v.(float64)
			if !ok || size != float64(int64(size)) {
				return req, mcp.NewToolResultError(fmt.Sprintf("capacities must be integers, got %v", v))
			}
			req.Capacities = append(req.Capacities, int64(size))
		}
		req.ExplicitFlags[config.FlagCapacity] = true
	}

	intArgs := []struct {
		key  string
		flag string
		dst  *int
	}{
		{"prime_count", config.FlagPrimeCount, &req.PrimeCount},
		{"min_power", config.FlagMinPower, &req.MinPower},
		{"max_power", config.FlagMaxPower, &req.MaxPower},
	}
	for _, a := range intArgs {
		if v, ok := args[a.key].(float64); ok {
			*a.dst = int(v)
			req.ExplicitFlags[a.flag] = true
		}
	}

	if dedupe, ok := args["dedupe"].(bool); ok {
		req.Dedupe = dedupe
		req.ExplicitFlags[config.FlagDedupe] = true
	}

	return req, nil
}

func (h *HandlerSet) runCollision(ctx context.Context, req domain.CollisionRequest, mode string) (*mcp.CallToolResult, error) {
	useCase, err := h.deps.BuildCollisionUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create use case: %v", err)), nil
	}

	response, err := useCase.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	if mode == "full" {
		return jsonResult(response)
	}
	return jsonResult(formatCollisionSummary(response))
}

func formatCollisionSummary(response *domain.CollisionResponse) map[string]interface{} {
	results := make([]map[string]interface{}, len(response.Results))
	for i, r := range response.Results {
		results[i] = map[string]interface{}{
			"function":       r.Function,
			"capacity":       r.Capacity,
			"collision_rate": r.CollisionRate,
			"expected_rate":  r.ExpectedRate,
		}
	}

	summary := map[string]interface{}{
		"results":        results,
		"corpus_size":    response.Summary.CorpusSize,
		"evaluations":    response.Summary.Evaluations,
		"best_rate":      response.Summary.BestRate,
		"mode":           response.Summary.Mode,
		"corpus_sources": response.CorpusSources,
	}
	if len(response.Warnings) > 0 {
		summary["warnings"] = response.Warnings
	}
	return summary
}

func outputMode(args map[string]interface{}) string {
	if om, ok := args["output_mode"].(string); ok {
		return om
	}
	return "summary"
}

// stringSliceArg reads an array of strings; non-string items are skipped
func stringSliceArg(args map[string]interface{}, key string) ([]string, bool) {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
