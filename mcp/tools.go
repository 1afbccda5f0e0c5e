package mcp

import (
	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolNames lists the registered tools in registration order
var ToolNames = []string{"rank_hashes", "evaluate_hash", "digest_string", "list_hashes"}

func functionNames() []string {
	fns := hashfn.All()
	names := make([]string, len(fns))
	for i, fn := range fns {
		names[i] = fn.Name
	}
	return names
}

// capacityOptions are the capacity candidate arguments shared by rank_hashes and evaluate_hash
func capacityOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("path",
			mcp.Description("Corpus file or directory, one entry per line (default: built-in corpus of 413 city names)")),
		mcp.WithArray("capacities",
			mcp.Items(map[string]any{"type": "integer"}),
			mcp.Description("Explicit table capacities; replaces the prime and power-of-two candidates")),
		mcp.WithNumber("prime_count",
			mcp.Description("Number of leading primes used as capacities (default: 150)")),
		mcp.WithNumber("min_power",
			mcp.Description("Smallest power-of-two exponent (default: 9)")),
		mcp.WithNumber("max_power",
			mcp.Description("Largest power-of-two exponent (default: 14)")),
		mcp.WithBoolean("dedupe",
			mcp.Description("Drop repeated corpus entries before evaluating (default: false)")),
		mcp.WithString("output_mode",
			mcp.Description("summary returns results and aggregates, full returns the whole report (default: summary)")),
	}
}

// RegisterTools registers all hashscan MCP tools with the server
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	h := NewHandlerSet(deps)

	// Tool 1: rank_hashes - rank function/capacity pairs by collision rate
	rankOptions := []mcp.ToolOption{
		mcp.WithDescription("Evaluate string hash functions at many hash table capacities and rank the pairs by collision rate"),
		mcp.WithArray("hashes",
			mcp.WithStringEnumItems(functionNames()),
			mcp.Description("Hash functions to evaluate (default: the default set)")),
		mcp.WithBoolean("extended",
			mcp.Description("Evaluate every function in the catalog (default: false)")),
		mcp.WithString("mode",
			mcp.Description("Ranking mode: top, threshold or all (default: top)")),
		mcp.WithNumber("top_k",
			mcp.Description("Number of results in top mode (default: 10)")),
		mcp.WithNumber("threshold",
			mcp.Description("Report rates strictly below this value in threshold mode (default: 0.10)")),
	}
	s.AddTool(mcp.NewTool("rank_hashes", append(rankOptions, capacityOptions()...)...), h.HandleRankHashes)

	// Tool 2: evaluate_hash - one function at every capacity
	evalOptions := []mcp.ToolOption{
		mcp.WithDescription("Evaluate one hash function at every capacity candidate, in capacity order"),
		mcp.WithString("function",
			mcp.Required(),
			mcp.Description("Hash function name or alias")),
	}
	s.AddTool(mcp.NewTool("evaluate_hash", append(evalOptions, capacityOptions()...)...), h.HandleEvaluateHash)

	// Tool 3: digest_string - raw digests
	s.AddTool(mcp.NewTool("digest_string",
		mcp.WithDescription("Compute the raw digest of strings under the selected hash functions"),
		mcp.WithArray("keys",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Strings to hash")),
		mcp.WithArray("hashes",
			mcp.WithStringEnumItems(functionNames()),
			mcp.Description("Hash functions (default: the default set)")),
		mcp.WithBoolean("extended",
			mcp.Description("Use every function in the catalog (default: false)")),
	), h.HandleDigestString)

	// Tool 4: list_hashes - the catalog
	s.AddTool(mcp.NewTool("list_hashes",
		mcp.WithDescription("List the hash function catalog with aliases, digest widths and sets"),
	), h.HandleListHashes)
}
