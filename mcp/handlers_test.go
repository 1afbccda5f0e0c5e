package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/mcp"
	"github.com/ludo-technologies/hashscan/service"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error)

func setupConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "hashscan.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))
	return configFile
}

func setupCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runTool(t *testing.T, configContent string, arguments interface{}, fn handlerFunc) *mcplib.CallToolResult {
	t.Helper()
	deps := mcp.NewTestDependencies(
		service.NewCorpusReader(),
		service.NewCollisionConfigurationLoader(),
		setupConfig(t, configContent),
	)
	h := mcp.NewHandlerSet(deps)

	res, err := fn(h, context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{Arguments: arguments},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func decode(t *testing.T, res *mcplib.CallToolResult) map[string]interface{} {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestHandleRankHashes(t *testing.T) {
	corpus := setupCorpus(t, "foo\nbar\n")

	tests := map[string]struct {
		arguments   interface{}
		wantError   string
		wantResults int
	}{
		"invalid_arguments_format": {
			arguments: "not-a-map",
			wantError: "invalid arguments format",
		},
		"path_not_exist": {
			arguments: map[string]interface{}{"path": "/non/existing/path"},
			wantError: "path does not exist",
		},
		"fractional_capacity": {
			arguments: map[string]interface{}{"capacities": []interface{}{4.5}},
			wantError: "capacities must be integers",
		},
		"invalid_mode": {
			arguments: map[string]interface{}{"mode": "best", "capacities": []interface{}{4.0}},
			wantError: "analysis failed",
		},
		"explicit_corpus_all": {
			arguments: map[string]interface{}{
				"path":       corpus,
				"hashes":     []interface{}{"alphabetical", "djb2"},
				"capacities": []interface{}{4.0, 5.0},
				"mode":       "all",
			},
			wantResults: 4,
		},
		"builtin_corpus_top": {
			arguments: map[string]interface{}{
				"top_k":       3.0,
				"prime_count": 5.0,
				"min_power":   9.0,
				"max_power":   9.0,
			},
			wantResults: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := runTool(t, "", tt.arguments, (*mcp.HandlerSet).HandleRankHashes)
			if tt.wantError != "" {
				assert.True(t, res.IsError)
				assert.Contains(t, resultText(t, res), tt.wantError)
				return
			}

			out := decode(t, res)
			results, ok := out["results"].([]interface{})
			require.True(t, ok)
			assert.Len(t, results, tt.wantResults)
		})
	}
}

func TestHandleRankHashesExplicitCorpusRates(t *testing.T) {
	corpus := setupCorpus(t, "foo\nbar\n")
	res := runTool(t, "", map[string]interface{}{
		"path":       corpus,
		"hashes":     []interface{}{"alphabetical"},
		"capacities": []interface{}{4.0},
	}, (*mcp.HandlerSet).HandleRankHashes)

	out := decode(t, res)
	results := out["results"].([]interface{})
	require.Len(t, results, 1)

	first := results[0].(map[string]interface{})
	assert.Equal(t, "alphabetical", first["function"])
	assert.Equal(t, 4.0, first["capacity"])
	assert.Equal(t, 0.0, first["collision_rate"])
	assert.Equal(t, []interface{}{corpus}, out["corpus_sources"])
}

func TestHandleRankHashesUsesConfig(t *testing.T) {
	res := runTool(t, "[ranking]\ntop_k = 2\n", map[string]interface{}{
		"prime_count": 3.0,
		"min_power":   9.0,
		"max_power":   9.0,
	}, (*mcp.HandlerSet).HandleRankHashes)

	out := decode(t, res)
	assert.Len(t, out["results"], 2)
}

func TestHandleRankHashesFullOutput(t *testing.T) {
	res := runTool(t, "", map[string]interface{}{
		"hashes":      []interface{}{"djb2"},
		"capacities":  []interface{}{0.0, 7.0},
		"mode":        "all",
		"output_mode": "full",
	}, (*mcp.HandlerSet).HandleRankHashes)
	require.False(t, res.IsError)

	var response domain.CollisionResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &response))
	assert.Len(t, response.Results, 2)
	assert.Len(t, response.Functions, 1)
	assert.NotEmpty(t, response.Warnings)
}

func TestHandleEvaluateHash(t *testing.T) {
	corpus := setupCorpus(t, "a\nb\nc\nd\n")

	t.Run("missing_function", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{}, (*mcp.HandlerSet).HandleEvaluateHash)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "function parameter is required")
	})

	t.Run("unknown_function", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{"function": "crc32"}, (*mcp.HandlerSet).HandleEvaluateHash)
		assert.True(t, res.IsError)
	})

	t.Run("capacity_order", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{
			"function":   "DJB2",
			"path":       corpus,
			"capacities": []interface{}{1.0, 64.0, 2.0},
		}, (*mcp.HandlerSet).HandleEvaluateHash)

		out := decode(t, res)
		results := out["results"].([]interface{})
		require.Len(t, results, 3)

		capacities := []float64{}
		for _, r := range results {
			entry := r.(map[string]interface{})
			assert.Equal(t, "djb2", entry["function"])
			capacities = append(capacities, entry["capacity"].(float64))
		}
		assert.Equal(t, []float64{1, 64, 2}, capacities)
		assert.Equal(t, 0.75, results[0].(map[string]interface{})["collision_rate"])
	})
}

func TestHandleDigestString(t *testing.T) {
	t.Run("missing_keys", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{}, (*mcp.HandlerSet).HandleDigestString)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "keys parameter is required")
	})

	t.Run("unknown_hash", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{
			"keys":   []interface{}{"foo"},
			"hashes": []interface{}{"crc32"},
		}, (*mcp.HandlerSet).HandleDigestString)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "digest failed")
	})

	t.Run("alphabetical", func(t *testing.T) {
		res := runTool(t, "", map[string]interface{}{
			"keys":   []interface{}{"foo", "bar"},
			"hashes": []interface{}{"alphabetical"},
		}, (*mcp.HandlerSet).HandleDigestString)

		out := decode(t, res)
		digests := out["digests"].([]interface{})
		require.Len(t, digests, 2)
		assert.Equal(t, "71949", digests[0].(map[string]interface{})["decimal"])
		assert.Equal(t, "68884", digests[1].(map[string]interface{})["decimal"])
	})
}

func TestHandleListHashes(t *testing.T) {
	res := runTool(t, "", map[string]interface{}{}, (*mcp.HandlerSet).HandleListHashes)

	out := decode(t, res)
	functions := out["functions"].([]interface{})
	require.Len(t, functions, 17)
	assert.Equal(t, "alphabetical", functions[0].(map[string]interface{})["name"])
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("hashscan-test", "0.0.0", server.WithToolCapabilities(true))
	assert.NotPanics(t, func() {
		mcp.RegisterTools(s, mcp.NewDependencies(""))
	})
	assert.Equal(t, []string{"rank_hashes", "evaluate_hash", "digest_string", "list_hashes"}, mcp.ToolNames)
}
