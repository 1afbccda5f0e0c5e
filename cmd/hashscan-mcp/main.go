package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ludo-technologies/hashscan/internal/version"
	"github.com/ludo-technologies/hashscan/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

const serverName = "hashscan"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flags := pflag.NewFlagSet(serverName+"-mcp", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", os.Getenv("HASHSCAN_CONFIG"), "Configuration file path (default: discovered from the corpus path)")
	_ = flags.Parse(os.Args[1:])

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewDependencies(*configPath))

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Printf("Registered tools: %s\n", strings.Join(mcp.ToolNames, ", "))
	if *configPath != "" {
		log.Printf("Using configuration: %s\n", *configPath)
	}
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
