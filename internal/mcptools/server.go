package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"salespipeline/internal/pipeline"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Tools returns every pipeline tool in registration order.
func Tools(engine *pipeline.Orchestrator) []*ActionTool {
	return []*ActionTool{
		NewEvaluateTool(engine),
		NewStatusTool(engine),
		NewReadinessTool(engine),
		NewRecommendationsTool(engine),
		NewBatchTool(engine),
		NewValidateTool(engine),
	}
}

// NewServer builds a stdio-ready MCP server around the engine.
func NewServer(engine *pipeline.Orchestrator) *server.MCPServer {
	s := server.NewMCPServer(
		"sales-pipeline",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Evaluate sales leads against the pipeline stage gates. "+
			"Every tool except pipeline_validate_transition takes the lead snapshot as a JSON string."),
	)
	for _, t := range Tools(engine) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}
