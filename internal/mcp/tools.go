package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/insight"
	"github.com/blackwell-systems/sessionflow/internal/recording"
)

var (
	sessionSchema = json.RawMessage(`{"type":"object","properties":{"session_id":{"type":"string","description":"Recorded session id"}},"required":["session_id"],"additionalProperties":false}`)
	versionSchema = json.RawMessage(`{"type":"object","properties":{"version":{"type":"string","description":"Only include this experiment variant (default all)"}},"additionalProperties":false}`)
)

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type versionArgs struct {
	Version string `json:"version"`
}

// addTools registers the analysis tools on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "analyze_session",
		Description: "Flow analysis and UX insights for one recorded session.",
		InputSchema: sessionSchema,
		Handler:     s.handleAnalyzeSession,
	})
	s.registerTool(toolDef{
		Name:        "variant_report",
		Description: "Aggregated flow metrics and UX insights per experiment variant.",
		InputSchema: versionSchema,
		Handler:     s.handleVariantReport,
	})
	s.registerTool(toolDef{
		Name:        "flow_stats",
		Description: "Completion rate, top pages and exit points across recorded sessions.",
		InputSchema: versionSchema,
		Handler:     s.handleFlowStats,
	})
}

func (s *Server) handleAnalyzeSession(ctx context.Context, raw json.RawMessage) (any, error) {
	var args sessionArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.SessionID == "" {
		return nil, errors.New("session_id is required")
	}

	rec, err := s.src.Fetch(ctx, args.SessionID)
	if err != nil {
		return nil, fmt.Errorf("loading recording: %w", err)
	}
	return insight.ForSession(rec), nil
}

func (s *Server) handleVariantReport(ctx context.Context, raw json.RawMessage) (any, error) {
	var args versionArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	recs, err := recording.LoadAll(ctx, s.src, s.workers)
	if err != nil {
		return nil, fmt.Errorf("loading recordings: %w", err)
	}
	return insight.ForVariants(recording.FilterVersion(recs, args.Version), s.workers), nil
}

func (s *Server) handleFlowStats(ctx context.Context, raw json.RawMessage) (any, error) {
	var args versionArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return flow.CollectStats(ctx, s.src, args.Version, s.workers)
}
