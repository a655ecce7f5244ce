package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"jamamcp/internal/instrumentation"
	"jamamcp/internal/logging"
	"jamamcp/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with tracing, metrics, and a
// structured audit log line per invocation.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return InstrumentedToolHandlerWithOperation(toolName, "", sc, handler)
}

// InstrumentedToolHandlerWithOperation is like InstrumentedToolHandler but
// also records the Jama API operation type (list, get, create, update) for
// more detailed metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithOperation("my_tool", "list", sc, handler))
func InstrumentedToolHandlerWithOperation(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		spanCtx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		result, err := handler(spanCtx, request)
		duration := time.Since(start)

		// A handler error or an error-shaped result both count as failures.
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		if err != nil {
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordToolInvocation(spanCtx, toolName, status, duration)
			if operation != "" {
				metrics.RecordJamaAPIOperation(spanCtx, operation, status, duration)
			}
		}

		attrs := []any{
			logging.Tool(toolName),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
		}
		if traceID := instrumentation.GetTraceID(spanCtx); traceID != "" {
			attrs = append(attrs, slog.String("trace_id", traceID))
		}
		slog.Info("tool invocation", attrs...)

		return result, err
	}
}
