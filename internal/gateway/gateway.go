// Package gateway implements the dispatch gateway: it resolves tool names
// against the policy-filtered registry, invokes handlers with the right
// calling convention and normalizes every outcome into a uniform wire shape.
package gateway

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/snowgate/snowgate/internal/catalog"
	"github.com/snowgate/snowgate/internal/config"
	"github.com/snowgate/snowgate/internal/sqlwrite"
	"github.com/snowgate/snowgate/internal/telemetry"
	"github.com/snowgate/snowgate/internal/tools"
	"github.com/snowgate/snowgate/pkg/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config holds the configuration parameters for initializing the Gateway.
type Config struct {
	Registry *catalog.Registry

	DB       *gorm.DB
	Detector *sqlwrite.Detector

	AllowWrite         bool
	ExcludeTools       []string
	ExcludeJSONResults bool
	Exclusions         *config.ExclusionPatterns

	Metrics telemetry.CustomMetrics
	Logger  *zap.Logger
}

// Gateway dispatches named tool invocations to their handlers.
// All of its state is read-only after construction, so it is safe for
// concurrent use without synchronization. The insight memo manages its own.
type Gateway struct {
	registry *catalog.Registry

	db       *gorm.DB
	detector *sqlwrite.Detector
	memo     *tools.Memo

	allowWrite         bool
	excludeTools       []string
	excludeJSONResults bool
	exclusions         *config.ExclusionPatterns

	metrics telemetry.CustomMetrics
	logger  *zap.Logger
}

// NewGateway creates a new Gateway from the given config.
func NewGateway(c *Config) (*Gateway, error) {
	if c.Registry == nil {
		return nil, fmt.Errorf("gateway requires a tool registry")
	}

	metrics := c.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopCustomMetrics()
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		registry:           c.Registry,
		db:                 c.DB,
		detector:           c.Detector,
		memo:               tools.NewMemo(),
		allowWrite:         c.AllowWrite,
		excludeTools:       c.ExcludeTools,
		excludeJSONResults: c.ExcludeJSONResults,
		exclusions:         c.Exclusions,
		metrics:            metrics,
		logger:             logger,
	}, nil
}

// ListTools returns the registry projection that crosses the API boundary:
// name, description and input schema only.
func (g *Gateway) ListTools() []types.Tool {
	entries := g.registry.Tools()
	out := make([]types.Tool, len(entries))
	for i, t := range entries {
		out[i] = types.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}
	}
	return out
}

// Memo returns the insight memo shared across invocations.
func (g *Gateway) Memo() *tools.Memo {
	return g.memo
}

// Invoke dispatches one tool call and always resolves to a ToolInvokeResult:
// no failure below this boundary propagates as a raw fault.
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]any) (result *types.ToolInvokeResult) {
	started := time.Now()
	outcome := telemetry.ToolCallOutcomeError

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("tool handler panicked", zap.String("tool", name), zap.Any("panic", r))
			result = &types.ToolInvokeResult{Error: fmt.Sprint(r)}
		}
		g.metrics.RecordToolCall(ctx, name, outcome, time.Since(started))
	}()

	// The explicit exclusion list is checked independently of registry
	// membership, so an excluded name never reaches a handler even if the
	// registry were to contain it.
	if slices.Contains(g.excludeTools, name) {
		return &types.ToolInvokeResult{
			Error: fmt.Sprintf("Tool %s is excluded from this data connection", name),
		}
	}

	// Resolution is against the registry, not the full catalog: a tool
	// filtered out by write policy is indistinguishable from one that never
	// existed. Both produce the same generic error on purpose.
	tool, ok := g.registry.Lookup(name)
	if !ok {
		return &types.ToolInvokeResult{Error: fmt.Sprintf("Unknown tool: %s", name)}
	}

	req := &tools.Request{
		Args:               args,
		DB:                 g.db,
		Detector:           g.detector,
		Memo:               g.memo,
		AllowWrite:         g.allowWrite,
		ExcludeJSONResults: g.excludeJSONResults,
	}
	// Only enumeration tools receive the exclusion patterns: they must
	// suppress configured namespaces, while execution tools must not
	// re-filter query results by name.
	if tool.Category == catalog.CategoryEnumeration {
		req.Exclusions = g.exclusions
	}

	handlerResult, err := tool.Handler(ctx, req)
	if err != nil {
		g.logger.Error("tool invocation failed", zap.String("tool", name), zap.Error(err))
		return &types.ToolInvokeResult{Error: err.Error()}
	}

	outcome = telemetry.ToolCallOutcomeSuccess
	return &types.ToolInvokeResult{Result: normalizeResult(handlerResult)}
}

// normalizeResult converts a handler result into the wire payload:
// sequences become a list of strings (extracting the textual field of each
// element where present), anything else is coerced to a single string.
func normalizeResult(v any) any {
	switch result := v.(type) {
	case []tools.Content:
		texts := make([]string, len(result))
		for i, c := range result {
			texts[i] = c.Text
		}
		return texts
	case []string:
		return result
	case []any:
		texts := make([]string, len(result))
		for i, item := range result {
			if c, ok := item.(tools.Content); ok {
				texts[i] = c.Text
			} else {
				texts[i] = fmt.Sprint(item)
			}
		}
		return texts
	case string:
		return result
	default:
		return fmt.Sprint(result)
	}
}
