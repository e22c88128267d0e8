package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaforge/pkg/observability"
)

// debugHooks logs cache and PLC resolution events at debug level.
type debugHooks struct {
	logger *log.Logger
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnAssigned(_ context.Context, source string, rows int) {
	h.logger.Debug("plc channels assigned", "source", source, "rows", rows)
}

func (h debugHooks) OnShortfall(_ context.Context, kind, plcType string, count int) {
	h.logger.Debug("plc shortfall", "kind", kind, "type", plcType, "count", count)
}

// RegisterHooks routes cache and resolve events to the CLI logger. Call it
// once from main.
func (c *CLI) RegisterHooks() {
	h := debugHooks{logger: c.Logger}
	observability.SetCacheHooks(h)
	observability.SetResolveHooks(h)
}
