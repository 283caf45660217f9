package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/container"
)

// ── FrameworkServiceProvider ──────────────────────────────────────────────────

// FrameworkServiceProvider registers the types every application can use
// from a definition file.
//
// Registered types:
//   - "framework.Placeholder" → *Placeholder (post-processor)
//
// Properties of framework.Placeholder:
//   - ignoreUnresolvable (boolean)
type FrameworkServiceProvider struct {
	Log *zap.Logger
}

func (p *FrameworkServiceProvider) Register(types *container.TypeRegistry) {
	types.Register(PlaceholderType, container.Constructor[Placeholder]()).
		Property("ignoreUnresolvable", container.Scalar((*Placeholder).SetIgnoreUnresolvable))
}

// Boot logs which framework post-processors the context actually used.
func (p *FrameworkServiceProvider) Boot(ctx *container.Context) error {
	if p.Log == nil {
		return nil
	}
	for _, def := range ctx.Definitions() {
		if def.PostProcessor && def.Type == PlaceholderType {
			p.Log.Debug("placeholder expansion active", zap.String("id", def.ID))
		}
	}
	return nil
}
