package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
)

// DefinitionPostProcessor rewrites bean definitions before any bean is
// instantiated. Processors must not keep state between calls.
//
// A processor may rewrite def.Properties and def.Refs only; changing the
// id, type or processor flag aborts startup, as does a returned error.
//
// ProcessDefinition runs while the context holds its startup lock, so it
// must not call back into the Context.
type DefinitionPostProcessor interface {
	ProcessDefinition(def *beans.Definition) error
}

// postProcess instantiates every definition tagged as a post-processor,
// configures it with its own scalar properties, then runs each processor,
// in list order, over every ordinary definition.
func (c *Context) postProcess() error {
	c.processors = make(map[string]any)

	var chain []DefinitionPostProcessor
	var ids []string
	for _, def := range c.definitions {
		if !def.PostProcessor {
			continue
		}
		p, err := c.preparePostProcessor(def)
		if err != nil {
			return err
		}
		chain = append(chain, p)
		ids = append(ids, def.ID)
	}

	if len(chain) == 0 {
		return nil
	}

	for i := range c.definitions {
		def := &c.definitions[i]
		if def.PostProcessor {
			continue
		}
		for j, p := range chain {
			id, typeName := def.ID, def.Type
			if err := runPostProcessor(p, def); err != nil {
				return instantiationError(ids[j], PostProcessed,
					fmt.Errorf("processing %q: %w", id, err))
			}
			if def.ID != id || def.Type != typeName || def.PostProcessor {
				return instantiationError(ids[j], PostProcessed,
					fmt.Errorf("processing %q: only properties and refs may change", id))
			}
		}
	}

	c.log.Debug("definitions post-processed", zap.Strings("processors", ids))
	return nil
}

func (c *Context) preparePostProcessor(def beans.Definition) (DefinitionPostProcessor, error) {
	if len(def.Refs) > 0 {
		return nil, bindingError(def.ID, PostProcessed,
			fmt.Errorf("post-processor cannot declare references"))
	}

	instance, err := c.types.construct(def)
	if err != nil {
		return nil, instantiationError(def.ID, PostProcessed, err)
	}
	if err := c.applyScalars(def, instance); err != nil {
		return nil, bindingError(def.ID, PostProcessed, err)
	}

	p, ok := instance.(DefinitionPostProcessor)
	if !ok {
		return nil, instantiationError(def.ID, PostProcessed,
			fmt.Errorf("%T does not implement DefinitionPostProcessor", instance))
	}
	c.processors[def.ID] = instance
	return p, nil
}

func runPostProcessor(p DefinitionPostProcessor, def *beans.Definition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return p.ProcessDefinition(def)
}
