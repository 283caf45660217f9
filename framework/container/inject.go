package container

import (
	"fmt"
	"sort"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/coerce"
)

// injectScalars assigns every literal property. Post-processors were
// configured when they were prepared and are skipped.
func (c *Context) injectScalars() error {
	for _, def := range c.definitions {
		if def.PostProcessor || len(def.Properties) == 0 {
			continue
		}
		if err := c.applyScalars(def, c.registry[def.ID].Instance); err != nil {
			return bindingError(def.ID, ScalarsInjected, err)
		}
	}
	return nil
}

// injectRefs wires every reference property. It runs after the registry is
// complete, so a reference may name any bean regardless of order.
func (c *Context) injectRefs() error {
	for _, def := range c.definitions {
		if len(def.Refs) == 0 {
			continue
		}
		instance := c.registry[def.ID].Instance
		for _, name := range sortedKeys(def.Refs) {
			targetID := def.Refs[name]
			target, ok := c.registry[targetID]
			if !ok {
				return bindingError(def.ID, Ready,
					fmt.Errorf("%s: no bean with id %q", name, targetID))
			}
			p, err := c.types.property(def.Type, name, refProperty)
			if err != nil {
				return bindingError(def.ID, Ready, err)
			}
			if err := p.apply(instance, target.Instance); err != nil {
				return bindingError(def.ID, Ready, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return nil
}

func (c *Context) applyScalars(def beans.Definition, instance any) error {
	for _, name := range sortedKeys(def.Properties) {
		p, err := c.types.property(def.Type, name, scalarProperty)
		if err != nil {
			return err
		}
		value, err := coerce.Coerce(def.Properties[name], p.scalar)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := p.apply(instance, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
