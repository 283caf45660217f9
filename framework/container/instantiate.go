package container

import "github.com/km-arc/go-beans/framework/beans"

// instantiate builds one instance per definition. Nothing is injected here;
// every bean exists before the first setter runs.
func (c *Context) instantiate() error {
	registry := make(map[string]beans.Bean, len(c.definitions))

	for _, def := range c.definitions {
		if instance, ok := c.processors[def.ID]; ok {
			registry[def.ID] = beans.Bean{ID: def.ID, Instance: instance}
			continue
		}

		instance, err := c.types.construct(def)
		if err != nil {
			return instantiationError(def.ID, Instantiated, err)
		}
		registry[def.ID] = beans.Bean{ID: def.ID, Instance: instance}
	}

	c.registry = registry
	return nil
}
