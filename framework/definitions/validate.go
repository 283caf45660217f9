package definitions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/validation"
)

var entryRules = validation.Rules{
	"id":   "required|identifier|max:256",
	"type": "required|type_name|max:512",
}

// Validate checks every definition and reports all problems at once.
// Ids must be unique; a property name may not be both a literal and a
// reference.
func Validate(defs []beans.Definition) error {
	var errs []error
	seen := make(map[string]int, len(defs))

	for i, def := range defs {
		v := validation.Make(map[string]string{"id": def.ID, "type": def.Type}, entryRules)
		if err := v.Err(); err != nil {
			errs = append(errs, fmt.Errorf("entry[%d]: %w", i, err))
			continue
		}
		if first, dup := seen[def.ID]; dup {
			errs = append(errs, fmt.Errorf("entry[%d]: id %q already used by entry[%d]", i, def.ID, first))
			continue
		}
		seen[def.ID] = i

		for name := range def.Properties {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, fmt.Errorf("entry[%d] %q: empty property name", i, def.ID))
			}
			if _, both := def.Refs[name]; both {
				errs = append(errs, fmt.Errorf("entry[%d] %q: property %q is both a value and a ref", i, def.ID, name))
			}
		}
		for name, target := range def.Refs {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, fmt.Errorf("entry[%d] %q: empty ref name", i, def.ID))
			}
			if strings.TrimSpace(target) == "" {
				errs = append(errs, fmt.Errorf("entry[%d] %q: ref %q has no target", i, def.ID, name))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
}
