package providers

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
)

// PlaceholderType is the registered type name of Placeholder.
const PlaceholderType = "framework.Placeholder"

// ErrUnresolvedPlaceholder is returned when a ${NAME} has no value and no
// default.
var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// Placeholder is a post-processor that expands ${NAME} and ${NAME:default}
// in literal properties from the environment. A variable that is set but
// empty expands to "".
//
//	post_processors:
//	  - id: placeholders
//	    type: framework.Placeholder
type Placeholder struct {
	ignoreUnresolvable bool
}

var _ container.DefinitionPostProcessor = (*Placeholder)(nil)

// SetIgnoreUnresolvable leaves unknown placeholders untouched instead of
// failing.
func (p *Placeholder) SetIgnoreUnresolvable(ignore bool) { p.ignoreUnresolvable = ignore }

// ProcessDefinition rewrites def.Properties in place.
func (p *Placeholder) ProcessDefinition(def *beans.Definition) error {
	names := make([]string, 0, len(def.Properties))
	for name := range def.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		literal := def.Properties[name]
		expanded := placeholderRe.ReplaceAllStringFunc(literal, func(m string) string {
			sub := placeholderRe.FindStringSubmatch(m)
			if v, ok := os.LookupEnv(sub[1]); ok {
				return v
			}
			if hasDefault(m) {
				return sub[2]
			}
			if !p.ignoreUnresolvable {
				errs = append(errs, fmt.Errorf("%w: property %q: ${%s}", ErrUnresolvedPlaceholder, name, sub[1]))
			}
			return m
		})
		def.Properties[name] = expanded
	}
	return errors.Join(errs...)
}

// hasDefault distinguishes ${NAME:} (empty default) from ${NAME}.
func hasDefault(m string) bool {
	for i := 2; i < len(m); i++ {
		if m[i] == ':' {
			return true
		}
	}
	return false
}
