// Package beans holds the data model shared by the container and the
// definition sources: declarative definitions and the live beans built
// from them.
package beans

// Definition is the declarative description of one bean.
//
// Properties maps a property name to a literal that is coerced against the
// setter's parameter type. Refs maps a property name to the id of another
// bean. Either map may be nil.
type Definition struct {
	ID            string
	Type          string
	Properties    map[string]string
	Refs          map[string]string
	PostProcessor bool
}

// Clone returns a deep copy of d. Nil maps stay nil.
func (d Definition) Clone() Definition {
	out := d
	out.Properties = cloneMap(d.Properties)
	out.Refs = cloneMap(d.Refs)
	return out
}

// Bean pairs a definition id with the instance built for it.
type Bean struct {
	ID       string
	Instance any
}

// Source produces the ordered list of definitions a context is built from.
// It is called exactly once per context start.
type Source interface {
	Definitions() ([]Definition, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() ([]Definition, error)

// Definitions calls f.
func (f SourceFunc) Definitions() ([]Definition, error) { return f() }

// Static is a Source backed by an in-memory slice.
type Static []Definition

// Definitions returns a deep copy of s.
func (s Static) Definitions() ([]Definition, error) {
	out := make([]Definition, len(s))
	for i, d := range s {
		out[i] = d.Clone()
	}
	return out, nil
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
