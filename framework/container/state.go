package container

// State is a step of the context lifecycle. A context moves through the
// states in declaration order exactly once; Failed is terminal.
type State int

const (
	Uninitialized State = iota
	DefinitionsLoaded
	PostProcessed
	Instantiated
	ScalarsInjected
	Ready
	Failed
)

var stateNames = [...]string{
	Uninitialized:     "uninitialized",
	DefinitionsLoaded: "definitions-loaded",
	PostProcessed:     "post-processed",
	Instantiated:      "instantiated",
	ScalarsInjected:   "scalars-injected",
	Ready:             "ready",
	Failed:            "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
