package builder

import "errors"

// Resolution failures. They are terminal: the run is aborted and no partial
// model is returned.
var (
	ErrUnresolvedEnumReference     = errors.New("cross resolution of enum failed")
	ErrUnresolvedBitsReference     = errors.New("cross resolution of bits failed")
	ErrUnresolvedGroupingReference = errors.New("unresolved grouping class")
	ErrUnresolvedIdentityReference = errors.New("cross resolution of identity class failed")
)

// ResolutionError wraps one of the resolution failures with the fully
// qualified name of the element that could not be resolved.
type ResolutionError struct {
	Kind    error
	Element string
}

func (e *ResolutionError) Error() string {
	return e.Kind.Error() + " for " + e.Element
}

func (e *ResolutionError) Unwrap() error { return e.Kind }
