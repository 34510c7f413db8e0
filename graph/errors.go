package graph

import (
	"errors"
	"fmt"
)

var ErrInvalidOptions = errors.New("invalid graph options")

// ConstructionError means the structure handed to Build broke an invariant
// the loader is supposed to guarantee, such as finite coordinates.
type ConstructionError struct {
	Node   string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("Could not build a graph node for '%s': %s.",
		e.Node, e.Reason)
}
