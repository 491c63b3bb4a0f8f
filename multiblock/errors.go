package multiblock

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a build failed
type ErrorKind uint8

const (
	ConfigError       ErrorKind = iota // invalid parameters, detected before generation
	TopologyError                      // inconsistent skeleton connectivity or divisions
	PreconditionError                  // operations invoked out of order or on incomplete data
)

func (k ErrorKind) String() string {
	return [...]string{"configuration error", "topology error", "precondition violation"}[k]
}

// Sentinels for errors.Is, one per ErrorKind
var (
	ErrConfig       = errors.New("multiblock: configuration error")
	ErrTopology     = errors.New("multiblock: topology error")
	ErrPrecondition = errors.New("multiblock: precondition violation")
)

// BuildError is returned by every entry point of the skeleton and the mesh generator
type BuildError struct {
	Kind   ErrorKind
	Entity string // "node", "edge", "face", "block" or "mesh"
	Index  int    // index of the entity, -1 when the error is not about a single entity
	Msg    string
}

func (e *BuildError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Msg)
	}
	return fmt.Sprintf("%s: %s %d: %s", e.Kind, e.Entity, e.Index, e.Msg)
}

// Is matches the sentinel of the error's kind
func (e *BuildError) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Kind == ConfigError
	case ErrTopology:
		return e.Kind == TopologyError
	case ErrPrecondition:
		return e.Kind == PreconditionError
	}
	return false
}

func newError(kind ErrorKind, entity string, index int, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Kind:   kind,
		Entity: entity,
		Index:  index,
		Msg:    fmt.Sprintf(format, args...),
	}
}
