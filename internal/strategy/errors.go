package strategy

import (
	"fmt"
	"strings"
)

// InvalidArgumentError reports a rejected constructor or restore argument.
type InvalidArgumentError struct {
	Arg     string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Message)
}

// UnknownStrategyError reports a name with no registered strategy.
type UnknownStrategyError struct {
	Name  string
	Known []string
}

func (e *UnknownStrategyError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown strategy %q", e.Name)
	}
	return fmt.Sprintf("unknown strategy %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// ConstructionError wraps a constructor's refusal to build a selector.
type ConstructionError struct {
	Strategy string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("create %q strategy: %v", e.Strategy, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
