package steprunner

import (
	"fmt"

	"github.com/stepdriver/stepdriver/pkg/types"
)

type RunnerFactory func(ctx ExecutionContext) (StepRunner, error)

// registry stores each step kind's factory function. GetRunner calls the
// appropriate factory to yield a new instance of that StepRunner.
var registry = map[types.Kind]RunnerFactory{}

// RegisterRunnerFactory is called in each runner's init() function to
// register its factory with the registry.
func RegisterRunnerFactory(kind types.Kind, factory RunnerFactory) {
	registry[kind] = factory
}

// GetRunner returns an instance of the appropriate StepRunner based on the
// step's kind, using the registry to resolve the runner's factory.
func GetRunner(ctx ExecutionContext) (StepRunner, error) {
	factory, ok := registry[ctx.Step.Kind]
	if !ok {
		return nil, fmt.Errorf("no runner registered for kind %q", ctx.Step.RawKind)
	}
	return factory(ctx)
}
