package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wasmfixtures/fixtures"
	"wasmfixtures/rt/wasm"
)

type Outcome int

const (
	Pass Outcome = iota
	Fail
	Skip
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the outcome of running one directive.
type Result struct {
	Directive *Directive
	Outcome   Outcome
	Actual    []wasm.Value
	// Trap is set when the invocation trapped.
	Trap      string
	Reason    string
	// Err is set when the directive could not be invoked at all, e.g.
	// wrong arity or argument types.
	Err       error
}

// Golden renders the directive as it would be written to match what the
// invocation actually did.
func (r *Result) Golden() string {
	d := r.Directive
	if r.Outcome == Skip {
		return fmt.Sprintf(";; skipped %s: %s", d.invokeString(), r.Reason)
	}
	if r.Err != nil {
		return fmt.Sprintf(";; invalid %s: %s", d.invokeString(), r.Reason)
	}
	if d.Kind == Invoke && r.Trap == "" {
		return d.invokeString()
	}
	if r.Trap != "" {
		return fmt.Sprintf("(assert_trap %s %q)", d.invokeString(), r.Trap)
	}
	return assertReturnString(d.invokeString(), r.Actual)
}

type Report struct {
	Source  *ScriptSource
	Results []*Result
	Passed  int
	Failed  int
	Skipped int
}

func (r *Report) add(res *Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case Pass:
		r.Passed++
	case Fail:
		r.Failed++
	case Skip:
		r.Skipped++
	}
}

// Runner evaluates script directives against the fixtures of one variant.
type Runner struct {
	variant fixtures.Variant
	globals wasm.Globals
	logger  *zap.Logger
}

func NewRunner(variant fixtures.Variant, globals wasm.Globals, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{variant: variant, globals: globals, logger: logger}
}

// Run executes the directives of src in order against a fresh instance.
func (r *Runner) Run(ctx context.Context, src *ScriptSource) (*Report, error) {
	inst, err := fixtures.New(r.globals)
	if err != nil {
		return nil, fmt.Errorf("couldn't instantiate fixtures: %w", err)
	}
	report := &Report{Source: src}
	for _, d := range src.Directives {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := r.runDirective(inst, d)
		fields := []zap.Field{
			zap.String("pos", positionString(d.Pos)),
			zap.String("directive", d.String()),
			zap.Stringer("outcome", res.Outcome),
		}
		switch res.Outcome {
		case Fail:
			r.logger.Warn("directive failed", append(fields, zap.String("reason", res.Reason))...)
		case Skip:
			r.logger.Debug("directive skipped", append(fields, zap.String("reason", res.Reason))...)
		default:
			r.logger.Debug("directive passed", fields...)
		}
		report.add(res)
	}
	r.logger.Info("script complete",
		zap.String("file", src.FileName),
		zap.String("variant", string(r.variant)),
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func (r *Runner) runDirective(inst *fixtures.Instance, d *Directive) *Result {
	res := &Result{Directive: d}
	export, err := fixtures.Lookup(r.variant, d.Export)
	if err != nil {
		if errors.Is(err, fixtures.ErrUnknownExport) && fixtures.IsFixtureExport(d.Export) {
			res.Outcome = Skip
			res.Reason = fmt.Sprintf("not exported by variant %s", r.variant)
			return res
		}
		res.Outcome = Fail
		res.Reason = err.Error()
		return res
	}

	actual, err := export.Invoke(inst, d.Args)
	if err != nil {
		trap, ok := trapMessage(err)
		if !ok {
			res.Outcome = Fail
			res.Err = err
			res.Reason = "invalid invocation: " + err.Error()
			return res
		}
		res.Trap = trap
	}
	res.Actual = actual

	switch d.Kind {
	case AssertReturn:
		switch {
		case res.Trap != "":
			res.Outcome = Fail
			res.Reason = "unexpected trap: " + res.Trap
		case !valuesEqual(actual, d.Expected):
			res.Outcome = Fail
			res.Reason = fmt.Sprintf("result mismatch: got %v, want %v", actual, d.Expected)
		default:
			res.Outcome = Pass
		}
	case AssertTrap:
		switch {
		case res.Trap == "":
			res.Outcome = Fail
			res.Reason = fmt.Sprintf("expected trap %q, got %v", d.Trap, actual)
		case res.Trap != d.Trap:
			res.Outcome = Fail
			res.Reason = fmt.Sprintf("expected trap %q, got %q", d.Trap, res.Trap)
		default:
			res.Outcome = Pass
		}
	case Invoke:
		if res.Trap != "" {
			res.Outcome = Fail
			res.Reason = "unexpected trap: " + res.Trap
		} else {
			res.Outcome = Pass
		}
	}
	return res
}

// trapMessage maps an invocation error to the failure string a wast
// assert_trap would use. Errors that are not traps report false.
func trapMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, fixtures.ErrOutOfBounds):
		return "out of bounds memory access", true
	case errors.Is(err, fixtures.ErrUnresolvedImport):
		return "unknown import", true
	}
	return "", false
}

func valuesEqual(got, want []wasm.Value) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}
