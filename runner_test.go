package main

import (
	"context"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wasmfixtures/fixtures"
	"wasmfixtures/rt/wasm"
)

func fixtureSources(t *testing.T) []*ScriptSource {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("fixtures", "*.go"))
	require.NoError(t, err)
	fset := token.NewFileSet()
	var sources []*ScriptSource
	for _, f := range files {
		if !isTestFile(f) {
			s, err := ParseScriptFile(fset, f, nil)
			require.NoError(t, err)
			sources = append(sources, s)
		}
	}
	require.NotEmpty(t, sources)
	return sources
}

func isTestFile(name string) bool {
	matched, _ := filepath.Match("*_test.go", filepath.Base(name))
	return matched
}

func TestFixturePragmasPass(t *testing.T) {
	for _, v := range []fixtures.Variant{fixtures.VariantC, fixtures.VariantCXX} {
		runner := NewRunner(v, wasm.MapGlobals{"env.global2": 1}, zap.NewNop())
		total := 0
		for _, src := range fixtureSources(t) {
			report, err := runner.Run(context.Background(), src)
			require.NoError(t, err)
			for _, res := range report.Results {
				assert.NotEqual(t, Fail, res.Outcome, "%s %s: %s", v, res.Directive, res.Reason)
			}
			total += report.Passed
		}
		assert.Greater(t, total, 0, "variant %s ran nothing", v)
	}
}

func TestFloorSkippedForCXX(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), filepath.Join("fixtures", "floor.go"), nil)
	require.NoError(t, err)
	report, err := NewRunner(fixtures.VariantCXX, nil, nil).Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, len(src.Directives), report.Skipped)
	assert.Zero(t, report.Passed)
}

const runnerSrc = `package sample

//wasm:assert_return (invoke "f" (i32.const 1) (i32.const 1)) (i32.const 3)
//wasm:assert_return (invoke "i" (i32.const 100) (i32.const 1)) (i32.const 0)
//wasm:assert_trap (invoke "i" (i32.const 1) (i32.const 1)) "out of bounds memory access"
//wasm:assert_trap (invoke "i" (i32.const 100) (i32.const 1)) "integer overflow"
//wasm:assert_return (invoke "k") (i32.const 0)
//wasm:assert_trap (invoke "ga") "unknown import"
//wasm:invoke (invoke "ga")
//wasm:assert_return (invoke "RotateRight" (i32.const 1) (i32.const 1)) (i32.const 0x80000000)
//wasm:assert_return (invoke "f" (i32.const 1)) (i32.const 1)
`

func TestRunnerOutcomes(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), "sample.go", runnerSrc)
	require.NoError(t, err)
	report, err := NewRunner(fixtures.VariantCXX, nil, zap.NewNop()).Run(context.Background(), src)
	require.NoError(t, err)

	want := []Outcome{Fail, Fail, Fail, Fail, Fail, Pass, Fail, Pass, Fail}
	require.Len(t, report.Results, len(want))
	for i, res := range report.Results {
		assert.Equal(t, want[i], res.Outcome, "directive #%d %s: %s", i, res.Directive, res.Reason)
	}
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 7, report.Failed)
	assert.Equal(t, "out of bounds memory access", report.Results[1].Trap)
	assert.Equal(t, "unknown import", report.Results[6].Trap)
}

func TestRunnerInvalidInvocationIsNotATrap(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), "arity.go", `package arity
//wasm:assert_trap (invoke "f" (i32.const 1)) "f: want 2 args, got 1"
//wasm:assert_return (invoke "h" (i32.const 1)) (f32.const 1)
`)
	require.NoError(t, err)
	report, err := NewRunner(fixtures.VariantC, nil, nil).Run(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, Fail, res.Outcome)
		assert.Empty(t, res.Trap)
		assert.Error(t, res.Err)
		assert.Contains(t, res.Golden(), ";; invalid (invoke")
	}
}

func TestRunnerInstancePerSource(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), "state.go", `package state
//wasm:invoke (invoke "i" (i32.const 0) (i32.const 9))
//wasm:assert_return (invoke "j") (i32.const 0)
`)
	require.NoError(t, err)
	runner := NewRunner(fixtures.VariantC, nil, nil)
	for i := 0; i < 2; i++ {
		report, err := runner.Run(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Passed)
	}
}

func TestRunnerCancelled(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), "sample.go", runnerSrc)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(fixtures.VariantC, nil, nil).Run(ctx, src)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResultGolden(t *testing.T) {
	src, err := ParseScriptFile(token.NewFileSet(), "sample.go", runnerSrc)
	require.NoError(t, err)
	report, err := NewRunner(fixtures.VariantCXX, nil, nil).Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, `(assert_return (invoke "f" (i32.const 1) (i32.const 1)) (i32.const 2))`, report.Results[0].Golden())
	assert.Equal(t, `(assert_trap (invoke "i" (i32.const 100) (i32.const 1)) "out of bounds memory access")`, report.Results[1].Golden())
	assert.Equal(t, `(assert_return (invoke "i" (i32.const 1) (i32.const 1)) (i32.const 0))`, report.Results[2].Golden())
	assert.Equal(t, `(assert_trap (invoke "ga") "unknown import")`, report.Results[6].Golden())
}
