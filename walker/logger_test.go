package walker

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/wasm-ir/ir"
)

func TestSetLogger_WalkFunction(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	a := ir.NewArena()
	WalkFunction(a, &ir.Function{Name: "f", Body: a.NewNop()}, Identity{})

	entries := logs.FilterMessage("walking function").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 walk entry, got %d", len(entries))
	}
	if fn := entries[0].ContextMap()["function"]; fn != "f" {
		t.Errorf("function = %v, want f", fn)
	}

	SetLogger(nil)
	WalkFunction(a, &ir.Function{Name: "g", Body: a.NewNop()}, Identity{})
	if logs.Len() != 1 {
		t.Errorf("nil logger still recorded entries: %d", logs.Len())
	}
}
