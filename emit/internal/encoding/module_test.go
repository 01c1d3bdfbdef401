package encoding

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

func callExport(t *testing.T, mod []byte, name string, args ...uint64) uint64 {
	t.Helper()

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	inst, err := rt.Instantiate(ctx, mod)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	results, err := inst.ExportedFunction(name).Call(ctx, args...)
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return results[0]
}

func TestBuildEmptyModule(t *testing.T) {
	if got := NewModuleBuilder().Build(); got != nil {
		t.Errorf("empty builder should produce nil, got %d bytes", len(got))
	}
}

func TestBuildModuleHeader(t *testing.T) {
	b := NewModuleBuilder()
	b.AddFunc("f", 0, 1, 0, []Instruction{
		{Op: OpI32Const, Imm: 1},
		{Op: OpReturn},
	})
	mod := b.Build()

	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if len(mod) < len(want) || !bytes.Equal(mod[:len(want)], want) {
		t.Errorf("module does not start with magic and version: % x", mod[:min(len(mod), 8)])
	}
}

func TestConstantFunction(t *testing.T) {
	b := NewModuleBuilder()
	b.AddFunc("answer", 0, 1, 1, []Instruction{
		{Op: OpI32Const, Imm: 42},
		{Op: OpLocalSet, Imm: 0},
		{Op: OpLocalGet, Imm: 0},
		{Op: OpReturn},
	})

	if got := callExport(t, b.Build(), "answer"); got != 42 {
		t.Errorf("answer() = %d, want 42", got)
	}
}

func TestParamsAndLocals(t *testing.T) {
	// add(a, b) with the sum routed through a local.
	b := NewModuleBuilder()
	b.AddFunc("add", 2, 1, 1, []Instruction{
		{Op: OpLocalGet, Imm: 0},
		{Op: OpLocalGet, Imm: 1},
		{Op: OpI32Add},
		{Op: OpLocalSet, Imm: 2},
		{Op: OpLocalGet, Imm: 2},
		{Op: OpReturn},
	})

	if got := callExport(t, b.Build(), "add", 400, 20); got != 420 {
		t.Errorf("add(400, 20) = %d, want 420", got)
	}
}

func TestSelectMax(t *testing.T) {
	b := NewModuleBuilder()
	b.AddFunc("max", 2, 1, 0, []Instruction{
		{Op: OpLocalGet, Imm: 0},
		{Op: OpLocalGet, Imm: 1},
		{Op: OpLocalGet, Imm: 0},
		{Op: OpLocalGet, Imm: 1},
		{Op: OpI32GtU},
		{Op: OpSelect},
		{Op: OpReturn},
	})
	mod := b.Build()

	tests := []struct {
		a, b, want uint64
	}{
		{1, 2, 2},
		{2, 1, 2},
		{7, 7, 7},
		{0, 0xffffffff, 0xffffffff},
	}
	for _, tc := range tests {
		if got := callExport(t, mod, "max", tc.a, tc.b); got != tc.want {
			t.Errorf("max(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMultipleExports(t *testing.T) {
	b := NewModuleBuilder()
	b.AddFunc("one", 0, 1, 0, []Instruction{
		{Op: OpI32Const, Imm: 1},
		{Op: OpReturn},
	})
	b.AddFunc("negate", 1, 1, 0, []Instruction{
		{Op: OpI32Const, Imm: 0},
		{Op: OpLocalGet, Imm: 0},
		{Op: OpI32Sub},
		{Op: OpReturn},
	})
	mod := b.Build()

	if got := callExport(t, mod, "one"); got != 1 {
		t.Errorf("one() = %d, want 1", got)
	}
	if got := callExport(t, mod, "negate", 5); uint32(got) != 0xfffffffb {
		t.Errorf("negate(5) = %#x, want %#x", uint32(got), uint32(0xfffffffb))
	}
}
