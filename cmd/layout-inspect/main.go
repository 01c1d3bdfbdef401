package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/reedlang/irgen"
	"github.com/reedlang/irgen/emit"
	"github.com/reedlang/irgen/layout"
	"github.com/reedlang/irgen/typeinfo"
)

func main() {
	var (
		fieldSpec   = flag.String("fields", "", "Comma-separated field spec (u8,u16,u32,u64,ptr,bool,char,string,SIZE/ALIGN,dyn)")
		strategyArg = flag.String("strategy", "optimal", "Packing strategy: optimal or universal")
		heap        = flag.Bool("heap", false, "Lay out as a heap object (adds the heap header)")
		ptrSize     = flag.Uint("ptr", 4, "Target pointer size in bytes (4 or 8)")
		dynSize     = flag.Uint("dyn-size", 8, "Runtime size assumed for each dyn field")
		dynAlign    = flag.Uint("dyn-align", 4, "Runtime alignment assumed for each dyn field")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			layout.SetLogger(l)
			emit.SetLogger(l)
		}
	}

	if *ptrSize != 4 && *ptrSize != 8 {
		fmt.Fprintf(os.Stderr, "error: pointer size must be 4 or 8, got %d\n", *ptrSize)
		os.Exit(1)
	}
	target := irgen.Target{PointerSize: uint32(*ptrSize), PointerAlign: uint32(*ptrSize)}

	if *interactive {
		if err := runInteractive(target); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *fieldSpec == "" {
		fmt.Fprintln(os.Stderr, "Usage: layout-inspect -fields u8,u64,u32 [-strategy optimal|universal] [-heap]")
		fmt.Fprintln(os.Stderr, "       layout-inspect -i  (interactive mode)")
		os.Exit(1)
	}

	strategy, err := parseStrategy(*strategyArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fields, err := parseFields(*fieldSpec, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	kind := layout.NonHeapObject
	if *heap {
		kind = layout.HeapObject
	}

	report, err := inspect(target, kind, strategy, fields, uint32(*dynSize), uint32(*dynAlign))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
}

// field is one parsed entry of the -fields spec.
type field struct {
	token   string
	info    typeinfo.Info
	dynamic bool
}

func parseStrategy(s string) (layout.Strategy, error) {
	switch s {
	case "optimal":
		return layout.Optimal, nil
	case "universal":
		return layout.Universal, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

// parseFields parses the field spec. Named tokens use Canonical ABI layouts;
// SIZE/ALIGN declares a custom statically sized field; dyn declares a field
// whose size and alignment are only known at run time.
func parseFields(spec string, target irgen.Target) ([]field, error) {
	var fields []field
	numDyn := 0

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		f := field{token: token}
		switch token {
		case "bool":
			f.info = typeinfo.FromWIT(wit.Bool{})
		case "u8":
			f.info = typeinfo.FromWIT(wit.U8{})
		case "u16":
			f.info = typeinfo.FromWIT(wit.U16{})
		case "u32":
			f.info = typeinfo.FromWIT(wit.U32{})
		case "u64":
			f.info = typeinfo.FromWIT(wit.U64{})
		case "char":
			f.info = typeinfo.FromWIT(wit.Char{})
		case "string":
			f.info = typeinfo.FromWIT(wit.String{})
		case "ptr":
			f.info = typeinfo.StaticOf(target.PointerSize, target.PointerAlign).WithSlot(emit.PointerType{})
		case "dyn":
			// Each dyn field reads its runtime size and alignment from its
			// own pair of function parameters.
			d := numDyn
			numDyn++
			f.dynamic = true
			f.info = typeinfo.Dynamic{
				EmitLayout: func(fn *emit.Func) (emit.Value, emit.Value) {
					return fn.Param(2 * d), fn.Param(2*d + 1)
				},
			}
		default:
			sizeStr, alignStr, ok := strings.Cut(token, "/")
			if !ok {
				return nil, fmt.Errorf("unknown field token %q", token)
			}
			size, err := strconv.ParseUint(sizeStr, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad size in %q: %v", token, err)
			}
			align, err := strconv.ParseUint(alignStr, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad alignment in %q: %v", token, err)
			}
			if align == 0 || align&(align-1) != 0 {
				return nil, fmt.Errorf("alignment in %q is not a power of two", token)
			}
			f.info = typeinfo.StaticOf(uint32(size), uint32(align))
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("empty field spec")
	}
	return fields, nil
}

// report is the computed layout description rendered by printReport and the
// interactive view.
type report struct {
	fields    []field
	elements  []layout.Element
	storage   string
	kind      layout.Kind
	strategy  layout.Strategy
	size      uint32
	align     uint32
	known     bool
	evaluated bool
	runSize   uint32
	runAlign  uint32
}

// inspect lays out the fields and, when the layout is not fully known,
// evaluates the emitted size/alignment functions with the assumed runtime
// values by running them under wazero.
func inspect(target irgen.Target, kind layout.Kind, strategy layout.Strategy, fields []field, dynSize, dynAlign uint32) (*report, error) {
	ctx := emit.NewContext(target)

	infos := make([]typeinfo.Info, len(fields))
	numDyn := 0
	for i, f := range fields {
		infos[i] = f.info
		if f.dynamic {
			numDyn++
		}
	}

	l := layout.New(ctx, kind, strategy, infos, nil)

	r := &report{
		fields:   fields,
		elements: l.Elements(),
		storage:  l.Type().String(),
		kind:     kind,
		strategy: strategy,
		size:     l.Size(),
		align:    l.Alignment(),
		known:    l.KnownLayout(),
	}

	if l.KnownLayout() {
		return r, nil
	}

	sizeFn := ctx.NewFunc("aggregate_size", 2*numDyn, 1)
	sizeFn.Return(l.EmitSize(sizeFn))
	alignFn := ctx.NewFunc("aggregate_align", 2*numDyn, 1)
	alignFn.Return(l.EmitAlign(alignFn))

	mod, err := ctx.BuildModule()
	if err != nil {
		return nil, err
	}

	args := make([]uint64, 2*numDyn)
	for i := 0; i < numDyn; i++ {
		args[2*i] = uint64(dynSize)
		args[2*i+1] = uint64(dynAlign)
	}

	r.runSize, err = callI32(mod, "aggregate_size", args)
	if err != nil {
		return nil, err
	}
	r.runAlign, err = callI32(mod, "aggregate_align", args)
	if err != nil {
		return nil, err
	}
	r.evaluated = true

	return r, nil
}

func callI32(mod []byte, name string, args []uint64) (uint32, error) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	inst, err := rt.Instantiate(ctx, mod)
	if err != nil {
		return 0, err
	}

	results, err := inst.ExportedFunction(name).Call(ctx, args...)
	if err != nil {
		return 0, err
	}
	return uint32(results[0]), nil
}

func printReport(r *report) {
	fmt.Printf("%s aggregate, %s strategy\n\n", r.kind, r.strategy)

	if r.kind == layout.HeapObject {
		fmt.Printf("  %-10s %-10s %s\n", "header", "@0", "slot 0")
	}
	for i := range r.elements {
		e := &r.elements[i]
		offsetStr := "runtime"
		if off, ok := e.Offset(); ok {
			offsetStr = fmt.Sprintf("@%d", off)
		}
		slotStr := "no slot"
		if idx, ok := e.StorageIndex(); ok {
			slotStr = fmt.Sprintf("slot %d", idx)
		}
		fmt.Printf("  %-10s %-10s %s\n", r.fields[i].token, offsetStr, slotStr)
	}

	fmt.Println()
	if r.known {
		fmt.Printf("size %d, alignment %d\n", r.size, r.align)
	} else if r.evaluated {
		fmt.Printf("static prefix %d, alignment %d (static)\n", r.size, r.align)
		fmt.Printf("evaluated size %d, alignment %d\n", r.runSize, r.runAlign)
	}
	fmt.Printf("storage: %s\n", r.storage)
}
