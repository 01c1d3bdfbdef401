package encoding

import "bytes"

// ModuleBuilder assembles a synthetic wasm module exporting the emitted
// layout-computation functions.
type ModuleBuilder struct {
	funcs []moduleFunc
}

type moduleFunc struct {
	name       string
	body       []Instruction
	numParams  int
	numResults int
	numLocals  int
}

// NewModuleBuilder creates a new module builder.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

// AddFunc adds an exported function. Parameters, results, and locals are all
// i32; numLocals counts the extra locals beyond the parameters.
func (b *ModuleBuilder) AddFunc(name string, numParams, numResults, numLocals int, body []Instruction) {
	b.funcs = append(b.funcs, moduleFunc{
		name:       name,
		body:       body,
		numParams:  numParams,
		numResults: numResults,
		numLocals:  numLocals,
	})
}

// Build generates the wasm module bytes. Returns nil if no functions were
// added.
func (b *ModuleBuilder) Build() []byte {
	if len(b.funcs) == 0 {
		return nil
	}

	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	wasm = appendSection(wasm, 0x01, b.buildTypeSection())
	wasm = appendSection(wasm, 0x03, b.buildFuncSection())
	wasm = appendSection(wasm, 0x07, b.buildExportSection())
	wasm = appendSection(wasm, 0x0a, b.buildCodeSection())

	return wasm
}

func appendSection(wasm []byte, id byte, section []byte) []byte {
	wasm = append(wasm, id)
	wasm = AppendULEB128(wasm, uint32(len(section)))
	return append(wasm, section...)
}

func (b *ModuleBuilder) buildTypeSection() []byte {
	var section []byte
	section = AppendULEB128(section, uint32(len(b.funcs)))

	for _, f := range b.funcs {
		section = append(section, 0x60)
		section = AppendULEB128(section, uint32(f.numParams))
		for i := 0; i < f.numParams; i++ {
			section = append(section, ValI32)
		}
		section = AppendULEB128(section, uint32(f.numResults))
		for i := 0; i < f.numResults; i++ {
			section = append(section, ValI32)
		}
	}

	return section
}

func (b *ModuleBuilder) buildFuncSection() []byte {
	var section []byte
	section = AppendULEB128(section, uint32(len(b.funcs)))
	for i := range b.funcs {
		section = AppendULEB128(section, uint32(i))
	}
	return section
}

func (b *ModuleBuilder) buildExportSection() []byte {
	var section []byte
	section = AppendULEB128(section, uint32(len(b.funcs)))

	for i, f := range b.funcs {
		section = AppendULEB128(section, uint32(len(f.name)))
		section = append(section, []byte(f.name)...)
		section = append(section, 0x00)
		section = AppendULEB128(section, uint32(i))
	}

	return section
}

func (b *ModuleBuilder) buildCodeSection() []byte {
	var section []byte
	section = AppendULEB128(section, uint32(len(b.funcs)))

	for _, f := range b.funcs {
		body := buildFuncBody(f)
		section = AppendULEB128(section, uint32(len(body)))
		section = append(section, body...)
	}

	return section
}

func buildFuncBody(f moduleFunc) []byte {
	var buf bytes.Buffer

	if f.numLocals > 0 {
		// One local group, all i32.
		WriteULEB128(&buf, 1)
		WriteULEB128(&buf, uint32(f.numLocals))
		buf.WriteByte(ValI32)
	} else {
		WriteULEB128(&buf, 0)
	}

	EncodeInstructionsTo(&buf, f.body)
	buf.WriteByte(OpEnd)

	return buf.Bytes()
}
