package metadata

// Opcode tags an instruction. The weaver only interprets the tagged subset
// (OpLoadSelf, OpLoadField, OpStoreField, OpCall, OpReturn); every other
// opcode is opaque to it and copied verbatim.
type Opcode byte

const (
	OpNop Opcode = iota
	OpLoadSelf
	OpLoadField
	OpStoreField
	OpCall
	OpReturn
	OpLoadArg
	OpLoadLocal
	OpStoreLocal
	OpLoadConst
	OpAdd
	OpMul
	OpXor
	OpBranch
	OpBranchIfEq
)

var opcodeNames = map[Opcode]string{
	OpNop:        "nop",
	OpLoadSelf:   "load.self",
	OpLoadField:  "load.field",
	OpStoreField: "store.field",
	OpCall:       "call",
	OpReturn:     "return",
	OpLoadArg:    "load.arg",
	OpLoadLocal:  "load.local",
	OpStoreLocal: "store.local",
	OpLoadConst:  "load.const",
	OpAdd:        "add",
	OpMul:        "mul",
	OpXor:        "xor",
	OpBranch:     "branch",
	OpBranchIfEq: "branch.if.eq",
}

// String returns the assembler-style name of the opcode.
func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return "invalid"
}

// HasTarget reports whether the opcode carries an intra-body instruction
// target. Only targeted instructions participate in index remapping.
func (o Opcode) HasTarget() bool {
	return o == OpBranch || o == OpBranchIfEq
}

// Instruction is one entry in a body's instruction arena. Operand fields are
// meaningful only for the opcodes that use them:
//
//	Field  — OpLoadField, OpStoreField
//	Method — OpCall
//	Value  — OpLoadConst
//	Index  — OpLoadArg, OpLoadLocal, OpStoreLocal
//	Target — OpBranch, OpBranchIfEq (instruction index within the same body)
//
// Field and Method operands point at members of the module graph; they are
// shared between a body and its clones because cloning does not rename the
// referenced members. Target is a position, so a cloned body's targets are
// valid without rewriting.
type Instruction struct {
	Field  *Field
	Method *Method
	Op     Opcode
	Value  int32
	Index  int
	Target int
}
