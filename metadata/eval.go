package metadata

import (
	"fmt"

	"github.com/ilweave/hashcache/errors"
)

// maxEvalSteps bounds one evaluation so a cyclic body cannot spin forever.
const maxEvalSteps = 1 << 20

// Instance is the field state of one object during evaluation, keyed by
// field name. All modeled values are 32-bit integers.
type Instance map[string]int32

// selfRef is the placeholder pushed by load.self. Field and call
// instructions pop it; the evaluator runs one instance at a time, so the
// placeholder carries no information.
const selfRef int32 = 0

// Eval executes a method body against an instance with the given arguments.
// It returns the result value and true for a non-void method, or zero and
// false for a void one. Evaluation is structural: it supports exactly the
// opcodes the model defines and fails on anything else.
func Eval(m *Method, inst Instance, args []int32) (int32, bool, error) {
	if m.Body == nil {
		return 0, false, errors.MalformedBody(errors.PhaseEval, "", m.Name, "method has no body")
	}
	if len(args) != len(m.Params) {
		return 0, false, errors.InvalidData(errors.PhaseEval,
			fmt.Sprintf("%s: %d arguments for %d parameters", m.Name, len(args), len(m.Params)))
	}

	var stack []int32
	push := func(v int32) { stack = append(stack, v) }
	pop := func() (int32, error) {
		if len(stack) == 0 {
			return 0, errors.MalformedBody(errors.PhaseEval, "", m.Name, "stack underflow")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	locals := make([]int32, len(m.Body.Locals))
	instrs := m.Body.Instrs

	pc := 0
	for steps := 0; ; steps++ {
		if steps >= maxEvalSteps {
			return 0, false, errors.MalformedBody(errors.PhaseEval, "", m.Name, "step limit exceeded")
		}
		if pc < 0 || pc >= len(instrs) {
			return 0, false, errors.MalformedBody(errors.PhaseEval, "", m.Name,
				fmt.Sprintf("control fell outside the body at %d", pc))
		}
		in := instrs[pc]

		switch in.Op {
		case OpNop:
			pc++
		case OpLoadSelf:
			push(selfRef)
			pc++
		case OpLoadField:
			if _, err := pop(); err != nil { // self ref
				return 0, false, err
			}
			push(inst[in.Field.Name])
			pc++
		case OpStoreField:
			v, err := pop()
			if err != nil {
				return 0, false, err
			}
			if _, err := pop(); err != nil { // self ref
				return 0, false, err
			}
			inst[in.Field.Name] = v
			pc++
		case OpCall:
			callee := in.Method
			callArgs := make([]int32, len(callee.Params))
			for i := len(callArgs) - 1; i >= 0; i-- {
				v, err := pop()
				if err != nil {
					return 0, false, err
				}
				callArgs[i] = v
			}
			if !callee.Static {
				if _, err := pop(); err != nil { // self ref
					return 0, false, err
				}
			}
			res, hasRes, err := Eval(callee, inst, callArgs)
			if err != nil {
				return 0, false, err
			}
			if hasRes {
				push(res)
			}
			pc++
		case OpReturn:
			if m.Return == Void {
				return 0, false, nil
			}
			v, err := pop()
			if err != nil {
				return 0, false, err
			}
			return v, true, nil
		case OpLoadArg:
			if in.Index < 0 || in.Index >= len(args) {
				return 0, false, errors.OutOfBounds(errors.PhaseEval, in.Index, len(args))
			}
			push(args[in.Index])
			pc++
		case OpLoadLocal:
			if in.Index < 0 || in.Index >= len(locals) {
				return 0, false, errors.OutOfBounds(errors.PhaseEval, in.Index, len(locals))
			}
			push(locals[in.Index])
			pc++
		case OpStoreLocal:
			v, err := pop()
			if err != nil {
				return 0, false, err
			}
			if in.Index < 0 || in.Index >= len(locals) {
				return 0, false, errors.OutOfBounds(errors.PhaseEval, in.Index, len(locals))
			}
			locals[in.Index] = v
			pc++
		case OpLoadConst:
			push(in.Value)
			pc++
		case OpAdd, OpMul, OpXor:
			b, err := pop()
			if err != nil {
				return 0, false, err
			}
			a, err := pop()
			if err != nil {
				return 0, false, err
			}
			switch in.Op {
			case OpAdd:
				push(a + b)
			case OpMul:
				push(a * b)
			case OpXor:
				push(a ^ b)
			}
			pc++
		case OpBranch:
			pc = in.Target
		case OpBranchIfEq:
			b, err := pop()
			if err != nil {
				return 0, false, err
			}
			a, err := pop()
			if err != nil {
				return 0, false, err
			}
			if a == b {
				pc = in.Target
			} else {
				pc++
			}
		default:
			return 0, false, errors.InvalidData(errors.PhaseEval,
				fmt.Sprintf("%s: unknown opcode %d at %d", m.Name, in.Op, pc))
		}
	}
}
