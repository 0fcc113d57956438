package cpu

import (
	"fmt"
	"strings"
)

// Trace renders the instruction about to execute at PC in the nestest
// trace format described in §6/§8: a fixed-width disassembly followed by
// the register snapshot, suitable for equality-diff against reference
// traces. It performs no execution and has no side effects beyond the
// memory reads a disassembler needs (as real traces do).
func (c *CPU) Trace() string {
	pc := c.PC
	opcode := c.bus.Read(pc)
	inst := c.instructions[opcode]

	raw := make([]uint8, inst.Bytes)
	raw[0] = opcode
	for i := uint8(1); i < inst.Bytes; i++ {
		raw[i] = c.bus.Read(pc + uint16(i))
	}

	byteStrs := make([]string, len(raw))
	for i, b := range raw {
		byteStrs[i] = fmt.Sprintf("%02X", b)
	}
	bytesField := strings.Join(byteStrs, " ")

	asm := inst.Name
	if operand := c.traceOperand(inst, raw); operand != "" {
		asm += " " + operand
	}

	return fmt.Sprintf("%04X  %-10s%-32sA:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc, bytesField, asm, c.A, c.X, c.Y, c.StatusByte()&^bFlagMask, c.SP)
}

func (c *CPU) traceOperand(inst Instruction, raw []uint8) string {
	switch inst.Mode {
	case Implied, Accumulator:
		return ""
	case Immediate:
		return fmt.Sprintf("#$%02X", raw[1])
	case ZeroPage:
		return fmt.Sprintf("$%02X", raw[1])
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", raw[1])
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", raw[1])
	case Relative:
		target := int16(c.PC) + int16(inst.Bytes) + int16(int8(raw[1]))
		return fmt.Sprintf("$%04X", uint16(target))
	case Absolute:
		addr := uint16(raw[2])<<8 | uint16(raw[1])
		return fmt.Sprintf("$%04X", addr)
	case AbsoluteX:
		addr := uint16(raw[2])<<8 | uint16(raw[1])
		return fmt.Sprintf("$%04X,X", addr)
	case AbsoluteY:
		addr := uint16(raw[2])<<8 | uint16(raw[1])
		return fmt.Sprintf("$%04X,Y", addr)
	case Indirect:
		addr := uint16(raw[2])<<8 | uint16(raw[1])
		return fmt.Sprintf("($%04X)", addr)
	case IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", raw[1])
	case IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", raw[1])
	default:
		return ""
	}
}
