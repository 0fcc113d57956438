// Package nes implements the core's host-facing contract: construction
// from a ROM image, frame/instruction stepping, and the framebuffer,
// joypad, and sample outputs a player loop drains each frame.
package nes

import (
	"io"

	"github.com/nescore/gones/internal/bus"
	"github.com/nescore/gones/internal/cartridge"
	"github.com/nescore/gones/internal/input"
)

// Console is one loaded game: the wired-up bus plus the outputs a host
// drains at frame boundaries.
type Console struct {
	bus *bus.Bus
}

// New loads an iNES ROM from path and wires a fresh console around it.
func New(path string) (*Console, error) {
	cart, err := cartridge.Load(path)
	if err != nil {
		return nil, err
	}
	return &Console{bus: bus.New(cart)}, nil
}

// NewFromReader loads an iNES ROM from an arbitrary reader, for hosts that
// don't address cartridges by filesystem path.
func NewFromReader(r io.Reader) (*Console, error) {
	cart, err := cartridge.LoadReader(r)
	if err != nil {
		return nil, err
	}
	return &Console{bus: bus.New(cart)}, nil
}

// Reset re-runs the power-on/reset sequence without reloading the ROM.
func (c *Console) Reset() {
	c.bus.Reset()
}

// RunNextInstruction executes exactly one CPU instruction (and the PPU/APU
// clocks it drives), reporting whether a PPU frame boundary was crossed.
func (c *Console) RunNextInstruction() (frameDone bool) {
	return c.bus.Step()
}

// RunNextFrame executes CPU instructions until a PPU frame boundary is
// crossed.
func (c *Console) RunNextFrame() {
	for !c.bus.Step() {
	}
}

// TraceFunc receives one instruction's trace string, in the format of §6's
// trace contract, immediately before that instruction executes.
type TraceFunc func(trace string)

// RunNextInstructionWithTrace is RunNextInstruction, additionally invoking
// fn with the about-to-execute instruction's trace line.
func (c *Console) RunNextInstructionWithTrace(fn TraceFunc) (frameDone bool) {
	fn(c.bus.CPU.Trace())
	return c.bus.Step()
}

// RunNextFrameWithTrace is RunNextFrame, additionally invoking fn once per
// instruction with its trace line.
func (c *Console) RunNextFrameWithTrace(fn TraceFunc) {
	for !c.RunNextInstructionWithTrace(fn) {
	}
}

// IOInterface exposes the outputs and input sink a host player loop needs
// each frame: the framebuffer to display, the joypad to drive from input
// events, and the accumulated audio samples to resample and play.
func (c *Console) IOInterface() (framebuffer *[256 * 240 * 3]uint8, joypad *input.Joypad, samples []float32) {
	return &c.bus.PPU.Framebuffer, c.bus.Pad, c.bus.APU.Samples
}

// DrainSamples returns and clears the accumulated audio queue, typically
// called once per frame after RunNextFrame.
func (c *Console) DrainSamples() []float32 {
	return c.bus.APU.DrainSamples()
}
