package nes

import (
	"bytes"
	"testing"
)

// buildROM assembles a minimal iNES image from one 16KB bank stored twice,
// whose PRG starts with prg at $8000 and whose reset vector points there.
func buildROM(prg []uint8) []byte {
	header := make([]byte, 16)
	copy(header[0:4], "NES\x1A")
	header[4] = 2 // 32KB PRG: the same bank twice, so $8000 and $C000 hold identical bytes
	header[5] = 1 // 8KB CHR

	bank := make([]byte, 16*1024)
	copy(bank, prg)
	bank[0x3FFC] = 0x00 // reset vector low -> $8000
	bank[0x3FFD] = 0x80

	prgROM := append(append([]byte{}, bank...), bank...)
	chrROM := make([]byte, 8*1024)

	rom := append(header, prgROM...)
	rom = append(rom, chrROM...)
	return rom
}

func newTestConsole(t *testing.T, prg []uint8) *Console {
	t.Helper()
	c, err := NewFromReader(bytes.NewReader(buildROM(prg)))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	return c
}

func TestLDAImmediateSetsZero(t *testing.T) {
	c := newTestConsole(t, []uint8{0xA9, 0x00, 0x00}) // LDA #$00; BRK
	for i := 0; i < 10 && !c.bus.CPU.Halted; i++ {
		if c.bus.CPU.PC == 0x8002 {
			break
		}
		c.RunNextInstruction()
	}
	if c.bus.CPU.A != 0 {
		t.Fatalf("A = %#02x, want 0", c.bus.CPU.A)
	}
	if !c.bus.CPU.Z {
		t.Fatal("Z flag should be set")
	}
}

func TestRunNextFrameCompletesExactlyOneFrame(t *testing.T) {
	// JMP $8000: an infinite loop, enough to drive the PPU through a frame.
	c := newTestConsole(t, []uint8{0x4C, 0x00, 0x80})
	c.RunNextFrame()
	if c.bus.PPU.Scanline != 241 || c.bus.PPU.Dot < 1 {
		t.Fatalf("expected to stop just past VBLANK entry, got scanline=%d dot=%d", c.bus.PPU.Scanline, c.bus.PPU.Dot)
	}
}

func TestIOInterfaceExposesFramebufferAndJoypad(t *testing.T) {
	c := newTestConsole(t, []uint8{0x4C, 0x00, 0x80})
	fb, pad, _ := c.IOInterface()
	if len(fb) != 256*240*3 {
		t.Fatalf("framebuffer size = %d, want %d", len(fb), 256*240*3)
	}
	pad.SetButton(0, 0, true)
	pad.WriteStrobe(1)
	pad.WriteStrobe(0)
	if pad.Read(0) != 1 {
		t.Fatal("joypad port 0 button A should read back pressed")
	}
}

func TestRunNextInstructionWithTraceInvokesCallback(t *testing.T) {
	c := newTestConsole(t, []uint8{0xA2, 0x01, 0xCA, 0x88, 0x00}) // LDX #$01; DEX; DEY; BRK
	var traces []string
	c.RunNextInstructionWithTrace(func(tr string) { traces = append(traces, tr) })
	if len(traces) != 1 {
		t.Fatalf("expected 1 trace line, got %d", len(traces))
	}
}
