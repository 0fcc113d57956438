package ppu

import (
	"testing"

	"github.com/nescore/gones/internal/cartridge"
)

type fakeCHR struct {
	data [0x2000]uint8
}

func (c *fakeCHR) ReadCHR(addr uint16) uint8     { return c.data[addr%0x2000] }
func (c *fakeCHR) WriteCHR(addr uint16, v uint8) { c.data[addr%0x2000] = v }

func newTestPPU() (*PPU, *fakeCHR) {
	chr := &fakeCHR{}
	p := New(chr, cartridge.MirrorHorizontal)
	p.Reset()
	return p, chr
}

func TestPaletteMirroring(t *testing.T) {
	p, _ := newTestPPU()
	p.writePalette(0x3F00, 0x20)
	if got := p.readPalette(0x3F10); got != 0x20 {
		t.Fatalf("0x3F10 = %02X, want 20 (mirrors 0x3F00)", got)
	}
	p.writePalette(0x3F04, 0x11)
	if got := p.readPalette(0x3F14); got != 0x11 {
		t.Fatalf("0x3F14 = %02X, want 11 (mirrors 0x3F04)", got)
	}
}

func TestRegisterReadWritePalette(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(6, 0x3F)
	p.WriteRegister(6, 0x00)
	p.WriteRegister(7, 0x16)
	p.WriteRegister(6, 0x3F)
	p.WriteRegister(6, 0x00)
	if got := p.ReadRegister(7); got != 0x16 {
		t.Fatalf("PPUDATA read at palette addr = %02X, want 16 (no read-buffer delay)", got)
	}
}

func TestVRAMWriteReadBuffered(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(6, 0x20)
	p.WriteRegister(6, 0x00)
	p.WriteRegister(7, 0xAB)

	p.WriteRegister(6, 0x20)
	p.WriteRegister(6, 0x00)
	_ = p.ReadRegister(7) // primes the read buffer
	got := p.ReadRegister(7)
	if got != 0xAB {
		t.Fatalf("buffered VRAM read = %02X, want AB", got)
	}
}

func TestFullFrameEntersAndExitsVBlankOnce(t *testing.T) {
	p, _ := newTestPPU()
	entered, exited := 0, 0
	wasVBlank := p.status&statusVBlank != 0
	totalDots := scanlinesPerFrame * dotsPerScanline
	for i := 0; i < totalDots; i++ {
		p.Tick()
		now := p.status&statusVBlank != 0
		if now && !wasVBlank {
			entered++
		}
		if !now && wasVBlank {
			exited++
		}
		wasVBlank = now
	}
	if entered != 1 || exited != 1 {
		t.Fatalf("entered=%d exited=%d over one frame, want 1 and 1", entered, exited)
	}
}

func TestNMILineFollowsVBlankAndCtrl(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0, ctrlNMI)
	for p.Scanline != vblankStartLine || p.Dot != 1 {
		p.Tick()
	}
	p.Tick()
	if !p.NMILine() {
		t.Fatal("NMI line should assert once VBLANK starts with GENERATE_NMI set")
	}
}

func TestSpriteOverflowFlag(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 10 // all visible on the same scanline
	}
	p.Scanline = 10
	p.evaluateSprites()
	if p.status&statusOverflow == 0 {
		t.Fatal("expected sprite overflow with 9 sprites on one scanline")
	}
	if p.spriteCount != 8 {
		t.Fatalf("spriteCount = %d, want 8", p.spriteCount)
	}
}

func TestNametableMirrorHorizontal(t *testing.T) {
	p, _ := newTestPPU()
	p.writeVRAM(0x2000, 0x42)
	if got := p.readVRAM(0x2400); got != 0x42 {
		t.Fatalf("horizontal mirror: 0x2400 = %02X, want 42", got)
	}
	if got := p.readVRAM(0x2800); got == 0x42 {
		t.Fatal("horizontal mirror: 0x2800 should be a distinct nametable")
	}
}
