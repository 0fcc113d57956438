package bus

import (
	"bytes"
	"testing"

	"github.com/nescore/gones/internal/cartridge"
)

func testCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	header := make([]byte, 16)
	copy(header[0:4], "NES\x1A")
	header[4] = 2 // 32KB PRG
	header[5] = 1 // 8KB CHR
	prg := make([]byte, 2*16*1024)
	// RESET vector at top of PRG points to $8000.
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80
	chr := make([]byte, 8*1024)
	rom := append(header, prg...)
	rom = append(rom, chr...)

	cart, err := cartridge.LoadReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return cart
}

func TestRAMIsMirroredAcross2KiB(t *testing.T) {
	b := New(testCartridge(t))
	b.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := b.Read(mirror); got != 0x42 {
			t.Fatalf("read %#04x = %#02x, want 0x42", mirror, got)
		}
	}
	b.Write(0x1801, 0x99)
	if got := b.Read(0x0001); got != 0x99 {
		t.Fatalf("mirrored write did not propagate: got %#02x", got)
	}
}

func TestPPURegistersMirrorEvery8Bytes(t *testing.T) {
	b := New(testCartridge(t))
	// Enter VBLANK so NMILine follows PPUCTRL's NMI-enable bit.
	for b.PPU.Scanline != 241 || b.PPU.Dot != 2 {
		b.PPU.Tick()
	}
	b.Write(0x2000, 0x80) // PPUCTRL: enable NMI
	for _, mirror := range []uint16{0x2008, 0x2010, 0x3FF8} {
		b.Write(mirror, 0x00) // clears NMI enable through the mirror
		if b.PPU.NMILine() {
			t.Fatalf("expected mirrored write at %#04x to reach PPUCTRL", mirror)
		}
		b.Write(0x2000, 0x80)
	}
}

func TestOAMDMACopies256Bytes(t *testing.T) {
	b := New(testCartridge(t))
	for i := 0; i < 256; i++ {
		b.ram[i] = uint8(i)
	}
	b.Write(0x2003, 0x00) // OAMADDR = 0
	b.oamDMA(0x00)
	for i := 0; i < 256; i++ {
		b.Write(0x2003, uint8(i)) // $2004 reads do not advance OAMADDR
		if got := b.PPU.ReadRegister(0x2004); got != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, got, uint8(i))
		}
	}
}

func TestJoypadStrobeThroughBus(t *testing.T) {
	b := New(testCartridge(t))
	b.Pad.SetButton(0, 0, true) // ButtonA
	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	if got := b.Read(0x4016); got&1 != 1 {
		t.Fatalf("first joypad read = %#02x, want bit0 set", got)
	}
	if got := b.Read(0x4016); got&1 != 0 {
		t.Fatalf("second joypad read (B) = %#02x, want bit0 clear", got)
	}
}
