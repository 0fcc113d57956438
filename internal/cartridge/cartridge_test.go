package cartridge

import (
	"bytes"
	"testing"
)

func buildINES(prgBanks, chrBanks uint8, flags6, flags7 uint8) []byte {
	header := make([]byte, headerSize)
	copy(header[0:4], "NES\x1A")
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = flags6
	header[7] = flags7

	prg := make([]byte, int(prgBanks)*prgBankSize)
	for i := range prg {
		prg[i] = uint8(i)
	}
	chr := make([]byte, int(chrBanks)*chrBankSize)
	for i := range chr {
		chr[i] = uint8(i + 1)
	}

	rom := append(header, prg...)
	rom = append(rom, chr...)
	return rom
}

func TestLoadRejectsBadMagic(t *testing.T) {
	bad := []byte("ROM\x1A0000000000000")
	if _, err := LoadReader(bytes.NewReader(bad)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadRejectsNES20(t *testing.T) {
	rom := buildINES(1, 1, 0, 0x08)
	if _, err := LoadReader(bytes.NewReader(rom)); err == nil {
		t.Fatal("expected NES 2.0 header to be rejected")
	}
}

func TestMirrorResolution(t *testing.T) {
	cases := []struct {
		flags6 uint8
		want   Mirror
	}{
		{0x00, MirrorHorizontal},
		{0x01, MirrorVertical},
		{0x08, MirrorFourScreen},
		{0x09, MirrorFourScreen}, // four-screen overrides vertical bit
	}
	for _, c := range cases {
		rom := buildINES(1, 1, c.flags6, 0)
		cart, err := LoadReader(bytes.NewReader(rom))
		if err != nil {
			t.Fatalf("flags6=%02X: %v", c.flags6, err)
		}
		if cart.Mirror != c.want {
			t.Errorf("flags6=%02X: got %v, want %v", c.flags6, cart.Mirror, c.want)
		}
	}
}

func TestSingleBankPRGMirrors(t *testing.T) {
	rom := buildINES(1, 1, 0, 0)
	cart, err := LoadReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cart.ReadPRG(0x8000), cart.ReadPRG(0xC000); got != want {
		t.Errorf("upper window did not mirror lower bank: %02X != %02X", got, want)
	}
}

func TestPRGROMWritesAreIgnored(t *testing.T) {
	rom := buildINES(1, 1, 0, 0)
	cart, _ := LoadReader(bytes.NewReader(rom))
	before := cart.ReadPRG(0x8000)
	cart.WritePRG(0x8000, before^0xFF)
	if got := cart.ReadPRG(0x8000); got != before {
		t.Errorf("PRG-ROM write was not ignored: got %02X, want %02X", got, before)
	}
}

func TestCHRRAMWhenNoChrBanks(t *testing.T) {
	rom := buildINES(1, 0, 0, 0)
	cart, err := LoadReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatal(err)
	}
	cart.WriteCHR(0x0010, 0x42)
	if got := cart.ReadCHR(0x0010); got != 0x42 {
		t.Errorf("CHR-RAM write not observed: got %02X", got)
	}
}

func TestSRAMReadWrite(t *testing.T) {
	rom := buildINES(1, 1, 0, 0)
	cart, _ := LoadReader(bytes.NewReader(rom))
	cart.WritePRG(0x6000, 0x55)
	if got := cart.ReadPRG(0x6000); got != 0x55 {
		t.Errorf("SRAM round-trip failed: got %02X", got)
	}
}
