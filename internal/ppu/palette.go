package ppu

import "github.com/nescore/gones/internal/cartridge"

// SystemPalette is the 64-entry NES master palette, RGB triples.
var SystemPalette = [64][3]uint8{
	{0x66, 0x66, 0x66}, {0x00, 0x2A, 0x88}, {0x14, 0x12, 0xA7}, {0x3B, 0x00, 0xA4},
	{0x5C, 0x00, 0x7E}, {0x6E, 0x00, 0x40}, {0x6C, 0x06, 0x00}, {0x56, 0x1D, 0x00},
	{0x33, 0x35, 0x00}, {0x0B, 0x48, 0x00}, {0x00, 0x52, 0x00}, {0x00, 0x4F, 0x08},
	{0x00, 0x40, 0x4D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAD, 0xAD, 0xAD}, {0x15, 0x5F, 0xD9}, {0x42, 0x40, 0xFF}, {0x75, 0x27, 0xFE},
	{0xA0, 0x1A, 0xCC}, {0xB7, 0x1E, 0x7B}, {0xB5, 0x31, 0x20}, {0x99, 0x4E, 0x00},
	{0x6B, 0x6D, 0x00}, {0x38, 0x87, 0x00}, {0x0C, 0x93, 0x00}, {0x00, 0x8F, 0x32},
	{0x00, 0x7C, 0x8D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0x64, 0xB0, 0xFF}, {0x92, 0x90, 0xFF}, {0xC6, 0x76, 0xFF},
	{0xF3, 0x6A, 0xFF}, {0xFE, 0x6E, 0xCC}, {0xFE, 0x81, 0x70}, {0xEA, 0x9E, 0x22},
	{0xBC, 0xBE, 0x00}, {0x88, 0xD8, 0x00}, {0x5C, 0xE4, 0x30}, {0x45, 0xE0, 0x82},
	{0x48, 0xCD, 0xDE}, {0x4F, 0x4F, 0x4F}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0xC0, 0xDF, 0xFF}, {0xD3, 0xD2, 0xFF}, {0xE8, 0xC8, 0xFF},
	{0xFB, 0xC2, 0xFF}, {0xFE, 0xC4, 0xEA}, {0xFE, 0xCC, 0xC5}, {0xF7, 0xD8, 0xA5},
	{0xE4, 0xE5, 0x94}, {0xCF, 0xF2, 0x9B}, {0xBE, 0xFB, 0xB3}, {0xB8, 0xF8, 0xD8},
	{0xB8, 0xF8, 0xF8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// nametableIndex maps a $2000-$2FFF address to a physical offset in the
// 2KiB VRAM array according to the cartridge's mirroring tag.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	logical := (addr - 0x2000) / 0x400 % 4
	offset := addr & 0x3FF
	var table uint16
	switch p.mirror {
	case cartridge.MirrorHorizontal:
		table = logical / 2
	case cartridge.MirrorVertical:
		table = logical % 2
	default: // FourScreen: approximated onto 2KiB, see DESIGN.md
		table = logical % 2
	}
	return table*0x400 + offset
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.chr.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableIndex(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.chr.WriteCHR(addr, value)
	case addr < 0x3F00:
		p.vram[p.nametableIndex(addr)] = value
	default:
		p.writePalette(addr, value)
	}
}

func (p *PPU) paletteIndexFor(addr uint16) uint16 {
	i := addr & 0x1F
	if i&0x13 == 0x10 {
		i &^= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.palette[p.paletteIndexFor(addr)] & 0x3F
}

func (p *PPU) writePalette(addr uint16, value uint8) {
	p.palette[p.paletteIndexFor(addr)] = value & 0x3F
}

func (p *PPU) colorFor(paletteIndex uint8) [3]uint8 {
	return SystemPalette[p.palette[paletteIndex]&0x3F]
}
