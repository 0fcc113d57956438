// Package ppu implements a cycle-accurate model of the NES picture
// processing unit (2C02): background and sprite pipelines, scroll
// registers, and the VBLANK/NMI timing the CPU polls each instruction.
package ppu

import "github.com/nescore/gones/internal/cartridge"

const (
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	visibleScanlines   = 240
	postRenderScanline = 240
	vblankStartLine    = 241
	preRenderLine      = 261

	statusVBlank    = 0x80
	statusSprite0   = 0x40
	statusOverflow  = 0x20
	ctrlNMI         = 0x80
	ctrlSpriteSize  = 0x20
	ctrlBGPattern   = 0x10
	ctrlSpritePat   = 0x08
	ctrlIncrement32 = 0x04

	maskGreyscale   = 0x01
	maskShowBGLeft  = 0x02
	maskShowSPLeft  = 0x04
	maskShowBG      = 0x08
	maskShowSprites = 0x10
)

// CHR is the cartridge's pattern-table interface, the only peripheral the
// PPU reaches outside its own state.
type CHR interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
}

type spriteSlot struct {
	patternLow, patternHigh uint8
	x                       uint8
	attr                    uint8
	isZero                  bool
}

// PPU is a 2C02. It owns VRAM, OAM, and palette RAM directly; the
// cartridge supplies only pattern-table data through CHR.
type PPU struct {
	chr    CHR
	mirror cartridge.Mirror

	ctrl, mask, status uint8
	oamAddr            uint8

	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8

	vram    [0x800]uint8
	palette [32]uint8
	oam     [256]uint8

	secondaryOAM   [32]uint8
	secondaryIsZero [8]bool
	spriteCount    uint8

	sprites [8]spriteSlot

	ntLatch, atLatch, ptLowLatch, ptHighLatch uint8
	patternShiftLow, patternShiftHigh         uint16
	attrShiftLow, attrShiftHigh               uint16

	Scanline int
	Dot      int
	frame    uint64

	// Framebuffer holds one RGB triple per pixel, row-major, 256x240.
	Framebuffer [256 * 240 * 3]uint8

	frameReady bool
}

// New creates a PPU wired to a cartridge's pattern tables and mirroring.
func New(chr CHR, mirror cartridge.Mirror) *PPU {
	return &PPU{chr: chr, mirror: mirror}
}

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.Scanline, p.Dot = 0, 0
	p.frame = 0
	p.patternShiftLow, p.patternShiftHigh = 0, 0
	p.attrShiftLow, p.attrShiftHigh = 0, 0
	p.spriteCount = 0
	for i := range p.oam {
		p.oam[i] = 0
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// NMILine reports the PPU's NMI output: asserted iff VBLANK is active and
// the controller register has NMI generation enabled.
func (p *PPU) NMILine() bool {
	return p.status&statusVBlank != 0 && p.ctrl&ctrlNMI != 0
}

// FrameReady reports (and clears) whether a frame boundary was crossed
// since the last call, for hosts driving run_next_frame.
func (p *PPU) FrameReady() bool {
	r := p.frameReady
	p.frameReady = false
	return r
}

// Tick advances the PPU by exactly one dot.
func (p *PPU) Tick() {
	p.processDot()
	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.Dot++
	if p.Dot >= dotsPerScanline {
		p.Dot = 0
		p.Scanline++
		if p.Scanline >= scanlinesPerFrame {
			p.Scanline = 0
			p.frame++
		}
	}
}

func (p *PPU) processDot() {
	renderLine := p.Scanline < visibleScanlines || p.Scanline == preRenderLine

	if p.Scanline == vblankStartLine && p.Dot == 1 {
		p.status |= statusVBlank
		p.frameReady = true
	}
	if p.Scanline == preRenderLine && p.Dot == 1 {
		p.status &^= statusVBlank | statusSprite0 | statusOverflow
	}

	if renderLine {
		p.backgroundDot()
	}

	if p.Scanline < visibleScanlines && p.Dot >= 2 && p.Dot <= 257 {
		p.outputPixel()
	}

	// Sprite steps run after this dot's pixel so the fetch at dot 257 does
	// not replace the current line's sprites before its last column is drawn.
	if renderLine {
		p.spriteDot()
	}
}
