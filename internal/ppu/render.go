package ppu

// outputPixel composites the background and sprite pixel for the current
// dot and writes it into the framebuffer, per the compositor rules and
// sprite-0 hit detection of §4.3.
func (p *PPU) outputPixel() {
	col := p.Dot - 2
	if col < 0 || col >= 256 {
		return
	}

	bgColor, bgPalette := p.backgroundPixel()
	if col < 8 && p.mask&maskShowBGLeft == 0 {
		bgColor = 0
	}
	bgOpaque := bgColor != 0

	spColor, spPalette, spPriority, spIsZero, spOpaque := p.spritePixel(col)
	if col < 8 && p.mask&maskShowSPLeft == 0 {
		spOpaque = false
	}

	p.checkSprite0Hit(col, bgOpaque, spOpaque, spIsZero)

	var idx uint8
	switch {
	case !bgOpaque && !spOpaque:
		idx = 0
	case !bgOpaque:
		idx = 0x10 + spPalette*4 + spColor
	case !spOpaque:
		idx = bgPalette*4 + bgColor
	case spPriority:
		idx = bgPalette*4 + bgColor
	default:
		idx = 0x10 + spPalette*4 + spColor
	}

	if !p.renderingEnabled() && p.v&0x3F00 == 0x3F00 {
		idx = uint8(p.v & 0x1F)
	}

	rgb := p.colorFor(idx)
	base := (p.Scanline*256 + col) * 3
	p.Framebuffer[base] = rgb[0]
	p.Framebuffer[base+1] = rgb[1]
	p.Framebuffer[base+2] = rgb[2]
}

func (p *PPU) checkSprite0Hit(col int, bgOpaque, spOpaque, spIsZero bool) {
	if !spIsZero || !bgOpaque || !spOpaque {
		return
	}
	if p.mask&(maskShowBG|maskShowSprites) != (maskShowBG | maskShowSprites) {
		return
	}
	if col == 255 {
		return
	}
	if col < 8 && p.mask&(maskShowBGLeft|maskShowSPLeft) != (maskShowBGLeft|maskShowSPLeft) {
		return
	}
	p.status |= statusSprite0
}
