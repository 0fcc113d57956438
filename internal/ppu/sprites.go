package ppu

// spriteHeight returns 8 or 16 per PPUCTRL bit 5.
func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

// spriteDot runs sprite evaluation and sprite pattern fetch as one-shot
// steps at dots 65 and 257 rather than spreading them across dots 65-256
// and 257-320 one OAM entry/byte at a time; see DESIGN.md for why this
// collapses the literal per-dot walk without changing observable output
// at any rendering dot.
func (p *PPU) spriteDot() {
	switch {
	case p.Dot == 1:
		for i := range p.secondaryOAM {
			p.secondaryOAM[i] = 0xFF
		}
		for i := range p.secondaryIsZero {
			p.secondaryIsZero[i] = false
		}
	case p.Dot == 65:
		p.evaluateSprites()
	case p.Dot == 257:
		p.fetchSprites()
	}
}

func (p *PPU) evaluateSprites() {
	target := (p.Scanline + 1) % scanlinesPerFrame
	height := p.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		if target >= y && target < y+height {
			if count < 8 {
				copy(p.secondaryOAM[count*4:count*4+4], p.oam[i*4:i*4+4])
				p.secondaryIsZero[count] = i == 0
				count++
			} else {
				p.status |= statusOverflow
				break
			}
		}
	}
	p.spriteCount = uint8(count)
}

func (p *PPU) fetchSprites() {
	height := p.spriteHeight()
	target := (p.Scanline + 1) % scanlinesPerFrame
	for i := 0; i < int(p.spriteCount); i++ {
		y := int(p.secondaryOAM[i*4])
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := target - y
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var base uint16
		var index uint8
		if height == 16 {
			if tile&0x01 != 0 {
				base = 0x1000
			}
			index = tile &^ 0x01
			if row >= 8 {
				index++
				row -= 8
			}
		} else {
			if p.ctrl&ctrlSpritePat != 0 {
				base = 0x1000
			}
			index = tile
		}

		addr := base | (uint16(index) << 4) | uint16(row)
		lo := p.chr.ReadCHR(addr)
		hi := p.chr.ReadCHR(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprites[i] = spriteSlot{
			patternLow:  lo,
			patternHigh: hi,
			x:           x,
			attr:        attr,
			isZero:      p.secondaryIsZero[i],
		}
	}
	for i := int(p.spriteCount); i < 8; i++ {
		p.sprites[i] = spriteSlot{}
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixel scans the active sprite array for the first opaque sprite
// covering the given screen column, returning its color/palette/priority
// and whether it is sprite 0.
func (p *PPU) spritePixel(col int) (color, palette uint8, priority bool, isZero, opaque bool) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0, false, false, false
	}
	// All eight slots are scanned: spriteCount already describes the next
	// scanline once evaluation runs at dot 65, and unused slots are zeroed
	// (fully transparent) by fetchSprites.
	for i := 0; i < len(p.sprites); i++ {
		s := p.sprites[i]
		offset := col - int(s.x)
		if offset < 0 || offset >= 8 {
			continue
		}
		bit := 7 - uint(offset)
		lo := (s.patternLow >> bit) & 1
		hi := (s.patternHigh >> bit) & 1
		c := hi<<1 | lo
		if c == 0 {
			continue
		}
		return c, s.attr & 0x03, s.attr&0x20 != 0, s.isZero, true
	}
	return 0, 0, false, false, false
}
