package ppu

// ReadRegister reads one of the eight CPU-visible registers ($2000-$2007,
// already demodulated by the bus). Write-only registers return 0.
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2:
		status := p.status
		p.status &^= statusVBlank
		p.w = false
		return status
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		return p.readPPUData()
	default:
		return 0
	}
}

// WriteRegister writes one of the eight CPU-visible registers.
func (p *PPU) WriteRegister(reg uint16, value uint8) {
	switch reg & 7 {
	case 0:
		p.ctrl = value
		p.t = (p.t &^ 0x0C00) | (uint16(value&0x03) << 10)
	case 1:
		p.mask = value
	case 2:
		// PPUSTATUS is read-only.
	case 3:
		p.oamAddr = value
	case 4:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5:
		p.writeScroll(value)
	case 6:
		p.writeAddr(value)
	case 7:
		p.writePPUData(value)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0x001F) | uint16(value>>3)
		p.x = value & 0x07
		p.w = true
		return
	}
	p.t = (p.t &^ 0x73E0) | (uint16(value&0x07) << 12) | (uint16(value&0xF8) << 2)
	p.w = false
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0x7F00) | (uint16(value&0x3F) << 8)
		p.w = true
		return
	}
	p.t = (p.t &^ 0x00FF) | uint16(value)
	p.v = p.t & 0x3FFF
	p.w = false
}

func (p *PPU) readPPUData() uint8 {
	addr := p.v & 0x3FFF
	var data uint8
	if addr >= 0x3F00 {
		data = p.readPalette(addr)
		p.readBuffer = p.readVRAM(addr - 0x1000)
	} else {
		data = p.readBuffer
		p.readBuffer = p.readVRAM(addr)
	}
	p.incrementV()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	p.writeVRAM(p.v&0x3FFF, value)
	p.incrementV()
}

// incrementV applies the $2007 access increment: the controller-selected
// step normally, or the "bus conflict" coarse-X/fine-Y bump the source
// exhibits while rendering is active (§9 open question).
func (p *PPU) incrementV() {
	renderLine := p.Scanline < visibleScanlines || p.Scanline == preRenderLine
	if p.renderingEnabled() && renderLine {
		p.incrementCoarseX()
		p.incrementFineY()
		return
	}
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// DMAWrite uploads a 256-byte page into OAM starting at the current OAM
// address, as driven by a $4014 write.
func (p *PPU) DMAWrite(page [256]uint8) {
	for i := 0; i < 256; i++ {
		p.oam[uint8(int(p.oamAddr)+i)] = page[i]
	}
}
