// Package bus implements the NES system bus: the CPU-visible address
// decoder and the clock that fans one CPU cycle out to three PPU dots and
// one APU tick.
package bus

import (
	"github.com/nescore/gones/internal/apu"
	"github.com/nescore/gones/internal/cartridge"
	"github.com/nescore/gones/internal/cpu"
	"github.com/nescore/gones/internal/input"
	"github.com/nescore/gones/internal/ppu"
)

// Bus connects the CPU, PPU, APU, joypads, and cartridge, and implements
// cpu.Bus for the processor it drives.
type Bus struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Pad  *input.Joypad
	Cart *cartridge.Cartridge

	ram [0x800]uint8

	frameReady bool
}

// New wires a Bus around an already-loaded cartridge.
func New(cart *cartridge.Cartridge) *Bus {
	b := &Bus{
		PPU:  ppu.New(cart, cart.Mirror),
		APU:  apu.New(),
		Pad:  input.New(),
		Cart: cart,
	}
	b.CPU = cpu.New(b)
	b.Reset()
	return b
}

// Reset performs a power-on/reset of every component.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.APU.Reset()
	b.CPU.Reset()
}

// Read implements cpu.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(0x2000 + addr&0x0007)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.Pad.Read(0)
	case addr == 0x4017:
		return b.Pad.Read(1)
	case addr < 0x4018:
		return 0
	case addr < 0x6000:
		return 0
	default:
		return b.Cart.ReadPRG(addr)
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+addr&0x0007, value)
	case addr == 0x4014:
		b.oamDMA(value)
	case addr == 0x4016:
		b.Pad.WriteStrobe(value)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, value)
	case addr < 0x6000:
		// Unmapped expansion area.
	default:
		b.Cart.WritePRG(addr, value)
	}
}

// oamDMA copies 256 bytes starting at page<<8 into OAM, through the normal
// CPU read path so RAM or cartridge mirrors behave exactly as a real $4014
// write would observe them.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := 0; i < 256; i++ {
		buf[i] = b.Read(base + uint16(i))
	}
	b.PPU.DMAWrite(buf)
}

// Tick advances the system by one CPU cycle: three PPU dots, one APU tick,
// and interrupt-line propagation. Any DMC DMA request pending this cycle is
// serviced with one extra bus read, as real hardware would via cycle
// stealing.
func (b *Bus) Tick() {
	for i := 0; i < 3; i++ {
		b.PPU.Tick()
	}
	b.APU.Tick()
	if addr, ok := b.APU.RequestDMA(); ok {
		b.APU.FulfillDMA(b.Read(addr))
	}

	b.CPU.SetNMILine(b.PPU.NMILine())
	b.CPU.SetIRQLine(b.APU.IRQLine())

	if b.PPU.FrameReady() {
		b.frameReady = true
	}
}

// Step runs one CPU instruction and the bus cycles it consumes, returning
// whether a PPU frame boundary was crossed during it.
func (b *Bus) Step() (frameDone bool) {
	cycles := b.CPU.Step()
	for i := uint8(0); i < cycles; i++ {
		b.Tick()
	}
	frameDone = b.frameReady
	b.frameReady = false
	return frameDone
}
