package apu

// dmcRateTable is the 16-entry NTSC rate table, in CPU clocks.
var dmcRateTable = [16]uint16{
	0x1AC, 0x17C, 0x154, 0x140, 0x11E, 0x0FE, 0x0E2, 0x0D6,
	0x0BE, 0x0A0, 0x08E, 0x080, 0x06A, 0x054, 0x048, 0x036,
}

type dmcChannel struct {
	irqEnabled bool
	irqFlag    bool
	loop       bool

	timerPeriod  uint16
	timerCounter uint16

	sampleAddress uint16
	sampleLength  uint16
	currentAddr   uint16
	bytesLeft     uint16

	sampleBuffer uint8
	bufferEmpty  bool

	shift         uint8
	bitsRemaining uint8
	silence       bool
	output        uint8
}

func newDMCChannel() dmcChannel {
	return dmcChannel{bufferEmpty: true, silence: true}
}

func (d *dmcChannel) writeControl(value uint8) {
	d.irqEnabled = value&0x80 != 0
	if !d.irqEnabled {
		d.irqFlag = false
	}
	d.loop = value&0x40 != 0
	d.timerPeriod = dmcRateTable[value&0x0F]
}

func (d *dmcChannel) writeDirectLoad(value uint8) {
	d.output = value & 0x7F
}

func (d *dmcChannel) writeSampleAddress(value uint8) {
	d.sampleAddress = 0xC000 | (uint16(value) << 6)
}

// writeSampleLength computes (data<<4)+1 bytes, correcting the source's
// `data << 4 + 1` operator-precedence bug (§9).
func (d *dmcChannel) writeSampleLength(value uint8) {
	d.sampleLength = (uint16(value) << 4) + 1
}

func (d *dmcChannel) startSample() {
	d.currentAddr = d.sampleAddress
	d.bytesLeft = d.sampleLength
}

func (d *dmcChannel) setEnabled(enabled bool) {
	if !enabled {
		d.bytesLeft = 0
	} else if d.bytesLeft == 0 {
		d.startSample()
	}
	d.irqFlag = false
}

// requestDMA reports the address to fetch next, if the sample buffer is
// empty and bytes remain.
func (d *dmcChannel) requestDMA() (addr uint16, ok bool) {
	if d.bufferEmpty && d.bytesLeft > 0 {
		return d.currentAddr, true
	}
	return 0, false
}

// fulfillDMA delivers the byte the bus fetched for a prior requestDMA.
func (d *dmcChannel) fulfillDMA(data uint8) {
	d.sampleBuffer = data
	d.bufferEmpty = false
	if d.currentAddr == 0xFFFF {
		d.currentAddr = 0x8000
	} else {
		d.currentAddr++
	}
	d.bytesLeft--
	if d.bytesLeft == 0 {
		if d.loop {
			d.startSample()
		} else if d.irqEnabled {
			d.irqFlag = true
		}
	}
}

// tickTimer runs every CPU clock, matching the rate table's units.
func (d *dmcChannel) tickTimer() {
	if d.timerCounter > 0 {
		d.timerCounter--
		return
	}
	d.timerCounter = d.timerPeriod

	if !d.silence {
		if d.shift&1 != 0 {
			if d.output <= 125 {
				d.output += 2
			}
		} else if d.output >= 2 {
			d.output -= 2
		}
	}
	d.shift >>= 1

	if d.bitsRemaining > 0 {
		d.bitsRemaining--
	}
	if d.bitsRemaining == 0 {
		d.bitsRemaining = 8
		if d.bufferEmpty {
			d.silence = true
		} else {
			d.silence = false
			d.shift = d.sampleBuffer
			d.bufferEmpty = true
		}
	}
}
