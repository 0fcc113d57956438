package apu

// dutyTable holds the four duty-cycle waveforms, 8 steps each.
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

type pulseChannel struct {
	isPulse1 bool

	env    envelope
	length lengthCounter

	duty     uint8
	sequence uint8

	timerPeriod  uint16
	timerCounter uint16

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepDivider uint8
}

func (p *pulseChannel) writeControl(value uint8) {
	p.duty = value >> 6
	p.length.halt = value&0x20 != 0
	p.env.loop = p.length.halt
	p.env.writeControl(value)
}

func (p *pulseChannel) writeSweep(value uint8) {
	p.sweepEnabled = value&0x80 != 0
	p.sweepPeriod = (value >> 4) & 0x07
	p.sweepNegate = value&0x08 != 0
	p.sweepShift = value & 0x07
	p.sweepReload = true
}

func (p *pulseChannel) writeTimerLow(value uint8) {
	p.timerPeriod = (p.timerPeriod &^ 0x00FF) | uint16(value)
}

func (p *pulseChannel) writeTimerHigh(value uint8) {
	p.timerPeriod = (p.timerPeriod &^ 0x0700) | (uint16(value&0x07) << 8)
	p.length.load(value >> 3)
	p.sequence = 0
	p.env.start = true
}

// targetPeriod computes the swept timer period; mute is set when the
// current or target period falls outside the valid timer range.
func (p *pulseChannel) targetPeriod() (target uint16, mute bool) {
	change := p.timerPeriod >> p.sweepShift
	if p.sweepNegate {
		if p.isPulse1 {
			target = p.timerPeriod - change - 1
		} else {
			target = p.timerPeriod - change
		}
	} else {
		target = p.timerPeriod + change
	}
	mute = p.timerPeriod < 8 || target > 0x7FF
	return target, mute
}

func (p *pulseChannel) clockSweep() {
	_, mute := p.targetPeriod()
	if p.sweepDivider == 0 && p.sweepEnabled && p.sweepShift > 0 && !mute {
		target, _ := p.targetPeriod()
		p.timerPeriod = target
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *pulseChannel) tickTimer() {
	if p.timerCounter == 0 {
		p.timerCounter = p.timerPeriod
		p.sequence = (p.sequence + 1) % 8
	} else {
		p.timerCounter--
	}
}

func (p *pulseChannel) output() uint8 {
	_, mute := p.targetPeriod()
	if mute || p.timerPeriod < 8 || !p.length.active() || dutyTable[p.duty][p.sequence] == 0 {
		return 0
	}
	return p.env.output()
}
