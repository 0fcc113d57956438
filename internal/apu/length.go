package apu

// lengthTable is the 32-entry lookup for the length-counter load registers.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter is shared by all five channels.
type lengthCounter struct {
	halt    bool
	value   uint8
	enabled bool
}

// load sets the counter from the 5-bit table index, but only if the
// channel is currently enabled via $4015.
func (l *lengthCounter) load(index uint8) {
	if l.enabled {
		l.value = lengthTable[index&0x1F]
	}
}

// setEnabled applies a $4015 channel-enable bit; disabling forces the
// counter to zero.
func (l *lengthCounter) setEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.value = 0
	}
}

// clock runs on a half frame.
func (l *lengthCounter) clock() {
	if !l.halt && l.value > 0 {
		l.value--
	}
}

func (l *lengthCounter) active() bool {
	return l.value > 0
}
