package apu

import "testing"

func TestLengthCounterTableAndHalfFrameDecrement(t *testing.T) {
	var lc lengthCounter
	lc.setEnabled(true)
	lc.load(0)
	if lc.value != 10 {
		t.Fatalf("length[0] = %d, want 10", lc.value)
	}
	lc.load(1)
	if lc.value != 254 {
		t.Fatalf("length[1] = %d, want 254", lc.value)
	}
	before := lc.value
	lc.clock()
	if lc.value != before-1 {
		t.Fatalf("half-frame clock should decrement by one")
	}
}

func TestStatusWriteZeroClearsChannelBits(t *testing.T) {
	a := New()
	a.writeStatus(0x1F)
	a.pulse1.length.load(0)
	a.pulse2.length.load(0)
	a.triangle.length.load(0)
	a.noise.length.load(0)

	a.writeStatus(0x00)
	status := a.ReadStatus()
	if status&0x0F != 0 {
		t.Fatalf("status = %02X, want length bits clear after disabling all channels", status)
	}
}

func TestDMCSampleLengthFormula(t *testing.T) {
	var d dmcChannel
	d.writeSampleLength(0x01)
	if d.sampleLength != 17 {
		t.Fatalf("sample length = %d, want 17 ((1<<4)+1)", d.sampleLength)
	}
}

func TestDMCAddressWrapsAt0xFFFF(t *testing.T) {
	d := newDMCChannel()
	d.sampleAddress = 0xFFFF
	d.sampleLength = 2
	d.setEnabled(true)
	d.fulfillDMA(0x55)
	if d.currentAddr != 0x8000 {
		t.Fatalf("currentAddr = %04X, want 8000 after wraparound", d.currentAddr)
	}
}

func TestFrameCounterFourStepIRQ(t *testing.T) {
	var f frameCounter
	f.write(0x00) // 4-step, IRQ enabled
	for i := 0; i < 4; i++ {
		f.tick()
	}
	for i := uint32(0); i < 29831; i++ {
		if f.irqAsserted() {
			return
		}
		f.tick()
	}
	t.Fatal("expected frame IRQ to assert within one 4-step sequence")
}

func TestFrameCounterFiveStepNeverIRQs(t *testing.T) {
	var f frameCounter
	f.write(0x80) // 5-step
	for i := 0; i < 4; i++ {
		f.tick()
	}
	for i := uint32(0); i < 40000; i++ {
		if f.irqAsserted() {
			t.Fatal("5-step mode should never assert frame IRQ")
		}
		f.tick()
	}
}
