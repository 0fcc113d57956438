package apu

// mix combines channel outputs (0-15 for pulse/triangle/noise, 0-127 for
// DMC) into one sample via the NES's non-linear mixer approximation.
func mix(pulse1, pulse2, triangle, noise, dmc uint8) float32 {
	var pulseOut float32
	if pulse1 != 0 || pulse2 != 0 {
		pulseOut = 95.88 / (8128/(float32(pulse1)+float32(pulse2)) + 100)
	}

	var tndOut float32
	denom := float32(triangle)/8227 + float32(noise)/12241 + float32(dmc)/22638
	if denom != 0 {
		tndOut = 159.79 / (1/denom + 100)
	}

	return pulseOut + tndOut
}
