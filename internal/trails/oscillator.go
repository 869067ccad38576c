package trails

import "math"

// Oscillator is a phase accumulator read through a sine.
type Oscillator struct {
	Phase     float64
	Frequency float64
	Amplitude float64
	Offset    float64

	value float64
}

// NewOscillator fills in a frequency of 0.001 and an amplitude of 1 when
// they are left at zero.
func NewOscillator(phase, frequency, amplitude, offset float64) *Oscillator {
	if frequency == 0 {
		frequency = 0.001
	}
	if amplitude == 0 {
		amplitude = 1
	}
	return &Oscillator{
		Phase:     phase,
		Frequency: frequency,
		Amplitude: amplitude,
		Offset:    offset,
	}
}

// Update advances the phase by one step and returns the new value.
func (o *Oscillator) Update() float64 {
	o.Phase += o.Frequency
	o.value = o.Offset + o.Amplitude*math.Sin(o.Phase)
	return o.value
}

// Value returns the result of the last Update, or zero before the first.
func (o *Oscillator) Value() float64 { return o.value }
