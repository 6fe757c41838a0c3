package audio

import "math"

// noteFrequencies holds equal-tempered frequencies for MIDI keys 0-127, A4 (69) = 440Hz
var noteFrequencies [128]float64

func init() {
	for i := range noteFrequencies {
		noteFrequencies[i] = 440.0 * math.Exp2((float64(i)-69.0)/12.0)
	}
}

// NoteFreq returns frequency in Hz for a MIDI key, 0 outside 0-127
func NoteFreq(key int) float64 {
	if key < 0 || key >= len(noteFrequencies) {
		return 0
	}
	return noteFrequencies[key]
}
