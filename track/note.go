package track

import (
	"errors"
	"strconv"
	"strings"
)

// Note range limits
const (
	MaxKey        = 127
	MaxInstrument = 255
)

var (
	ErrKeyRange        = errors.New("note key out of range 0-127")
	ErrInstrumentRange = errors.New("instrument id out of range 0-255")
)

// Note is a pitch (MIDI semitone index, 0 = C-1) played by an instrument
type Note struct {
	Key        uint8
	Instrument uint8
}

// NewNote validates ranges before building a Note
func NewNote(key, instrument int) (Note, error) {
	if key < 0 || key > MaxKey {
		return Note{}, ErrKeyRange
	}
	if instrument < 0 || instrument > MaxInstrument {
		return Note{}, ErrInstrumentRange
	}
	return Note{Key: uint8(key), Instrument: uint8(instrument)}, nil
}

// pitchNames is indexed by key % 12, every entry two columns wide
var pitchNames = [12]string{
	"C ", "C#", "D ", "D#", "E ", "F ", "F#", "G ", "G#", "A ", "A#", "B ",
}

// PitchName returns the two-column name of the pitch class
func PitchName(key uint8) string {
	return pitchNames[key%12]
}

// Octave uses MIDI numbering: key 0 is octave -1, key 60 is octave 4
func Octave(key uint8) int {
	return int(key)/12 - 1
}

// String renders "<name><octave> <instrument:3>", e.g. "C 4 001"
func (n Note) String() string {
	var b strings.Builder
	b.Grow(FormatWidth + 1)
	b.WriteString(PitchName(n.Key))
	b.WriteString(strconv.Itoa(Octave(n.Key)))
	b.WriteByte(' ')
	inst := strconv.Itoa(int(n.Instrument))
	for i := len(inst); i < 3; i++ {
		b.WriteByte('0')
	}
	b.WriteString(inst)
	return b.String()
}
