package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-tracker/track"
)

const (
	SampleRate = beep.SampleRate(48000)

	ToneDuration = 180 * time.Millisecond
	ToneAttack   = 5 * time.Millisecond
	ToneRelease  = 60 * time.Millisecond
	ToneVolume   = 0.3

	bufferDuration = 100 * time.Millisecond
)

var ErrNotStarted = errors.New("audio not started")

// Tone builds the enveloped stream Beep plays for n
func Tone(n track.Note, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(NoteFreq(int(n.Key)), ToneDuration, WaveForInstrument(n.Instrument), rate)
	shaped := NewEnvelope(osc, ToneDuration, ToneAttack, ToneRelease, rate)
	return newVolume(shaped, ToneVolume)
}

// Beep auditions notes through the system speaker.
// Tones overlap freely on a shared mixer.
type Beep struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	started bool
}

// NewBeep returns an idle auditioner; call Start before Audition
func NewBeep() *Beep {
	return &Beep{mixer: &beep.Mixer{}}
}

// Start opens the speaker and begins playing the mixer
func (b *Beep) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(bufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(b.mixer)
	b.started = true
	return nil
}

// Audition queues a tone for n. Silently ignored before Start.
func (b *Beep) Audition(n track.Note) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}
	tone := Tone(n, SampleRate)
	speaker.Lock()
	b.mixer.Add(tone)
	speaker.Unlock()
}

// Close drops queued tones and shuts the speaker
func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return ErrNotStarted
	}
	speaker.Clear()
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.started = false
	return nil
}
