// Package sound plays short audio cues through the system speaker. It stands
// in for the haptic engine of the original hardware: every beat, hit and miss
// gets a tone.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone frequencies and lengths per cue.
const (
	tickFreq    = 660
	successFreq = 880
	failureFreq = 220
	startFreq   = 990

	tickLen    = 40 * time.Millisecond
	successLen = 120 * time.Millisecond
	failureLen = 300 * time.Millisecond
	startLen   = 150 * time.Millisecond
)

// ToneNotifier implements session.Notifier with synthesized tones.
// Before Initialize succeeds every notification is a silent no-op, so the
// game runs unchanged on machines without an audio device.
type ToneNotifier struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewToneNotifier creates an uninitialized tone notifier.
func NewToneNotifier() *ToneNotifier {
	return &ToneNotifier{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device. Safe to call more than once.
func (t *ToneNotifier) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(t.mixer)
	t.initialized = true
	return nil
}

// Close silences the notifier and releases the audio device.
func (t *ToneNotifier) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	t.mixer.Clear()
	speaker.Close()
	t.initialized = false
}

// play queues a fixed-length sine tone on the mixer.
func (t *ToneNotifier) play(freq float64, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}

	speaker.Lock()
	t.mixer.Add(beep.Take(sampleRate.N(d), sine))
	speaker.Unlock()
}

func (t *ToneNotifier) NotifyTick()    { t.play(tickFreq, tickLen) }
func (t *ToneNotifier) NotifySuccess() { t.play(successFreq, successLen) }
func (t *ToneNotifier) NotifyFailure() { t.play(failureFreq, failureLen) }
func (t *ToneNotifier) NotifyStart()   { t.play(startFreq, startLen) }
