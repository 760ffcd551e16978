// Package chime provides an announcement sink that plays a short audio
// cue. It carries no speech; pair it with a visual live region or a
// speech sink so the announcement text still reaches the user.
package chime

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// Audio parameters for the generated tone.
const (
	SampleRate = 44100
	Frequency  = 880.0 // A5, short and unobtrusive
	Duration   = 120 * time.Millisecond
)

// Sink plays a fixed sine tone for every announcement.
type Sink struct {
	mu      sync.Mutex
	context *oto.Context
	tone    []byte
}

// New creates a chime sink and initializes the audio device. The
// returned sink is safe for concurrent use.
func New() (*Sink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize audio context: %w", err)
	}

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("audio context not ready after 5s")
	}

	return &Sink{
		context: ctx,
		tone:    sineTone(Frequency, Duration),
	}, nil
}

// Announce plays the cue. The text itself is intentionally unused.
func (s *Sink) Announce(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.context.NewPlayer(bytes.NewReader(s.tone))
	player.Play()

	// Tones are short; wait them out so players do not pile up.
	for player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("unable to close player: %w", err)
	}

	log.Debug("Chime sink: played cue")
	return nil
}

// sineTone renders a 16-bit mono PCM sine wave with a linear fade-out
// to avoid a click at the end.
func sineTone(freq float64, d time.Duration) []byte {
	samples := int(float64(SampleRate) * d.Seconds())
	out := make([]byte, samples*2)

	for i := 0; i < samples; i++ {
		fade := 1.0 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * 0.4 * fade
		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(sample))
	}

	return out
}
