package termhost

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Chime is the delivery sound.
type Chime interface {
	Play()
}

type Silent struct{}

func (Silent) Play() {}

// Tone plays a short sine tone on the system speaker.
type Tone struct {
	rate   beep.SampleRate
	freq   float64
	length time.Duration
}

// NewTone initializes the speaker. Callers fall back to Silent on error;
// the game runs fine without sound.
func NewTone(freq float64, length time.Duration) (*Tone, error) {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Tone{rate: rate, freq: freq, length: length}, nil
}

func (t *Tone) Play() {
	sine, err := generators.SineTone(t.rate, t.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(t.rate.N(t.length), sine))
}

func (t *Tone) Close() { speaker.Close() }
