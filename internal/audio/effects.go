package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// tone is a sine oscillator with a linear frequency sweep and an
// attack/release envelope.
type tone struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	attack   int
	release  int
	pos      int
	phase    float64
}

// newTone creates a tone sweeping from one frequency to another over duration.
func newTone(rate beep.SampleRate, from, to float64, duration, attack, release time.Duration) *tone {
	return &tone{
		rate:    rate,
		from:    from,
		to:      to,
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		vol := 1.0
		if t.attack > 0 && t.pos < t.attack {
			vol = float64(t.pos) / float64(t.attack)
		}
		if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
			vol = math.Min(vol, float64(remaining)/float64(t.release))
		}

		val := vol * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateFlapSound is a short upward chirp.
func CreateFlapSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(newTone(rate, 320, 640, 90*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond), 0.25)
}

// CreateScoreSound is a two-note chime.
func CreateScoreSound(rate beep.SampleRate) beep.Streamer {
	first := newTone(rate, 880, 880, 70*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond)
	second := newTone(rate, 1320, 1320, 120*time.Millisecond, 5*time.Millisecond, 80*time.Millisecond)
	return newVolume(beep.Seq(first, second), 0.2)
}

// CreateCrashSound is a falling thud layered over a low hum.
func CreateCrashSound(rate beep.SampleRate) beep.Streamer {
	thud := newTone(rate, 220, 55, 400*time.Millisecond, 2*time.Millisecond, 250*time.Millisecond)
	parts := []beep.Streamer{newVolume(thud, 0.5)}

	if hum, err := generators.SineTone(rate, 70); err == nil {
		parts = append(parts, newVolume(beep.Take(rate.N(300*time.Millisecond), hum), 0.15))
	}
	return newVolume(beep.Take(rate.N(400*time.Millisecond), beep.Mix(parts...)), 0.6)
}
