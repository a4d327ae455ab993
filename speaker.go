package main

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	beeperSampleRate = 44100
	beeperFrequency  = 440
	beeperAmplitude  = 0x1800
)

// Beeper plays a square wave through oto while the tone is on. The Chip-8
// only says when to beep, not what it sounds like.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	on     atomic.Bool

	sampleRate int

	// position in the square wave, only touched by the oto goroutine
	phase int
}

// NewBeeper opens the default audio device.
func NewBeeper(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	b := &Beeper{ctx: ctx, sampleRate: sampleRate}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// Tone implements the host.Speaker interface.
func (b *Beeper) Tone(on bool) {
	b.on.Store(on)
}

// Read feeds the oto player with 16 bit mono samples.
func (b *Beeper) Read(p []byte) (int, error) {
	on := b.on.Load()
	halfPeriod := b.sampleRate / beeperFrequency / 2

	n := len(p) / 2
	for i := 0; i < n; i++ {
		var sample int16
		if on {
			sample = beeperAmplitude
			if (b.phase/halfPeriod)%2 != 0 {
				sample = -beeperAmplitude
			}
			b.phase++
		}
		binary.LittleEndian.PutUint16(p[2*i:], uint16(sample))
	}
	return n * 2, nil
}

// Close stops playback.
func (b *Beeper) Close() error {
	return b.player.Close()
}
