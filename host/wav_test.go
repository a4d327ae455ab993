package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestWavRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	rec, err := NewWavRecorder(path, 60)
	assert.NoError(t, err)

	rec.Tone(true)
	rec.Tone(true)
	rec.Tone(false)
	assert.NoError(t, rec.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	assert.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)

	perTick := wavSampleRate / 60
	assert.Equal(t, 3*perTick, len(buf.Data))
	assert.Equal(t, toneAmplitude, buf.Data[0])
	assert.Equal(t, -toneAmplitude, buf.Data[wavSampleRate/toneFrequency/2])
	for _, s := range buf.Data[2*perTick:] {
		assert.Equal(t, 0, s)
	}
}

func TestSpeakersFanOut(t *testing.T) {
	a, b := &fakeSpeaker{}, &fakeSpeaker{}
	Speakers{a, b}.Tone(true)
	Speakers{a, b}.Tone(false)
	assert.Equal(t, 2, len(a.tones))
	assert.Equal(t, 2, len(b.tones))
	assert.True(t, b.tones[0])
}
