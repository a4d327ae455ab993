package host

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavSampleRate = 44100
	wavBitDepth   = 16
	// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
	wavFormatPCM = 1

	toneFrequency = 440
	toneAmplitude = 0x2000
)

// WavRecorder is a Speaker that writes the tone signal to a mono 16 bit WAV
// file, one tick's worth of square wave or silence per call to Tone.
type WavRecorder struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer

	samplesPerTick int
	// position in the square wave, in samples
	phase int
	err   error
}

// NewWavRecorder creates the file at path. tickHz is the rate at which Tone
// will be called.
func NewWavRecorder(path string, tickHz int) (*WavRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav file '%s': %w", path, err)
	}

	samplesPerTick := wavSampleRate / tickHz
	return &WavRecorder{
		f:   f,
		enc: wav.NewEncoder(f, wavSampleRate, wavBitDepth, 1, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: wavSampleRate},
			Data:           make([]int, samplesPerTick),
			SourceBitDepth: wavBitDepth,
		},
		samplesPerTick: samplesPerTick,
	}, nil
}

// Tone implements the Speaker interface. The first write error is kept and
// returned by Close.
func (w *WavRecorder) Tone(on bool) {
	if w.err != nil {
		return
	}

	halfPeriod := wavSampleRate / toneFrequency / 2
	for i := range w.buf.Data {
		switch {
		case !on:
			w.buf.Data[i] = 0
		case (w.phase/halfPeriod)%2 == 0:
			w.buf.Data[i] = toneAmplitude
		default:
			w.buf.Data[i] = -toneAmplitude
		}
		w.phase++
	}
	if !on {
		w.phase = 0
	}

	if err := w.enc.Write(w.buf); err != nil {
		w.err = fmt.Errorf("writing wav samples: %w", err)
	}
}

// Close finishes the WAV header and closes the file.
func (w *WavRecorder) Close() error {
	if err := w.enc.Close(); err != nil && w.err == nil {
		w.err = fmt.Errorf("finishing wav file: %w", err)
	}
	if err := w.f.Close(); err != nil && w.err == nil {
		w.err = fmt.Errorf("closing wav file: %w", err)
	}
	return w.err
}
