package engine

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func samples(vals ...int16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

func decode(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

func TestMixerSumsAndClamps(t *testing.T) {
	m := NewAudioMixer()
	a := &SoundResource{Data: samples(100, 30000, -30000, 5)}
	b := &SoundResource{Data: samples(1, 10000, -10000)}
	assert.True(t, m.Play(a))
	assert.True(t, m.Play(b))

	out := make([]byte, 12)
	m.mix(out)
	assert.Equal(t, []int16{101, 32767, -32768, 5, 0, 0}, decode(out))

	// Both sounds are finished and their voices freed.
	for _, v := range m.voices {
		assert.Nil(t, v.sound)
	}
}

func TestMixerContinuesAcrossChunks(t *testing.T) {
	m := NewAudioMixer()
	m.Play(&SoundResource{Data: samples(1, 2, 3, 4)})

	out := make([]byte, 4)
	m.mix(out)
	assert.Equal(t, []int16{1, 2}, decode(out))

	clear(out)
	m.mix(out)
	assert.Equal(t, []int16{3, 4}, decode(out))
	assert.Nil(t, m.voices[0].sound)
}

func TestMixerVoiceLimit(t *testing.T) {
	m := NewAudioMixer()
	snd := &SoundResource{Data: samples(1, 1)}
	for i := 0; i < MaxVoices; i++ {
		assert.True(t, m.Play(snd))
	}
	assert.False(t, m.Play(snd))

	var nilMixer *AudioMixer
	assert.False(t, nilMixer.Play(snd))
	assert.False(t, m.Play(nil))
}

func TestLowerLines(t *testing.T) {
	assert.Equal(t, "Q", lowerLines.Replace(LineTarget))
	assert.Equal(t, "WE", lowerLines.Replace(LinePrime+LineResponse))
	assert.Equal(t, "QWERTYUI", lowerLines.Replace("12345678"))
}

func TestNilTriggerBoxIgnoresWrites(t *testing.T) {
	var d *DLPIO8G
	assert.NoError(t, d.Set(LineTarget))
	assert.NoError(t, d.Unset(LineTarget))
	assert.NoError(t, d.Pulse(LinePrime))
	d.Close()
}
