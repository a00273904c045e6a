package engine

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Zyko0/go-sdl3/sdl"
)

const (
	MaxVoices         = 4
	AudioScratchBytes = 4096
)

var outputSpec = sdl.AudioSpec{Format: sdl.AUDIO_S16, Channels: 2, Freq: 44100}

type SoundResource struct {
	Data []byte
	Spec sdl.AudioSpec
}

// LoadSound reads a WAV file and converts it to the mixer output format.
func LoadSound(path string) (*SoundResource, error) {
	spec := &sdl.AudioSpec{}
	data, err := sdl.LoadWAV(path, spec)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", path, err)
	}
	if spec.Format == outputSpec.Format && spec.Channels == outputSpec.Channels && spec.Freq == outputSpec.Freq {
		return &SoundResource{Data: data, Spec: *spec}, nil
	}
	target := outputSpec
	converted, err := sdl.ConvertAudioSamples(spec, data, &target)
	if err != nil {
		return nil, fmt.Errorf("convert sound %s: %w", path, err)
	}
	return &SoundResource{Data: converted, Spec: target}, nil
}

type voice struct {
	sound *SoundResource
	pos   int
}

// AudioMixer sums up to MaxVoices sounds into the SDL output stream. Play is
// called from the session thread, Callback from SDL's audio thread.
type AudioMixer struct {
	mu      sync.Mutex
	voices  [MaxVoices]voice
	scratch []byte
}

func NewAudioMixer() *AudioMixer {
	return &AudioMixer{scratch: make([]byte, AudioScratchBytes)}
}

// Open starts a playback stream on the default device fed by the mixer.
func (m *AudioMixer) Open() (*sdl.AudioStream, error) {
	spec := outputSpec
	cb := sdl.NewAudioStreamCallback(m.Callback)
	stream := sdl.AUDIO_DEVICE_DEFAULT_PLAYBACK.OpenAudioDeviceStream(&spec, cb)
	if stream == nil {
		return nil, fmt.Errorf("failed to open audio stream")
	}
	stream.ResumeDevice()
	return stream, nil
}

func (m *AudioMixer) Callback(stream *sdl.AudioStream, additionalAmount, totalAmount int32) {
	for remaining := int(additionalAmount); remaining > 0; {
		chunk := min(remaining, AudioScratchBytes) &^ 1
		if chunk == 0 {
			break
		}
		clear(m.scratch[:chunk])
		m.mix(m.scratch[:chunk])
		stream.PutData(m.scratch[:chunk])
		remaining -= chunk
	}
}

func (m *AudioMixer) mix(out []byte) {
	dst := unsafe.Slice((*int16)(unsafe.Pointer(&out[0])), len(out)/2)

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.voices {
		v := &m.voices[i]
		if v.sound == nil {
			continue
		}
		n := min(len(out), len(v.sound.Data)-v.pos) &^ 1
		if n > 0 {
			src := unsafe.Slice((*int16)(unsafe.Pointer(&v.sound.Data[v.pos])), n/2)
			for j, s := range src {
				dst[j] = clampS16(int32(dst[j]) + int32(s))
			}
			v.pos += n
		}
		if n <= 0 || v.pos >= len(v.sound.Data)-1 {
			*v = voice{}
		}
	}
}

func clampS16(v int32) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	}
	return int16(v)
}

// Play starts res on a free voice. It reports false when every voice is busy.
func (m *AudioMixer) Play(res *SoundResource) bool {
	if m == nil || res == nil || len(res.Data) < 2 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.voices {
		if m.voices[i].sound == nil {
			m.voices[i] = voice{sound: res}
			return true
		}
	}
	return false
}
