package audio

import "fmt"

// StereoMixer converts any channel layout to interleaved stereo, which is
// the only layout the loop engine consumes. Mono input is duplicated into
// both channels; stereo passes through; wider layouts are averaged down,
// the first half of the channels into the left and the rest into the right.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with interleaved stereo samples. dst length must be
// a multiple of 2; the return value counts float32 values written.
func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	channels := m.src.Channels()
	if channels == 2 {
		// Pass-through: source is already stereo
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	samplesNeeded := frames * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		newCap := samplesNeeded
		if newCap < 8192 {
			newCap = 8192
		}
		m.tmp = make([]float32, newCap)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp[:samplesNeeded])
	if n == 0 {
		return 0, err
	}
	framesRead := n / channels

	switch channels {
	case 1: // Mono: duplicate into both channels
		for f := 0; f < framesRead; f++ {
			v := m.tmp[f]
			dst[f*2] = v
			dst[f*2+1] = v
		}
	default: // Wider layouts: average halves into L and R
		left := channels / 2
		right := channels - left
		invL := float32(1.0) / float32(left)
		invR := float32(1.0) / float32(right)
		for f := 0; f < framesRead; f++ {
			base := f * channels
			var sumL, sumR float32
			for c := 0; c < left; c++ {
				sumL += m.tmp[base+c]
			}
			for c := left; c < channels; c++ {
				sumR += m.tmp[base+c]
			}
			dst[f*2] = sumL * invL
			dst[f*2+1] = sumR * invR
		}
	}

	return framesRead * 2, err
}
