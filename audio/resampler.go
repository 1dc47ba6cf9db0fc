// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/loopdeck/loopdeck/utils"
)

// Resampler converts a Source to another sample rate by cubic interpolation
// over a four-frame window. Channel count passes through untouched. When
// downsampling, a one-pole low-pass runs first to knock down aliasing.
type Resampler struct {
	src      Source
	outRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] and window[2] bracket the interpolation point; 0 and 3
	// feed the cubic's outer taps.
	window [4][]float32
	filled [4]bool
	frac   float64 // position between window[1] and window[2], in [0,1)
	primed bool
	eof    bool

	scratch []float32

	lp      []float32 // low-pass state per channel
	lpAlpha float32   // 0 disables the filter
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		outRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		scratch:  make([]float32, channels),
		lp:       make([]float32, channels),
	}
	if r.step > 1 {
		// Crude next to a real FIR, but enough for loop material.
		r.lpAlpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.outRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// prime fills the window with the first source frames. Short sources pad
// the window by repeating the last frame read. The first frame also seeds
// the low-pass state so the filter starts without a transient.
func (r *Resampler) prime() error {
	for i := 0; i < 4; i++ {
		n, err := r.src.ReadSamples(r.scratch[:r.channels])
		if n > 0 {
			copy(r.window[i], r.scratch[:n])
			r.filled[i] = true
			if i == 0 && r.lpAlpha > 0 {
				copy(r.lp, r.scratch[:n])
			}
		}
		if err == io.EOF {
			r.eof = true
			last := i
			if n == 0 {
				last--
			}
			if last < 0 {
				return io.EOF
			}
			for j := last + 1; j < 4; j++ {
				copy(r.window[j], r.window[last])
				r.filled[j] = true
			}
			break
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	r.primed = true
	return nil
}

// advance shifts the window one source frame to the left and reads the next
// frame into the freed slot.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	r.window[0], r.window[1], r.window[2], r.window[3] =
		r.window[1], r.window[2], r.window[3], r.window[0]
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]

	n, err := r.src.ReadSamples(r.scratch[:r.channels])
	if n > 0 {
		w := r.window[3]
		copy(w, r.scratch[:n])
		r.filled[3] = true
		if r.lpAlpha > 0 {
			for c := 0; c < r.channels; c++ {
				w[c] = r.lpAlpha*w[c] + (1-r.lpAlpha)*r.lp[c]
				r.lp[c] = w[c]
			}
		}
	} else {
		r.filled[3] = false
	}

	if err == io.EOF {
		r.eof = true
		if !r.filled[3] {
			return io.EOF
		}
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// interpolate writes one output frame at the current window position,
// duplicating edge frames when the outer taps are missing.
func (r *Resampler) interpolate(out []float32) {
	a := float32(r.frac)
	for c := 0; c < r.channels; c++ {
		y0 := r.window[1][c]
		if r.filled[0] {
			y0 = r.window[0][c]
		}
		y3 := r.window[2][c]
		if r.filled[3] {
			y3 = r.window[3][c]
		}
		out[c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, a)
	}
}

// ReadSamples produces interleaved samples at the destination rate. The dst
// length must be a frame multiple.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}
		if !r.filled[1] || !r.filled[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		r.interpolate(dst[written*r.channels:])
		written++
		r.frac += r.step
	}
	return written * r.channels, nil
}
