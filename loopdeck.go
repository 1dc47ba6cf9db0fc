package loopdeck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/loopdeck/loopdeck/audio"
	"github.com/loopdeck/loopdeck/engine"
	"github.com/loopdeck/loopdeck/formats/aiff"
	"github.com/loopdeck/loopdeck/formats/mp3"
	"github.com/loopdeck/loopdeck/formats/vorbis"
	"github.com/loopdeck/loopdeck/formats/wav"
	"github.com/loopdeck/loopdeck/utils"
)

// NewRegistry returns a Registry with every built-in decoder registered,
// keyed by file extension (without the dot).
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

var defaultRegistry = NewRegistry()

// fileSource ties the lifetime of the opened file to the decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (fs *fileSource) Close() error {
	srcErr := fs.Source.Close()
	fileErr := fs.f.Close()
	if srcErr != nil {
		return srcErr
	}
	return fileErr
}

// DecodeFile opens path and decodes it using the decoder registered for
// its extension. Closing the returned source also closes the file.
func DecodeFile(path string) (audio.Source, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	dec, ok := defaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// PrepareLoop runs the full track load pipeline: resample src to
// engineRate, normalize to interleaved stereo, collect the PCM, and
// pre-render a seamless loop buffer of targetSeconds with the given
// crossfade. The heavy lifting happens on the calling goroutine; hand the
// result to a Slot afterwards.
func PrepareLoop(src audio.Source, engineRate, crossfadeMS int, targetSeconds float64) (*engine.RenderResult, error) {
	pcm, err := audio.ResampleToStereo(src, engineRate, 4096)
	if err != nil {
		return nil, fmt.Errorf("collecting samples: %w", err)
	}

	buf := &engine.Buffer{Data: pcm, SampleRate: engineRate}

	res, err := engine.NewRenderer().Render(buf, crossfadeMS, targetSeconds)
	if err != nil {
		return nil, fmt.Errorf("rendering loop: %w", err)
	}

	return res, nil
}

// ExportLoopWAV writes a rendered loop as a 16-bit stereo PCM WAV.
func ExportLoopWAV(w io.Writer, res *engine.RenderResult) error {
	data := res.Buffer.Data
	pcm := make([]int16, len(data))
	for i, s := range data {
		pcm[i] = utils.Float32ToInt16(s)
	}

	if err := wav.WriteWAV16Stereo(w, res.Buffer.SampleRate, pcm); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}

	return nil
}
