package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/loopdeck/loopdeck/audio"
)

// fakeStream hands out a fixed int16 PCM stream the way gomp3.Decoder does:
// little-endian bytes, io.EOF together with the final chunk.
type fakeStream struct {
	rate int
	pcm  []int16
	pos  int
}

func (f *fakeStream) SampleRate() int { return f.rate }

func (f *fakeStream) Read(p []byte) (int, error) {
	if f.pos >= len(f.pcm) {
		return 0, io.EOF
	}
	n := len(p) / bytesPerSample
	if rem := len(f.pcm) - f.pos; n > rem {
		n = rem
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(f.pcm[f.pos+i]))
	}
	f.pos += n
	if f.pos == len(f.pcm) {
		return n * bytesPerSample, io.EOF
	}
	return n * bytesPerSample, nil
}

func newTestSource(rate int, pcm []int16) *source {
	return &source{
		stream: &fakeStream{rate: rate, pcm: pcm},
		rate:   rate,
		raw:    make([]byte, 64),
	}
}

func TestDecode_RejectsNonMP3(t *testing.T) {
	t.Parallel()

	for _, input := range [][]byte{
		nil,
		[]byte("a rendered loop, not an mp3 bitstream"),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(input)); err == nil {
			t.Errorf("Decode(%d bytes of junk) error = nil, want error", len(input))
		}
	}
}

func TestSource_Shape(t *testing.T) {
	t.Parallel()

	src := newTestSource(22050, make([]int16, 8))
	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestReadSamples_Scaling(t *testing.T) {
	t.Parallel()

	pcm := []int16{0, 1, -1, 32767, -32768, 16384, -16384, 8192}
	want := []float32{0, 1.0 / 32768, -1.0 / 32768, 32767.0 / 32768, -1, 0.5, -0.5, 0.25}

	src := newTestSource(44100, pcm)
	dst := make([]float32, len(pcm))
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(pcm) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(pcm))
	}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestReadSamples_ChunkedDrain(t *testing.T) {
	t.Parallel()

	pcm := make([]int16, 10)
	for i := range pcm {
		pcm[i] = int16(i)
	}
	src := newTestSource(44100, pcm)

	dst := make([]float32, 4)
	for _, wantN := range []int{4, 4} {
		n, err := src.ReadSamples(dst)
		if n != wantN || (err != nil && err != io.EOF) {
			t.Fatalf("ReadSamples() = %d, %v, want %d, nil", n, err, wantN)
		}
	}

	// Final partial chunk arrives with io.EOF; the stream stays drained.
	if n, err := src.ReadSamples(dst); n != 2 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v, want 2, io.EOF", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Fatalf("ReadSamples() after drain = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestReadSamples_GrowsRawBuffer(t *testing.T) {
	t.Parallel()

	src := newTestSource(44100, make([]int16, 512))
	before := cap(src.raw)

	dst := make([]float32, 512)
	if _, err := src.ReadSamples(dst); err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if cap(src.raw) <= before {
		t.Errorf("raw cap = %d after oversized read, want > %d", cap(src.raw), before)
	}
}

func TestReadSamples_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newTestSource(44100, make([]int16, 4))
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestDecodedStream_FeedsLoopPipeline(t *testing.T) {
	t.Parallel()

	// A half-rate stream must come out of the resample stage at twice the
	// frame count, still interleaved stereo.
	const frames = 500
	pcm := make([]int16, frames*2)
	for f := 0; f < frames; f++ {
		v := int16(math.Sin(2*math.Pi*float64(f)/100) * 16000)
		pcm[f*2] = v
		pcm[f*2+1] = v
	}

	out, err := audio.ResampleToStereo(newTestSource(22050, pcm), 44100, 256)
	if err != nil {
		t.Fatalf("ResampleToStereo() error = %v", err)
	}
	if len(out)%2 != 0 {
		t.Fatalf("output length %d is not interleaved stereo", len(out))
	}
	gotFrames := len(out) / 2
	if gotFrames < 2*frames-10 || gotFrames > 2*frames+10 {
		t.Errorf("resampled frames = %d, want about %d", gotFrames, 2*frames)
	}
}

func BenchmarkReadSamples(b *testing.B) {
	pcm := make([]int16, 44100)
	stream := &fakeStream{rate: 44100, pcm: pcm}
	src := &source{stream: stream, rate: 44100, raw: make([]byte, 8192)}
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		stream.pos = 0
		_, _ = src.ReadSamples(dst)
	}
}
