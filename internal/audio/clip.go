package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Clip is decoded audio as interleaved signed 16-bit little-endian PCM.
type Clip struct {
	Samples    []byte
	SampleRate uint32
	Channels   uint32
}

func (c *Clip) frameSize() int {
	return int(c.Channels) * 2
}

func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.frameSize()
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// LoadClip decodes a WAV or MP3 file, picked by extension.
func LoadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound %s: %w", path, err)
	}
	defer f.Close()

	var clip *Clip
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		clip, err = DecodeWAV(f)
	case ".mp3":
		clip, err = DecodeMP3(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound %s: %w", path, err)
	}
	if len(clip.Samples) == 0 {
		return nil, fmt.Errorf("sound %s contains no samples", path)
	}
	return clip, nil
}

func DecodeWAV(r io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, errors.New("WAV file has no format information")
	}

	depth := int(d.BitDepth)
	out := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(toInt16(v, depth)))
	}

	return &Clip{
		Samples:    out,
		SampleRate: uint32(buf.Format.SampleRate),
		Channels:   uint32(buf.Format.NumChannels),
	}, nil
}

// toInt16 rescales a decoded sample to 16 bits. 8-bit WAV data is unsigned.
func toInt16(v, depth int) int16 {
	switch {
	case depth == 8:
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	default:
		return int16(v)
	}
}

// DecodeMP3 always yields stereo; go-mp3 upmixes mono streams.
func DecodeMP3(r io.Reader) (*Clip, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, d); err != nil {
		return nil, err
	}

	return &Clip{
		Samples:    out.Bytes(),
		SampleRate: uint32(d.SampleRate()),
		Channels:   2,
	}, nil
}
