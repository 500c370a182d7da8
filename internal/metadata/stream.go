package metadata

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	mp4 "github.com/abema/go-mp4"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"

	"github.com/handiism/audiodex/internal/model"
)

var errUnsupportedStream = errors.New("metadata: unsupported stream format")

// streamInfo carries the container-level fields of one audio stream.
// Nil fields could not be determined.
type streamInfo struct {
	duration   *float64 // seconds
	bitrate    *int     // bits per second
	sampleRate *int     // Hz
}

// probeStream decodes just enough of the file to determine duration,
// bitrate and sample rate. The probe used depends on the extension; an
// extension without a probe or a probe failure returns an error so the
// caller can decide whether the file counts as recognized.
func probeStream(path string, size int64) (*streamInfo, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return probeMP3(path)
	case ".flac":
		return probeFLAC(path, size)
	case ".wav":
		return probeWAV(path)
	case ".ogg":
		return probeOGG(path, size)
	case ".m4a":
		return probeM4A(path, size)
	default:
		return nil, errUnsupportedStream
	}
}

// probeMP3 walks every frame to sum the exact duration. Bitrate and
// sample rate come from the first frame header.
func probeMP3(path string) (*streamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		d       = mp3.NewDecoder(f)
		frame   mp3.Frame
		skipped int
		total   time.Duration
		frames  int
		info    streamInfo
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if frames == 0 {
				return nil, err
			}
			if err != io.EOF && !errors.Is(err, io.ErrUnexpectedEOF) {
				// Trailing garbage after valid frames; keep what we have.
				break
			}
			break
		}
		if frames == 0 {
			h := frame.Header()
			if br := int(h.BitRate()); br > 0 {
				info.bitrate = model.Int(br)
			}
			if sr := int(h.SampleRate()); sr > 0 {
				info.sampleRate = model.Int(sr)
			}
		}
		total += frame.Duration()
		frames++
	}
	if frames == 0 {
		return nil, errUnsupportedStream
	}
	info.duration = model.Float(total.Seconds())
	return &info, nil
}

// probeFLAC reads the StreamInfo metadata block.
func probeFLAC(path string, size int64) (*streamInfo, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, err
	}
	si := stream.Info
	if si == nil || si.SampleRate == 0 {
		return nil, errUnsupportedStream
	}

	info := streamInfo{sampleRate: model.Int(int(si.SampleRate))}
	if si.NSamples > 0 {
		dur := float64(si.NSamples) / float64(si.SampleRate)
		info.duration = model.Float(dur)
		info.bitrate = bitrateFromSize(size, dur)
	}
	return &info, nil
}

// probeWAV reads the RIFF header.
func probeWAV(path string) (*streamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() || d.SampleRate == 0 {
		return nil, errUnsupportedStream
	}

	info := streamInfo{sampleRate: model.Int(int(d.SampleRate))}
	if d.AvgBytesPerSec > 0 {
		info.bitrate = model.Int(int(d.AvgBytesPerSec) * 8)
	}
	if dur, err := d.Duration(); err == nil && dur > 0 {
		info.duration = model.Float(dur.Seconds())
	}
	return &info, nil
}

// probeOGG reads the Vorbis identification header and the final granule
// position for the sample count.
func probeOGG(path string, size int64) (*streamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, err
	}
	if r.SampleRate() == 0 {
		return nil, errUnsupportedStream
	}

	info := streamInfo{sampleRate: model.Int(r.SampleRate())}
	if r.Length() > 0 {
		dur := float64(r.Length()) / float64(r.SampleRate())
		info.duration = model.Float(dur)
		info.bitrate = bitrateFromSize(size, dur)
	}
	return &info, nil
}

// probeM4A probes the MP4 container for the mvhd timescale and duration.
func probeM4A(path string, size int64) (*streamInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	probe, err := mp4.Probe(f)
	if err != nil {
		return nil, err
	}
	if probe.Timescale == 0 {
		return nil, errUnsupportedStream
	}

	var info streamInfo
	if probe.Duration > 0 {
		dur := float64(probe.Duration) / float64(probe.Timescale)
		info.duration = model.Float(dur)
		info.bitrate = bitrateFromSize(size, dur)
	}
	return &info, nil
}

// bitrateFromSize derives an average bitrate from the file size when the
// container does not carry one.
func bitrateFromSize(size int64, durationSec float64) *int {
	if size <= 0 || durationSec <= 0 {
		return nil
	}
	return model.Int(int(float64(size*8) / durationSec))
}
