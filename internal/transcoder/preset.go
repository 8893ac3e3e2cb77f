package transcoder

import (
	"fmt"
	"strings"

	"github.com/nishit12/Importlargefile/internal/mediatypes"
)

// Quality selects one of the fixed encoding presets.
type Quality string

// Supported qualities.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Preset is the complete set of encoder settings for one job.
type Preset struct {
	Quality      Quality
	Container    string // ffmpeg muxer name
	Extension    string // output file extension
	VideoCodec   string
	AudioCodec   string
	CRF          int
	Speed        string // x264 preset or VP9 cpu-used
	MaxRate      string
	BufSize      string
	AudioBitrate string
}

type qualitySettings struct {
	x264CRF   int
	x264Speed string
	vp9CRF    int
	vp9Speed  string
	maxRate   string
	bufSize   string
	audio     string
}

var qualities = map[Quality]qualitySettings{
	QualityLow:    {x264CRF: 28, x264Speed: "veryfast", vp9CRF: 40, vp9Speed: "4", maxRate: "1500k", bufSize: "3000k", audio: "96k"},
	QualityMedium: {x264CRF: 23, x264Speed: "fast", vp9CRF: 33, vp9Speed: "2", maxRate: "3000k", bufSize: "6000k", audio: "128k"},
	QualityHigh:   {x264CRF: 20, x264Speed: "medium", vp9CRF: 28, vp9Speed: "1", maxRate: "6000k", bufSize: "12000k", audio: "192k"},
}

// ParseQuality parses a quality name. The empty string selects QualityLow.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if q == "" {
		return QualityLow, nil
	}
	if _, ok := qualities[q]; !ok {
		return "", fmt.Errorf("unknown quality %q (want low, medium or high)", s)
	}
	return q, nil
}

// PresetFor returns the encoder settings for a declared video type.
func PresetFor(declaredType string, q Quality) (Preset, error) {
	ext := mediatypes.Normalize(declaredType)
	if !mediatypes.IsVideo(ext) {
		return Preset{}, fmt.Errorf("%q is not a video type", declaredType)
	}

	muxer := mediatypes.Muxer(ext)
	s, ok := qualities[q]
	if !ok {
		return Preset{}, fmt.Errorf("unknown quality %q", q)
	}

	p := Preset{
		Quality:      q,
		Container:    muxer,
		Extension:    ext,
		MaxRate:      s.maxRate,
		BufSize:      s.bufSize,
		AudioBitrate: s.audio,
	}

	if muxer == "webm" {
		p.VideoCodec = "libvpx-vp9"
		p.AudioCodec = "libopus"
		p.CRF = s.vp9CRF
		p.Speed = s.vp9Speed
		return p, nil
	}

	p.VideoCodec = "libx264"
	p.AudioCodec = "aac"
	p.CRF = s.x264CRF
	p.Speed = s.x264Speed
	return p, nil
}
