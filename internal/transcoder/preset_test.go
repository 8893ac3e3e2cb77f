package transcoder

import (
	"testing"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input   string
		want    Quality
		wantErr bool
	}{
		{"", QualityLow, false},
		{"low", QualityLow, false},
		{"MEDIUM", QualityMedium, false},
		{" high ", QualityHigh, false},
		{"ultra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuality(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuality(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPresetFor(t *testing.T) {
	tests := []struct {
		declared      string
		quality       Quality
		wantContainer string
		wantExt       string
		wantVideo     string
		wantAudio     string
		wantCRF       int
	}{
		{"mp4", QualityLow, "mp4", "mp4", "libx264", "aac", 28},
		{"MOV", QualityMedium, "mov", "mov", "libx264", "aac", 23},
		{".m4v", QualityHigh, "mp4", "m4v", "libx264", "aac", 20},
		{"3gp", QualityLow, "mp4", "3gp", "libx264", "aac", 28},
		{"mkv", QualityLow, "matroska", "mkv", "libx264", "aac", 28},
		{"webm", QualityLow, "webm", "webm", "libvpx-vp9", "libopus", 40},
		{"webm", QualityHigh, "webm", "webm", "libvpx-vp9", "libopus", 28},
	}

	for _, tt := range tests {
		t.Run(tt.declared+"/"+string(tt.quality), func(t *testing.T) {
			p, err := PresetFor(tt.declared, tt.quality)
			if err != nil {
				t.Fatalf("PresetFor failed: %v", err)
			}
			if p.Container != tt.wantContainer {
				t.Errorf("Container = %s, want %s", p.Container, tt.wantContainer)
			}
			if p.Extension != tt.wantExt {
				t.Errorf("Extension = %s, want %s", p.Extension, tt.wantExt)
			}
			if p.VideoCodec != tt.wantVideo {
				t.Errorf("VideoCodec = %s, want %s", p.VideoCodec, tt.wantVideo)
			}
			if p.AudioCodec != tt.wantAudio {
				t.Errorf("AudioCodec = %s, want %s", p.AudioCodec, tt.wantAudio)
			}
			if p.CRF != tt.wantCRF {
				t.Errorf("CRF = %d, want %d", p.CRF, tt.wantCRF)
			}
			if p.MaxRate == "" || p.AudioBitrate == "" {
				t.Error("Expected bitrate caps to be set")
			}
		})
	}
}

func TestPresetForRejects(t *testing.T) {
	if _, err := PresetFor("jpg", QualityLow); err == nil {
		t.Error("Expected error for image type")
	}
	if _, err := PresetFor("mp4", Quality("ultra")); err == nil {
		t.Error("Expected error for unknown quality")
	}
}
