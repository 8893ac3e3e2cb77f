package mediatypes

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mp4", "mp4"},
		{"MOV", "mov"},
		{".Mp4", "mp4"},
		{"  pdf ", "pdf"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		declared string
		want     bool
	}{
		{"mp4", true},
		{"MP4", true},
		{"mov", true},
		{"Mov", true},
		{"mkv", true},
		{"webm", true},
		{"jpg", false},
		{"webp", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			if got := IsVideo(tt.declared); got != tt.want {
				t.Errorf("IsVideo(%q) = %v, want %v", tt.declared, got, tt.want)
			}
		})
	}
}

func TestMuxer(t *testing.T) {
	tests := map[string]string{
		"mp4":  "mp4",
		"m4v":  "mp4",
		"mov":  "mov",
		"mkv":  "matroska",
		"webm": "webm",
		"pdf":  "",
	}

	for declared, want := range tests {
		if got := Muxer(declared); got != want {
			t.Errorf("Muxer(%q) = %q, want %q", declared, got, want)
		}
	}
}

func TestGetFileType(t *testing.T) {
	tests := []struct {
		declared string
		want     FileType
	}{
		{"mov", FileTypeVideo},
		{"JPG", FileTypeImage},
		{"webp", FileTypeImage},
		{"pdf", FileTypeOther},
	}

	for _, tt := range tests {
		if got := GetFileType(tt.declared); got != tt.want {
			t.Errorf("GetFileType(%q) = %v, want %v", tt.declared, got, tt.want)
		}
	}
}

func TestGetMimeType(t *testing.T) {
	if got := GetMimeType("MOV"); got != "video/quicktime" {
		t.Errorf("GetMimeType(MOV) = %q", got)
	}
	if got := GetMimeType("xyz"); got != "application/octet-stream" {
		t.Errorf("GetMimeType(xyz) = %q", got)
	}
}
