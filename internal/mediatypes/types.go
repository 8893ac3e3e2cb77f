package mediatypes

import "strings"

// FileType is the coarse category of a declared type.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file that is routed through the transcoder.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents anything else; bytes pass through unchanged.
	FileTypeOther FileType = "other"
)

// VideoContainers lists the declared types that are transcoded, mapped to
// the ffmpeg muxer that produces the same container.
var VideoContainers = map[string]string{
	"mp4":  "mp4",
	"m4v":  "mp4",
	"mov":  "mov",
	"3gp":  "mp4",
	"mkv":  "matroska",
	"webm": "webm",
}

// ImageTypes lists declared types recognised as images. Images are never
// transcoded; the set only feeds FileType and MIME lookups.
var ImageTypes = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
	"heic": true,
	"heif": true,
	"tif":  true,
	"tiff": true,
}

// MimeTypes maps declared types to their MIME types.
var MimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"heic": "image/heic",
	"heif": "image/heif",
	"tif":  "image/tiff",
	"tiff": "image/tiff",

	"mp4":  "video/mp4",
	"m4v":  "video/x-m4v",
	"mov":  "video/quicktime",
	"3gp":  "video/3gpp",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",

	"pdf": "application/pdf",
	"txt": "text/plain",
}

// Normalize lowercases a declared type and strips surrounding whitespace and
// a leading dot, so ".MOV" and "mov" compare equal.
func Normalize(declared string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(declared)), ".")
}

// IsVideo reports whether the declared type is a known video container.
// The comparison is case-insensitive.
func IsVideo(declared string) bool {
	_, ok := VideoContainers[Normalize(declared)]
	return ok
}

// Muxer returns the ffmpeg output format for a video type, or "" if the type
// is not a video container.
func Muxer(declared string) string {
	return VideoContainers[Normalize(declared)]
}

// GetFileType returns the FileType for a declared type.
func GetFileType(declared string) FileType {
	t := Normalize(declared)
	if _, ok := VideoContainers[t]; ok {
		return FileTypeVideo
	}
	if ImageTypes[t] {
		return FileTypeImage
	}
	return FileTypeOther
}

// GetMimeType returns the MIME type for a declared type.
// Returns "application/octet-stream" if the type is not recognized.
func GetMimeType(declared string) string {
	if mime, ok := MimeTypes[Normalize(declared)]; ok {
		return mime
	}
	return "application/octet-stream"
}
