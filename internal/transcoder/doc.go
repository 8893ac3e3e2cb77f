// Package transcoder turns a video file into a bounded-resolution encoding.
//
// [Adapter] is the pipeline-facing side. It builds a [Job] for a declared
// type, gives it a fresh output path inside a per-job scratch directory
// (ScratchDir/run-<uuid>), runs the [Encoder] on a background goroutine and
// waits for its single completion signal. The output is read back and the
// run directory removed before Transcode returns. Any encoder failure, or an
// empty output file, is reported as [ErrTranscode].
//
// [FFmpeg] implements Encoder with the ffmpeg binary. Output is scaled to fit
// the target box without upscaling and encoded with one of three presets:
//
//	low     x264 CRF 28 veryfast, 1.5 Mbit/s cap, 96k audio (default)
//	medium  x264 CRF 23 fast,     3 Mbit/s cap,   128k audio
//	high    x264 CRF 20 medium,   6 Mbit/s cap,   192k audio
//
// WebM sources are encoded with VP9 and Opus instead.
//
// Running ffmpeg processes are tracked so [FFmpeg.Cleanup] can kill them on
// shutdown.
package transcoder
