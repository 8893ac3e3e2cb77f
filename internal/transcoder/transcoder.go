package transcoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/nishit12/Importlargefile/internal/logging"
)

// stderrTailBytes bounds how much ffmpeg diagnostic output is kept per job.
const stderrTailBytes = 4096

// FFmpeg encodes jobs with the ffmpeg binary and probes files with ffprobe.
type FFmpeg struct {
	bin      string
	probeBin string

	processes map[string]*exec.Cmd
	processMu sync.Mutex
}

// VideoInfo contains information about a video file.
type VideoInfo struct {
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Codec      string  `json:"codec"`
	FormatName string  `json:"formatName"`
}

// NewFFmpeg returns an encoder that runs bin and probeBin. Empty values fall
// back to "ffmpeg" and "ffprobe" on PATH.
func NewFFmpeg(bin, probeBin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	if probeBin == "" {
		probeBin = "ffprobe"
	}
	return &FFmpeg{
		bin:       bin,
		probeBin:  probeBin,
		processes: make(map[string]*exec.Cmd),
	}
}

// Encode runs ffmpeg for job and returns once it has exited. A non-zero exit
// is reported with the tail of ffmpeg's stderr.
func (f *FFmpeg) Encode(ctx context.Context, job Job) error {
	args := buildArgs(job)
	cmd := exec.CommandContext(ctx, f.bin, args...)

	stderr := &tailBuffer{limit: stderrTailBytes}
	cmd.Stderr = stderr

	logging.Debug("FFmpeg command: %s %s", f.bin, strings.Join(args, " "))

	f.processMu.Lock()
	f.processes[job.OutputPath] = cmd
	f.processMu.Unlock()

	defer func() {
		f.processMu.Lock()
		delete(f.processes, job.OutputPath)
		f.processMu.Unlock()
	}()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
		}
		reason := lastLine(stderr.String())
		logging.Error("FFmpeg stderr: %s", stderr.String())
		if reason == "" {
			return fmt.Errorf("ffmpeg failed: %w", err)
		}
		return fmt.Errorf("ffmpeg failed: %s: %w", reason, err)
	}

	return nil
}

// scaleFilter fits the video inside the target box without upscaling. The
// box is turned to match the input orientation, so a 1280x720 target keeps
// portrait clips at up to 720x1280.
func scaleFilter(width, height int) string {
	long, short := max(width, height), min(width, height)
	return fmt.Sprintf(
		"scale='if(gte(iw,ih),min(%d,iw),min(%d,iw))':'if(gte(iw,ih),min(%d,ih),min(%d,ih))'"+
			":force_original_aspect_ratio=decrease:force_divisible_by=2",
		long, short, short, long)
}

func buildArgs(job Job) []string {
	p := job.Preset
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", job.InputPath,
		"-map", "0:v:0",
		"-map", "0:a:0?",
	}

	if job.TargetWidth > 0 && job.TargetHeight > 0 {
		args = append(args, "-vf", scaleFilter(job.TargetWidth, job.TargetHeight))
	}

	args = append(args, "-c:v", p.VideoCodec)
	switch p.VideoCodec {
	case "libvpx-vp9":
		args = append(args,
			"-crf", strconv.Itoa(p.CRF),
			"-b:v", "0",
			"-deadline", "good",
			"-cpu-used", p.Speed,
		)
	default:
		args = append(args,
			"-preset", p.Speed,
			"-crf", strconv.Itoa(p.CRF),
			"-pix_fmt", "yuv420p",
		)
	}
	if p.MaxRate != "" {
		args = append(args, "-maxrate", p.MaxRate, "-bufsize", p.BufSize)
	}

	args = append(args, "-c:a", p.AudioCodec, "-b:a", p.AudioBitrate)

	if p.Container == "mp4" || p.Container == "mov" {
		args = append(args, "-movflags", "+faststart")
	}

	return append(args, "-f", p.Container, job.OutputPath)
}

// Probe retrieves codec and dimension information about the first video
// stream of a file.
func (f *FFmpeg) Probe(ctx context.Context, filePath string) (*VideoInfo, error) {
	cmd := exec.CommandContext(ctx, f.probeBin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}

	return parseProbe(stdout.Bytes())
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

func parseProbe(data []byte) (*VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &VideoInfo{FormatName: out.Format.FormatName}
	info.Duration, _ = strconv.ParseFloat(out.Format.Duration, 64)

	for _, s := range out.Streams {
		if s.CodecType == "video" {
			info.Codec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height
			return info, nil
		}
	}
	return nil, fmt.Errorf("no video stream found")
}

// Running returns the number of ffmpeg processes currently tracked.
func (f *FFmpeg) Running() int {
	f.processMu.Lock()
	defer f.processMu.Unlock()
	return len(f.processes)
}

// Cleanup stops all active transcoding processes.
func (f *FFmpeg) Cleanup() {
	f.processMu.Lock()
	defer f.processMu.Unlock()

	for output, cmd := range f.processes {
		if cmd.Process != nil {
			logging.Info("Killing transcoding process for: %s", output)
			if err := cmd.Process.Kill(); err != nil {
				logging.Warn("failed to kill transcoding process for %s: %v", output, err)
			}
		}
	}
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
