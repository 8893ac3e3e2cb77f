package ingest

import (
	"strconv"
	"time"
)

// Result is a finished run. Bytes is owned by the caller.
type Result struct {
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	Bytes    []byte `json:"byteArray"`
}

// Assemble packages data into a Result named {prefix}_{unix seconds}.{type}.
func Assemble(data []byte, declaredType, prefix string, now time.Time) Result {
	return Result{
		Size:     int64(len(data)),
		Type:     declaredType,
		FileName: FileName(prefix, declaredType, now),
		Bytes:    data,
	}
}

// FileName builds the output name for a result assembled at now.
func FileName(prefix, declaredType string, now time.Time) string {
	return prefix + "_" + strconv.FormatInt(now.Unix(), 10) + "." + declaredType
}
