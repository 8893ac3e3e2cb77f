// Package main provides ingestctl, a command-line client for the ingestion
// service.
//
// Usage:
//
//	ingestctl process -type mp4 -name clip -o clip.mp4 /videos/raw.mov
//	ingestctl fetch -o clip.mp4 clip_1792146900.mp4
//	ingestctl reclaim
//
// The service address is read from INGEST_URL (default
// http://localhost:8080). Result bytes go to stdout unless -o is given;
// when stdout is a terminal, -o is required.
package main
