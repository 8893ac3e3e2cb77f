package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nishit12/Importlargefile/internal/ingest"
	"github.com/nishit12/Importlargefile/internal/reclaim"
)

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		n    int
		want int64
	}{
		{0, 0},
		{4, 3},
		{8, 6},
		{5, 4},
		{1398104, 1048578},
	}

	for _, tt := range tests {
		if got := EstimateSize(tt.n); got != tt.want {
			t.Errorf("EstimateSize(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://host", "://nope", "localhost:8080"} {
		if _, err := New(raw, nil); err == nil {
			t.Errorf("New(%q) should fail", raw)
		}
	}
}

func TestProcess(t *testing.T) {
	payload := make([]byte, 1<<20+1)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	var gotReq ingest.FileRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/process" {
			http.Error(w, "unexpected route", http.StatusTeapot)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ingest.Result{
			Size:     int64(len(payload)),
			Type:     "png",
			FileName: "shot_1792146900.png",
			Bytes:    payload,
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Process(context.Background(), ingest.FileRequest{RawPath: "/tmp/a.png", DeclaredType: "png", NamePrefix: "shot"})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if gotReq.RawPath != "/tmp/a.png" || gotReq.NamePrefix != "shot" {
		t.Errorf("Server received %+v", gotReq)
	}
	if len(res.Bytes) != len(payload) || res.Bytes[12345] != payload[12345] {
		t.Errorf("Decoded %d bytes, want %d", len(res.Bytes), len(payload))
	}
	if res.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", res.Size, len(payload))
	}
	if res.EstimatedSize < res.Size || res.EstimatedSize-res.Size > 2 {
		t.Errorf("EstimatedSize %d should be within padding of %d", res.EstimatedSize, res.Size)
	}
}

func TestProcessRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Error processing media file: File does not exist at path: /missing.png",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Process(context.Background(), ingest.FileRequest{RawPath: "/missing.png", DeclaredType: "png", NamePrefix: "x"})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Expected ErrRejected, got %v", err)
	}

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("Expected *RejectedError, got %T", err)
	}
	if rejected.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", rejected.StatusCode)
	}
	if rejected.Message != "Error processing media file: File does not exist at path: /missing.png" {
		t.Errorf("Unexpected message %q", rejected.Message)
	}
}

func TestFetchResultAndReclaim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/results/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/results/clip 1.mp4" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("mp4-bytes"))
	})
	mux.HandleFunc("/api/reclaim", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(reclaim.Report{Reason: "manual", Failed: 0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	data, err := c.FetchResult(context.Background(), "clip 1.mp4")
	if err != nil {
		t.Fatalf("FetchResult failed: %v", err)
	}
	if string(data) != "mp4-bytes" {
		t.Errorf("FetchResult = %q", data)
	}

	if _, err := c.FetchResult(context.Background(), "gone.png"); !errors.Is(err, ErrRejected) {
		t.Errorf("Expected ErrRejected for missing result, got %v", err)
	}

	report, err := c.Reclaim(context.Background())
	if err != nil {
		t.Fatalf("Reclaim failed: %v", err)
	}
	if report.Reason != "manual" {
		t.Errorf("Reason = %q, want manual", report.Reason)
	}
}
