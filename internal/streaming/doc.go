/*
Package streaming writes large in-memory bodies to slow HTTP clients without
letting a stalled connection hold the handler forever.

WriteChunked splits the body into ChunkSize writes. Before each write it
moves the connection write deadline forward by WriteTimeout through
[http.ResponseController], and it flushes after each one. A client that stops
reading therefore fails the next write with [ErrWriteTimeout] instead of
blocking, and a cancelled request context ends the loop with
[ErrClientGone].

	w.Header().Set("Content-Type", "application/octet-stream")
	n, err := streaming.WriteChunked(r.Context(), w, data, streaming.DefaultConfig())
	if err != nil {
		logging.Debug("result stream ended after %d bytes: %v", n, err)
	}

Writers that cannot set deadlines (httptest.ResponseRecorder, wrappers
without an Unwrap method) are written to without one.
*/
package streaming
