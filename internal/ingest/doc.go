// Package ingest implements the media ingestion pipeline.
//
// A run takes a [FileRequest] and moves it through fixed stages:
//
//	ResolvePath -> Relocator.Relocate -> ChunkedReader.Read -> gate -> Assemble
//
// [ResolvePath] strips a "file://" prefix, percent-decodes the remainder and
// checks that a regular file exists. [Relocator] copies it into the
// persistent directory under its base name, replacing any earlier copy.
// [ChunkedReader] loads the copy into memory in fixed-size reads. The gate
// sends declared video types to a [Transcoder] and passes everything else
// through byte for byte. [Assemble] names the result
// {prefix}_{unix seconds}.{type}.
//
// Every run that passes validation ends by calling Reclaimer.Trigger,
// whether it succeeded or not. Errors are classified by the sentinel kinds in
// errors.go; [RejectMessage] renders the single string returned to callers.
package ingest
