// Package mediatypes classifies the caller-declared file type of an ingestion
// request. Declared types are bare extensions ("mp4", "jpg"); they are
// compared case-insensitively after [Normalize].
package mediatypes
