// Package middleware provides HTTP middleware for the ingestion service:
// structured access logging, Prometheus request metrics and gzip
// compression of JSON responses.
package middleware
