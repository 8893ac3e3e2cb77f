/*
Package filesystem provides resilient filesystem operations with automatic retry logic
for NFS stale file handle errors, plus the copy and sizing helpers used by the
ingestion pipeline.

# Retry Behavior

StatWithRetry and OpenWithRetry wrap os.Stat and os.Open. Only ESTALE
(stale file handle, errno 116 on Linux) triggers a retry; every other error
is returned immediately. Defaults:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

# Volume Labels

Metrics are labeled with the volume a path lives on ("source", "persistent",
"scratch"), resolved by longest-prefix match through a [VolumeResolver]
registered at startup with [SetDefaultVolumeResolver].

# Copying

[CopyFile] never overwrites: callers that want replace semantics remove the
destination first. Partial destinations are removed on failure.
*/
package filesystem
