/*
Package workers sizes and enforces concurrency limits in containerized
environments.

Go 1.19+ sets GOMAXPROCS from the container CPU limit, while runtime.NumCPU
still reports the host's CPUs. [Count] and its helpers derive worker counts
from GOMAXPROCS:

	workers.ForCPU(8)   // 1 per CPU, at most 8
	workers.ForIO(16)   // 2 per CPU, at most 16
	workers.ForMixed(8) // 1.5 per CPU, at most 8

[Runs] picks the number of concurrent pipeline runs: MAX_CONCURRENT_RUNS when
set, otherwise ForMixed(8). Each run can hold a whole file in memory and drive
an ffmpeg process, so the automatic value stays small.

[Limiter] is the semaphore the HTTP bridge uses to enforce that number.
Callers beyond the limit wait in Acquire until a slot frees up or their
context ends.
*/
package workers
