// Package reclaim releases memory and scratch disk space held by the service.
//
// A [Reclaimer] runs its actions in order on every pass. The service wires
// three:
//
//	evict_responses  drop cached results (EvictAction)
//	sweep_scratch    delete scratch entries not owned by a running job (SweepAction)
//	free_os_memory   debug.FreeOSMemory (FreeOSMemoryAction)
//
// A pass is started after every pipeline run and on every memory-pressure
// notification. Each action receives the reason: after an ordinary run
// ([ReasonRunComplete]) eviction only drops expired results, any other
// reason empties the cache. Failures are logged and counted in
// ingest_reclaim_action_errors_total; they are never returned to callers.
package reclaim
