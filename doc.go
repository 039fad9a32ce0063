// Package schedsim simulates a single-processor scheduler.
//
// Processes are scheduled round-robin with a two tick quantum, priority aging
// and preemption, and compete for one exclusive resource. Every run is
// deterministic and produces a trace of per tick snapshots and events:
//
//	srv := schedsim.New(schedsim.WithFast())
//	aTrace, err := srv.RunURL(ctx, "mock_pcb.json")
//
// The root package is a façade over runtime/scheduler, which holds the
// engine, and the service/ packages that load, render and archive runs.
package schedsim
