// Package sim ties bodies, camera and focus into one frame-driven state.
//
// A front-end owns a [State] and calls [State.Tick] once per frame with the
// resolved input. Tick resolves the focus, updates the camera, integrates
// the bodies when running and returns a [Snapshot] for drawing. Body removals
// requested through [State.RemoveBody] are queued and applied at the end of
// the next tick, after everything in that tick has read the collection.
//
// # Headless Runs
//
//	r := sim.NewRunner(bodies, log)
//	r.AddMetric(metrics.NewEnergyDrift())
//	res, err := r.Run(ctx, sim.RunConfig{Dt: 0.01, Steps: 10000})
//
// [Ensemble] runs several such jobs concurrently, one State per job.
//
// # Thread Safety
//
// State is NOT thread-safe. It is meant to be owned by a single loop.
package sim
