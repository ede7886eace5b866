package metrics

import "testing"

// TestObservationsBeforeInitAreNoOps ensures the helpers tolerate an
// uninitialized registry; the scheduler runs without metrics by default.
func TestObservationsBeforeInitAreNoOps(t *testing.T) {
	ObserveRequest("Start_Alarm", ResultCreated)
	ObserveExpiration()
	ObserveRender(RenderInitial)
	SetRegistryDepth(3)
	WorkerStarted()
	WorkerStopped()
}

// TestInitIsIdempotent ensures repeated Init calls do not re-register.
func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	ObserveRequest("Change_Alarm", ResultUpdated)
	ObserveRender(RenderUpdated)
	SetRegistryDepth(0)
	WorkerStarted()
	WorkerStopped()
}
