package app

// Run stages reported by the health endpoint.
const (
	StageIdle        = "idle"
	StageReadingMesh = "reading_mesh"
	StageSimulating  = "simulating"
	StageVisualizing = "visualizing"
	StageDone        = "done"
	StageFailed      = "failed"
)

// Status is a snapshot of the run progress.
type Status struct {
	Stage string `json:"stage"`
	JobID string `json:"job_id,omitempty"`
	RunID string `json:"run_id,omitempty"`
}

// Status returns the current run status.
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *App) setStage(stage string) {
	a.mu.Lock()
	a.status.Stage = stage
	a.mu.Unlock()
	a.logger.Debug("Stage changed.", "stage", stage)
}

func (a *App) setJob(j jobRef) {
	a.mu.Lock()
	a.status.JobID = j.id
	a.status.RunID = j.runID
	a.mu.Unlock()
}

type jobRef struct {
	id    string
	runID string
}
