package voxel

import "fmt"

// Resolution limits. Below MinResolution the grid is too coarse to say
// anything useful; above MaxResolution the dense grid grows past 8M cells.
const (
	MinResolution = 10
	MaxResolution = 200
)

// ResolutionError reports a resolution outside [MinResolution, MaxResolution].
// It is returned before any computation starts.
type ResolutionError struct {
	Resolution int
}

func (e *ResolutionError) Error() string {
	if e.Resolution < MinResolution {
		return fmt.Sprintf("resolution %d below minimum %d", e.Resolution, MinResolution)
	}
	return fmt.Sprintf("resolution %d above maximum %d", e.Resolution, MaxResolution)
}

// CanceledError reports a voxelization abandoned because its context was
// canceled or timed out. No partial grid is exposed.
type CanceledError struct {
	Resolution int
	Cause      error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("voxelization at resolution %d abandoned: %v", e.Resolution, e.Cause)
}

func (e *CanceledError) Unwrap() error { return e.Cause }
