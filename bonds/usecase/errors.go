package usecase

import "fmt"

// PresetNotFoundError represents error type for when a named duration
// preset is not present in the preset table.
type PresetNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e PresetNotFoundError) Error() string {
	return fmt.Sprintf("duration preset (%s) is not found", e.Name)
}
