package mines

import "fmt"

// ConfigurationError is returned for game params no board can be built from.
// It is raised before any tile is allocated.
type ConfigurationError struct {
	Params  GameParams
	message string
}

// [ConfigurationError] implements [error]
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid game params %s: %s", e.Params.Seed(), e.message)
}
