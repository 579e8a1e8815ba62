package filterstore

import "github.com/example/taskboard/domain/view"

// GetFiltersRequest asks for an actor's saved filter configuration.
type GetFiltersRequest struct {
	ActorID string `json:"actor_id"`
}

// GetFiltersResponse carries the effective configuration. Defaulted is true
// when nothing was saved or the saved value could not be read.
type GetFiltersResponse struct {
	Config view.FilterConfig `json:"config"`
}

// SaveFiltersRequest persists an actor's filter configuration.
type SaveFiltersRequest struct {
	ActorID string            `json:"actor_id"`
	Config  view.FilterConfig `json:"config"`
}

// SaveFiltersResponse confirms a save.
type SaveFiltersResponse struct {
	Saved  bool              `json:"saved"`
	Config view.FilterConfig `json:"config"`
}

// ResetFiltersRequest drops an actor's saved configuration.
type ResetFiltersRequest struct {
	ActorID string `json:"actor_id"`
}

// ResetFiltersResponse carries the defaults the actor falls back to.
type ResetFiltersResponse struct {
	Config view.FilterConfig `json:"config"`
}
