// Package user provides the actor entity and role model.
package user

import (
	"time"
)

// Role controls the reach of an actor's permissions.
type Role string

const (
	// RoleAdmin can delete any task and read across all teams.
	RoleAdmin Role = "admin"
	// RoleManager can read tasks across all teams; edits still require a
	// creator or responsible relationship.
	RoleManager Role = "manager"
	// RoleMember is scoped to tasks in the actor's own teams.
	RoleMember Role = "member"
)

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	default:
		return false
	}
}

// CanReadAllTeams reports whether the role bypasses team scoping for reads.
func (r Role) CanReadAllTeams() bool {
	return r == RoleAdmin || r == RoleManager
}

// Actor represents an authenticated entity attempting an action.
// Actors are supplied by the auth module; the core never mutates them.
type Actor struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:200" json:"email"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	PasswordHash string    `gorm:"not null;size:100" json:"-"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	TeamIDs      []string  `gorm:"serializer:json" json:"team_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the Actor entity.
func (Actor) TableName() string {
	return "actors"
}

// InTeam reports whether the actor belongs to the given team.
func (a *Actor) InTeam(teamID string) bool {
	for _, id := range a.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// Claims carries the identity extracted from an access token.
type Claims struct {
	ActorID string `json:"actor_id"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}
