package auth

import (
	"errors"

	"github.com/example/taskboard/domain/user"
	"gorm.io/gorm"
)

var (
	// ErrActorNotFound is returned when an actor is not found.
	ErrActorNotFound = errors.New("actor not found")
	// ErrActorExists is returned when an actor already exists.
	ErrActorExists = errors.New("actor with this email already exists")
)

// ActorRepository handles actor persistence using GORM.
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new ActorRepository.
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{
		db: db,
	}
}

// Create creates a new actor in the database.
func (r *ActorRepository) Create(actor *user.Actor) error {
	result := r.db.Create(actor)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrActorExists
		}
		return result.Error
	}
	return nil
}

// FindByID finds an actor by ID.
func (r *ActorRepository) FindByID(id string) (*user.Actor, error) {
	var actor user.Actor
	result := r.db.First(&actor, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, result.Error
	}
	return &actor, nil
}

// FindByEmail finds an actor by email.
func (r *ActorRepository) FindByEmail(email string) (*user.Actor, error) {
	var actor user.Actor
	result := r.db.First(&actor, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, result.Error
	}
	return &actor, nil
}

// EmailExists checks if an actor with the given email exists.
func (r *ActorRepository) EmailExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&user.Actor{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
