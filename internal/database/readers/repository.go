// Package readers provides database operations for reader accounts. The
// reader service layers password hashing on top; this package only stores
// and classifies.
package readers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/database"
	"github.com/akarpov/bookcrud/internal/entities"
)

// Repository handles all reader database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new readers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a reader whose Password field already holds a hash. A
// duplicate username surfaces as Conflict naming the offending username.
func (r *Repository) Create(reader *entities.Reader) error {
	if err := r.db.Create(reader).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.NewConflict("username", reader.Username)
		}
		return apperrors.NewInternal("create reader", err)
	}
	return nil
}

func (r *Repository) GetByUsername(username string) (*entities.Reader, error) {
	var reader entities.Reader
	err := r.db.Where("username = ?", username).First(&reader).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("reader", username)
		}
		return nil, apperrors.NewInternal("get reader", err)
	}
	return &reader, nil
}

func (r *Repository) GetByID(id uint) (*entities.Reader, error) {
	var reader entities.Reader
	err := r.db.First(&reader, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("reader", id)
		}
		return nil, apperrors.NewInternal("get reader", err)
	}
	return &reader, nil
}

// Update applies the given update set to the reader row. The caller has
// already resolved an authenticated reader, so there is no not-found branch.
func (r *Repository) Update(id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	err := r.db.Model(&entities.Reader{ID: id}).Updates(updates).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			username, _ := updates["username"].(string)
			return apperrors.NewConflict("username", username)
		}
		return apperrors.NewInternal("update reader", err)
	}
	return nil
}

// Delete removes the reader unconditionally.
func (r *Repository) Delete(id uint) error {
	if err := r.db.Delete(&entities.Reader{}, id).Error; err != nil {
		return apperrors.NewInternal("delete reader", err)
	}
	return nil
}
