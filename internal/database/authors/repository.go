// Package authors provides database operations for author management,
// including the soft-delete policy: an author that still owns books is
// marked deleted instead of being removed.
package authors

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author, including soft-deleted ones. Catalog search
// applies the is_deleted filter; the internal CRUD surface does not.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	if err := r.db.Preload("Books").Find(&authors).Error; err != nil {
		return nil, apperrors.NewInternal("list authors", err)
	}
	return authors, nil
}

func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books").First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("author", id)
		}
		return nil, apperrors.NewInternal("get author", err)
	}
	return &author, nil
}

func (r *Repository) Create(name string) (*entities.Author, error) {
	author := &entities.Author{Name: name}
	if err := r.db.Create(author).Error; err != nil {
		return nil, apperrors.NewInternal("create author", err)
	}
	return author, nil
}

// Update applies only the fields present in the patch and returns the
// refreshed record. Fetch and update share one transaction.
func (r *Repository) Update(id uint, patch entities.AuthorPatch) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("author", id)
			}
			return apperrors.NewInternal("get author", err)
		}
		updates := patch.Updates()
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&author).Updates(updates).Error; err != nil {
			return apperrors.NewInternal("update author", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes the author physically when no books reference it, and
// flips is_deleted otherwise. The count and the mutation run in one
// transaction so a concurrently added book cannot slip past the check.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("author", id)
			}
			return apperrors.NewInternal("get author", err)
		}

		var bookCount int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&bookCount).Error; err != nil {
			return apperrors.NewInternal("count author books", err)
		}

		if bookCount == 0 {
			if err := tx.Delete(&entities.Author{}, id).Error; err != nil {
				return apperrors.NewInternal("delete author", err)
			}
			return nil
		}

		if err := tx.Model(&author).Update("is_deleted", true).Error; err != nil {
			return apperrors.NewInternal("soft delete author", err)
		}
		return nil
	})
}

// PurgeSoftDeleted hard-deletes authors that were soft-deleted and whose
// last book has since been removed. Used by the maintenance sweep.
func (r *Repository) PurgeSoftDeleted() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM authors
		WHERE is_deleted = true
		AND id NOT IN (SELECT author_id FROM books WHERE author_id IS NOT NULL)
	`)
	if result.Error != nil {
		return 0, apperrors.NewInternal("purge soft-deleted authors", result.Error)
	}
	return result.RowsAffected, nil
}
