// Package books provides database operations for book management. Books are
// always deleted physically; soft deletion only applies to authors.
package books

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/database"
	"github.com/akarpov/bookcrud/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Preload("Author").Find(&books).Error; err != nil {
		return nil, apperrors.NewInternal("list books", err)
	}
	return books, nil
}

func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("book", id)
		}
		return nil, apperrors.NewInternal("get book", err)
	}
	return &book, nil
}

// Create persists a new book. AuthorID is optional; when set, the store's
// foreign key constraint validates it and a violation surfaces as Conflict.
func (r *Repository) Create(name string, isAgeLimit bool, authorID *uint) (*entities.Book, error) {
	book := &entities.Book{Name: name, IsAgeLimit: isAgeLimit, AuthorID: authorID}
	if err := r.db.Create(book).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConflict("author_id", formatID(authorID))
		}
		return nil, apperrors.NewInternal("create book", err)
	}
	return r.GetByID(book.ID)
}

// Update applies only the fields present in the patch and returns the
// refreshed record.
func (r *Repository) Update(id uint, patch entities.BookPatch) (*entities.Book, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("book", id)
			}
			return apperrors.NewInternal("get book", err)
		}
		updates := patch.Updates()
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&book).Updates(updates).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperrors.NewConflict("author_id", formatID(patch.AuthorID))
			}
			return apperrors.NewInternal("update book", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Delete removes the book unconditionally.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("book", id)
			}
			return apperrors.NewInternal("get book", err)
		}
		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return apperrors.NewInternal("delete book", err)
		}
		return nil
	})
}

func formatID(id *uint) string {
	if id == nil {
		return "null"
	}
	return strconv.FormatUint(uint64(*id), 10)
}
