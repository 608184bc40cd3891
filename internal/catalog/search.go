// Package catalog implements the reader-facing search over books and
// authors: one filter/sort pipeline with two entry points, age-gated by the
// authenticated reader.
package catalog

import (
	"strings"

	"gorm.io/gorm"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/entities"
)

type SortBy string

const (
	SortByAuthor   SortBy = "author"
	SortByBookName SortBy = "book_name"
)

// ValidSortBy reports whether value is a recognised sort key.
func ValidSortBy(value string) bool {
	switch SortBy(value) {
	case SortByAuthor, SortByBookName:
		return true
	}
	return false
}

// SearchParams is shared by both entry points. AgeLimit is a tri-state
// caller filter; it is overridden entirely for underage readers.
type SearchParams struct {
	SortBy     SortBy
	AuthorName string
	BookName   string
	AgeLimit   *bool
}

// Search runs catalog queries against the joined book/author tables.
type Search struct {
	db       *gorm.DB
	ageLimit int
}

func NewSearch(db *gorm.DB, ageLimit int) *Search {
	return &Search{db: db, ageLimit: ageLimit}
}

// Books returns books matching params, visible to reader. Soft-deleted
// authors are excluded via the inner join, so their books disappear too.
func (s *Search) Books(params SearchParams, reader *entities.Reader) ([]entities.Book, error) {
	query := s.db.Model(&entities.Book{}).
		Select("books.*").
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("authors.is_deleted = ?", false)

	query = applySort(query, params.SortBy)
	query = applyNameFilters(query, params)

	// Age gating: the first matching branch wins. An underage reader is
	// force-restricted regardless of the caller's filter; a reader of
	// unknown age gets the caller's filter or the safe default. A reader
	// at or above the limit with no filter sees everything.
	switch {
	case reader.Age != nil && *reader.Age < s.ageLimit:
		query = query.Where("books.is_age_limit = ?", false)
	case reader.Age == nil && params.AgeLimit != nil:
		query = query.Where("books.is_age_limit = ?", *params.AgeLimit)
	case reader.Age == nil:
		query = query.Where("books.is_age_limit = ?", false)
	}

	var books []entities.Book
	if err := query.Preload("Author").Find(&books).Error; err != nil {
		return nil, apperrors.NewInternal("search books", err)
	}
	return books, nil
}

// Authors returns authors matching params, visible to reader. The outer
// join keeps authors with zero matching books visible, so every predicate
// on book columns admits the no-book row.
func (s *Search) Authors(params SearchParams, reader *entities.Reader) ([]entities.Author, error) {
	query := s.db.Model(&entities.Author{}).
		Select("authors.*").
		Joins("LEFT JOIN books ON books.author_id = authors.id").
		Where("authors.is_deleted = ?", false).
		Group("authors.id")

	// MIN keeps the grouped book-name ordering deterministic.
	switch params.SortBy {
	case SortByBookName:
		query = query.Order("MIN(books.name)")
	case SortByAuthor:
		query = query.Order("authors.name")
	}

	query = applyNameFilters(query, params)

	switch {
	case reader.Age != nil && *reader.Age < s.ageLimit:
		query = query.Where("books.is_age_limit = ? OR books.id IS NULL", false)
	case reader.Age == nil && params.AgeLimit != nil:
		query = query.Where("books.is_age_limit = ? OR books.id IS NULL", *params.AgeLimit)
	case reader.Age == nil:
		query = query.Where("books.is_age_limit = ? OR books.id IS NULL", false)
	}

	var authors []entities.Author
	if err := query.Preload("Books").Find(&authors).Error; err != nil {
		return nil, apperrors.NewInternal("search authors", err)
	}
	return authors, nil
}

func applySort(query *gorm.DB, sortBy SortBy) *gorm.DB {
	switch sortBy {
	case SortByBookName:
		return query.Order("books.name")
	case SortByAuthor:
		return query.Order("authors.name")
	}
	return query
}

func applyNameFilters(query *gorm.DB, params SearchParams) *gorm.DB {
	if params.BookName != "" {
		query = query.Where("LOWER(books.name) LIKE ?", containsPattern(params.BookName))
	}
	if params.AuthorName != "" {
		query = query.Where("LOWER(authors.name) LIKE ?", containsPattern(params.AuthorName))
	}
	return query
}

func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
