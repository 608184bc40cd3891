// Package readers implements the reader account service: creation with
// password hashing and username uniqueness, partial updates and deletion.
package readers

import (
	"errors"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/auth"
	readersdb "github.com/akarpov/bookcrud/internal/database/readers"
	"github.com/akarpov/bookcrud/internal/entities"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
)

type Service struct {
	repo   *readersdb.Repository
	hasher *auth.PasswordHasher
}

func NewService(repo *readersdb.Repository, hasher *auth.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Create registers a new reader. The plaintext password is hashed before it
// is persisted; a duplicate username comes back as Conflict from the
// repository.
func (s *Service) Create(username, password string, age *int) (*entities.Reader, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternal("hash password", err)
	}

	reader := &entities.Reader{
		Username: username,
		Password: hash,
		Age:      age,
	}
	if err := s.repo.Create(reader); err != nil {
		return nil, err
	}
	return reader, nil
}

// Update merges the supplied patch fields over the current reader. A new
// password is hashed before it reaches the store. The caller already holds
// an authenticated reader, so there is no not-found branch here.
func (s *Service) Update(current *entities.Reader, patch entities.ReaderPatch) (*entities.Reader, error) {
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, apperrors.NewInternal("hash password", err)
		}
		patch.Password = &hash
	}

	if err := s.repo.Update(current.ID, patch.Updates()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(current.ID)
}

// Delete removes the reader record unconditionally.
func (s *Service) Delete(reader *entities.Reader) error {
	return s.repo.Delete(reader.ID)
}
