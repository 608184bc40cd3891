package auth

import (
	"errors"
	"fmt"

	"github.com/akarpov/bookcrud/internal/apperrors"
	readersdb "github.com/akarpov/bookcrud/internal/database/readers"
	"github.com/akarpov/bookcrud/internal/entities"
)

// Verifier authenticates a username/password pair against stored reader
// records. The result is the identity every reader-scoped operation runs
// under.
type Verifier struct {
	readers *readersdb.Repository
	hasher  *PasswordHasher
}

func NewVerifier(readers *readersdb.Repository, hasher *PasswordHasher) *Verifier {
	return &Verifier{readers: readers, hasher: hasher}
}

// Verify looks the reader up by exact username and checks the password
// against the stored hash. Outcomes are distinct: unknown username is
// NotFound, a wrong password is Forbidden, and a failure of the comparison
// itself is Internal.
func (v *Verifier) Verify(username, password string) (*entities.Reader, error) {
	reader, err := v.readers.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if err := v.hasher.Verify(password, reader.Password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, apperrors.NewForbidden(fmt.Sprintf("invalid password for %s", username))
		}
		return nil, apperrors.NewInternal("check password", err)
	}

	return reader, nil
}
