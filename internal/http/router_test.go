package http

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov/bookcrud/internal/auth"
	"github.com/akarpov/bookcrud/internal/catalog"
	"github.com/akarpov/bookcrud/internal/database"
	authorsdb "github.com/akarpov/bookcrud/internal/database/authors"
	booksdb "github.com/akarpov/bookcrud/internal/database/books"
	readersdb "github.com/akarpov/bookcrud/internal/database/readers"
	"github.com/akarpov/bookcrud/internal/readers"
)

const testAgeLimit = 18

// setupTestRouter wires a full router over a throwaway sqlite database,
// mirroring production wiring.
func setupTestRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authorsRepo := authorsdb.NewRepository(db.DB)
	booksRepo := booksdb.NewRepository(db.DB)
	readersRepo := readersdb.NewRepository(db.DB)

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	router := NewRouter(RouterConfig{
		Database: db,
		Authors:  authorsRepo,
		Books:    booksRepo,
		Readers:  readers.NewService(readersRepo, hasher),
		Search:   catalog.NewSearch(db.DB, testAgeLimit),
		Verifier: auth.NewVerifier(readersRepo, hasher),
		Version:  "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return router, cleanup
}
