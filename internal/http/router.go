package http

import (
	"github.com/gin-gonic/gin"

	"github.com/akarpov/bookcrud/internal/auth"
	"github.com/akarpov/bookcrud/internal/catalog"
	"github.com/akarpov/bookcrud/internal/database"
	authorsdb "github.com/akarpov/bookcrud/internal/database/authors"
	booksdb "github.com/akarpov/bookcrud/internal/database/books"
	"github.com/akarpov/bookcrud/internal/readers"
)

// RouterConfig carries all router dependencies so wiring stays in one
// place.
type RouterConfig struct {
	Database *database.Database
	Authors  *authorsdb.Repository
	Books    *booksdb.Repository
	Readers  *readers.Service
	Search   *catalog.Search
	Verifier *auth.Verifier
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// The internal author/book CRUD surface is unauthenticated (it sits behind
// the deployment's own perimeter); reader endpoints require Basic auth
// except registration.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	authorsController := NewAuthorsController(cfg.Authors)
	authorGroup := router.Group("/api/v1/internal/author")
	{
		authorGroup.GET("", authorsController.List)
		authorGroup.POST("", authorsController.Create)
		authorGroup.GET("/:id", authorsController.Get)
		authorGroup.PATCH("/:id", authorsController.Patch)
		authorGroup.DELETE("/:id", authorsController.Delete)
	}

	booksController := NewBooksController(cfg.Books)
	bookGroup := router.Group("/api/v1/internal/book")
	{
		bookGroup.GET("", booksController.List)
		bookGroup.POST("", booksController.Create)
		bookGroup.GET("/:id", booksController.Get)
		bookGroup.PATCH("/:id", booksController.Patch)
		bookGroup.DELETE("/:id", booksController.Delete)
	}

	readersController := NewReadersController(cfg.Readers, cfg.Search)
	router.POST("/api/v1/reader", readersController.Create)

	readerGroup := router.Group("/api/v1/reader")
	readerGroup.Use(auth.BasicAuthMiddleware(cfg.Verifier))
	{
		readerGroup.GET("", readersController.Current)
		readerGroup.PATCH("", readersController.Patch)
		readerGroup.DELETE("", readersController.Delete)
		readerGroup.GET("/books", readersController.SearchBooks)
		readerGroup.GET("/authors", readersController.SearchAuthors)
	}

	return router
}
