package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/bookcrud/internal/auth"
	"github.com/akarpov/bookcrud/internal/catalog"
	"github.com/akarpov/bookcrud/internal/entities"
	"github.com/akarpov/bookcrud/internal/readers"
)

type ReadersController struct {
	service *readers.Service
	search  *catalog.Search
}

func NewReadersController(service *readers.Service, search *catalog.Search) *ReadersController {
	return &ReadersController{service: service, search: search}
}

type createReaderRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Age      *int   `json:"age" binding:"omitempty,min=0"`
}

// Create registers a new reader. This is the only unauthenticated reader
// endpoint.
func (controller *ReadersController) Create(c *gin.Context) {
	var req createReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username and password are required, age must be non-negative")
		return
	}
	reader, err := controller.service.Create(req.Username, req.Password, req.Age)
	if err != nil {
		if errors.Is(err, readers.ErrUsernameRequired) || errors.Is(err, readers.ErrPasswordRequired) {
			respondBadRequest(c, err.Error())
			return
		}
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reader)
}

// Current returns the authenticated reader.
func (controller *ReadersController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, auth.ReaderFromContext(c))
}

func (controller *ReadersController) Patch(c *gin.Context) {
	var patch entities.ReaderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid reader payload, age must be non-negative")
		return
	}
	reader, err := controller.service.Update(auth.ReaderFromContext(c), patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reader)
}

func (controller *ReadersController) Delete(c *gin.Context) {
	if err := controller.service.Delete(auth.ReaderFromContext(c)); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchBooks lists the books visible to the authenticated reader.
func (controller *ReadersController) SearchBooks(c *gin.Context) {
	params, ok := parseSearchParams(c)
	if !ok {
		return
	}
	books, err := controller.search.Books(params, auth.ReaderFromContext(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// SearchAuthors lists the authors visible to the authenticated reader.
func (controller *ReadersController) SearchAuthors(c *gin.Context) {
	params, ok := parseSearchParams(c)
	if !ok {
		return
	}
	authors, err := controller.search.Authors(params, auth.ReaderFromContext(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// parseSearchParams reads the shared search query parameters. sorting_by is
// required and restricted to the two known sort keys; is_age_limit is
// tri-state.
func parseSearchParams(c *gin.Context) (catalog.SearchParams, bool) {
	sortBy := c.Query("sorting_by")
	if !catalog.ValidSortBy(sortBy) {
		respondBadRequest(c, "sorting_by must be one of: author, book_name")
		return catalog.SearchParams{}, false
	}

	params := catalog.SearchParams{
		SortBy:     catalog.SortBy(sortBy),
		AuthorName: c.Query("author"),
		BookName:   c.Query("book_name"),
	}

	if raw := c.Query("is_age_limit"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "is_age_limit must be a boolean")
			return catalog.SearchParams{}, false
		}
		params.AgeLimit = &value
	}

	return params, true
}
