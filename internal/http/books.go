package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	booksdb "github.com/akarpov/bookcrud/internal/database/books"
	"github.com/akarpov/bookcrud/internal/entities"
)

type BooksController struct {
	repo *booksdb.Repository
}

func NewBooksController(repo *booksdb.Repository) *BooksController {
	return &BooksController{repo: repo}
}

type createBookRequest struct {
	Name       string `json:"name" binding:"required"`
	IsAgeLimit bool   `json:"is_age_limit"`
	AuthorID   *uint  `json:"author_id"`
}

func (controller *BooksController) List(c *gin.Context) {
	books, err := controller.repo.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.repo.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	book, err := controller.repo.Create(req.Name, req.IsAgeLimit, req.AuthorID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (controller *BooksController) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch entities.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid book payload")
		return
	}
	book, err := controller.repo.Update(id, patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.repo.Delete(id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
