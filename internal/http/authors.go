package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authorsdb "github.com/akarpov/bookcrud/internal/database/authors"
	"github.com/akarpov/bookcrud/internal/entities"
)

type AuthorsController struct {
	repo *authorsdb.Repository
}

func NewAuthorsController(repo *authorsdb.Repository) *AuthorsController {
	return &AuthorsController{repo: repo}
}

type createAuthorRequest struct {
	Name string `json:"name" binding:"required"`
}

func (controller *AuthorsController) List(c *gin.Context) {
	authors, err := controller.repo.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (controller *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	author, err := controller.repo.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (controller *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	author, err := controller.repo.Create(req.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

func (controller *AuthorsController) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch entities.AuthorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid author payload")
		return
	}
	author, err := controller.repo.Update(id, patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (controller *AuthorsController) Delete(c *gin.Context) {
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
