package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/serializers"
	"github.com/media-blog/api-go/utils"
)

type CategoryController struct {
	Categories repository.CategoryRepository
	Serializer *serializers.Serializer
	PageSize   int
}

func NewCategoryController(categories repository.CategoryRepository, serializer *serializers.Serializer, pageSize int) *CategoryController {
	return &CategoryController{Categories: categories, Serializer: serializer, PageSize: pageSize}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} PaginatedResponse
// @Router /categories/ [get]
func (cc *CategoryController) ListCategories(c *gin.Context) {
	page, err := utils.ParsePage(c, cc.PageSize)
	if err != nil {
		respondError(c, err, "")
		return
	}

	categories, total, err := cc.Categories.List(c.Request.Context(), page.Offset(), page.Size)
	if err != nil {
		respondError(c, err, "Error fetching categories")
		return
	}

	respondPage(c, page, total, cc.Serializer.WithBaseURL(utils.BaseURL(c)).Categories(categories))
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c)
		return
	}

	category, err := cc.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error fetching category")
		return
	}

	c.JSON(http.StatusOK, cc.Serializer.WithBaseURL(utils.BaseURL(c)).Category(category))
}
