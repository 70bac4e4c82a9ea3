package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/serializers"
	"github.com/media-blog/api-go/utils"
)

type GroupController struct {
	Groups     repository.GroupRepository
	Serializer *serializers.Serializer
	PageSize   int
}

func NewGroupController(groups repository.GroupRepository, serializer *serializers.Serializer, pageSize int) *GroupController {
	return &GroupController{Groups: groups, Serializer: serializer, PageSize: pageSize}
}

// ListGroups godoc
// @Summary List groups
// @Description Returns groups ordered by name
// @Tags groups
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} PaginatedResponse
// @Router /groups/ [get]
func (gc *GroupController) ListGroups(c *gin.Context) {
	page, err := utils.ParsePage(c, gc.PageSize)
	if err != nil {
		respondError(c, err, "")
		return
	}

	groups, total, err := gc.Groups.List(c.Request.Context(), page.Offset(), page.Size)
	if err != nil {
		respondError(c, err, "Error fetching groups")
		return
	}

	respondPage(c, page, total, gc.Serializer.WithBaseURL(utils.BaseURL(c)).Groups(groups))
}

// GetGroup godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path integer true "Group ID"
// @Success 200 {object} serializers.GroupData
// @Router /groups/{id}/ [get]
func (gc *GroupController) GetGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c)
		return
	}

	group, err := gc.Groups.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error fetching group")
		return
	}

	c.JSON(http.StatusOK, gc.Serializer.WithBaseURL(utils.BaseURL(c)).Group(group))
}
