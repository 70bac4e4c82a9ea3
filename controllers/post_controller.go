package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/serializers"
	"github.com/media-blog/api-go/utils"
)

type PostController struct {
	Posts      repository.PostRepository
	Serializer *serializers.Serializer
	PageSize   int
}

// PostQuery holds the optional filters of the post listing. Empty values are
// treated as absent.
type PostQuery struct {
	Group    string `form:"group" binding:"omitempty,number"`
	Category string `form:"category" binding:"omitempty,number"`
	Duration string `form:"duration" binding:"omitempty,number"`
	Summary  string `form:"summary"`
}

func NewPostController(posts repository.PostRepository, serializer *serializers.Serializer, pageSize int) *PostController {
	return &PostController{Posts: posts, Serializer: serializer, PageSize: pageSize}
}

// Filter converts the query into a repository filter.
func (q PostQuery) Filter() (repository.PostFilter, error) {
	var filter repository.PostFilter
	if q.Group != "" {
		id, err := strconv.ParseUint(q.Group, 10, 32)
		if err != nil {
			return filter, errors.New("group must be an integer ID")
		}
		group := uint(id)
		filter.GroupID = &group
	}
	if q.Category != "" {
		id, err := strconv.ParseUint(q.Category, 10, 32)
		if err != nil {
			return filter, errors.New("category must be an integer ID")
		}
		category := uint(id)
		filter.CategoryID = &category
	}
	if q.Duration != "" {
		minutes, err := strconv.Atoi(q.Duration)
		if err != nil {
			return filter, errors.New("duration must be an integer number of minutes")
		}
		filter.Duration = &minutes
	}
	return filter, nil
}

// IsSummary reports whether summary=true was requested.
func (q PostQuery) IsSummary() bool {
	return strings.EqualFold(q.Summary, "true")
}

// ListPosts godoc
// @Summary List posts
// @Description Returns posts filtered by group, category and duration value, in detail or summary form
// @Tags posts
// @Produce json
// @Param group query integer false "Group ID"
// @Param category query integer false "Category ID"
// @Param duration query integer false "Duration in minutes"
// @Param summary query boolean false "Return id, title and post_type only"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} PaginatedResponse
// @Router /posts/ [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	var query PostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, err := query.Filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := utils.ParsePage(c, pc.PageSize)
	if err != nil {
		respondError(c, err, "")
		return
	}

	posts, total, err := pc.Posts.List(c.Request.Context(), filter, page.Offset(), page.Size)
	if err != nil {
		respondError(c, err, "Error fetching posts")
		return
	}

	serializer := pc.Serializer.WithBaseURL(utils.BaseURL(c))
	respondPage(c, page, total, serializer.Posts(posts, query.IsSummary()))
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path integer true "Post ID"
// @Param summary query boolean false "Return id, title and post_type only"
// @Success 200 {object} serializers.PostDetail
// @Router /posts/{id}/ [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c)
		return
	}

	post, err := pc.Posts.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error fetching post")
		return
	}

	summary := strings.EqualFold(c.Query("summary"), "true")
	c.JSON(http.StatusOK, pc.Serializer.WithBaseURL(utils.BaseURL(c)).Post(post, summary))
}

// GetRandomPost godoc
// @Summary Get a random post
// @Description Ignores every filter and returns one post drawn at random, wrapped in the list envelope
// @Tags posts
// @Produce json
// @Success 200 {object} PaginatedResponse
// @Router /random-post/ [get]
func (pc *PostController) GetRandomPost(c *gin.Context) {
	post, err := pc.Posts.Random(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, PaginatedResponse{Results: []serializers.PostDetail{}})
		return
	}
	if err != nil {
		respondError(c, err, "Error fetching random post")
		return
	}

	serializer := pc.Serializer.WithBaseURL(utils.BaseURL(c))
	c.JSON(http.StatusOK, PaginatedResponse{
		Count:   1,
		Results: []serializers.PostDetail{serializer.PostDetail(post)},
	})
}
