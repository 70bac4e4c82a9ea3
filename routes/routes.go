package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/controllers"
	"github.com/media-blog/api-go/middleware"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/serializers"
	"github.com/media-blog/api-go/storage"
	"github.com/media-blog/api-go/utils"
	"gorm.io/gorm"
)

// Options carries the collaborators the routes need.
type Options struct {
	DB       *gorm.DB
	Media    storage.MediaStorage
	Tokens   *utils.TokenIssuer
	PageSize int
	// MediaRoot, when set, is served at MediaPath for local storage.
	MediaRoot string
	MediaPath string
}

func SetupRoutes(r *gin.Engine, opts Options) {
	authMiddleware := middleware.AuthMiddleware(opts.DB, opts.Tokens)

	r.HandleMethodNotAllowed = true
	r.NoMethod(protectedAPI(authMiddleware), controllers.MethodNotAllowed)
	r.NoRoute(controllers.NotFound)

	// Initialize controllers
	serializer := serializers.New(opts.Media)
	authController := controllers.NewAuthController(opts.DB, opts.Tokens)
	groupController := controllers.NewGroupController(repository.NewGroupRepository(opts.DB), serializer, opts.PageSize)
	categoryController := controllers.NewCategoryController(repository.NewCategoryRepository(opts.DB), serializer, opts.PageSize)
	postController := controllers.NewPostController(repository.NewPostRepository(opts.DB), serializer, opts.PageSize)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MediaRoot != "" && opts.MediaPath != "" {
		r.Static(opts.MediaPath, opts.MediaRoot)
	}

	// Public routes
	public := r.Group("/api")
	SetupAuthRoutes(public, authController)

	// Protected routes
	protected := r.Group("/api")
	protected.Use(authMiddleware)
	{
		SetupBlogRoutes(protected, groupController, categoryController, postController)
	}
}

// readOnly registers handler for safe verbs and rejects every mutating verb.
// Registering the rejections on the protected group keeps authentication
// ahead of the method check.
func readOnly(rg *gin.RouterGroup, path string, handler gin.HandlerFunc) {
	rg.GET(path, handler)
	rg.HEAD(path, handler)
	rg.OPTIONS(path, controllers.Options)
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rg.Handle(method, path, controllers.MethodNotAllowed)
	}
}

// protectedAPI runs auth for unknown verbs on content paths so that they are
// rejected the same way as the registered ones. Token routes stay public.
func protectedAPI(auth gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") && !strings.HasPrefix(path, "/api/token/") {
			auth(c)
			return
		}
		c.Next()
	}
}
