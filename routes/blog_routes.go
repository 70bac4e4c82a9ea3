package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/controllers"
)

func SetupBlogRoutes(protected *gin.RouterGroup, groupController *controllers.GroupController, categoryController *controllers.CategoryController, postController *controllers.PostController) {
	readOnly(protected, "/groups/", groupController.ListGroups)
	readOnly(protected, "/groups/:id/", groupController.GetGroup)

	readOnly(protected, "/categories/", categoryController.ListCategories)
	readOnly(protected, "/categories/:id/", categoryController.GetCategory)

	readOnly(protected, "/posts/", postController.ListPosts)
	readOnly(protected, "/posts/:id/", postController.GetPost)

	readOnly(protected, "/random-post/", postController.GetRandomPost)
}
