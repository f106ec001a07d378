package handler

import "github.com/gin-gonic/gin"

// NewRouter wires the full route table onto a gin engine with logging and
// recovery middleware.
func NewRouter(items ItemStore, users UserStore, tokens TokenService, corsOrigin string) *gin.Engine {
	router := gin.Default()
	router.Use(CORS(corsOrigin))

	ih := NewItemHandler(items)
	uh := NewUserHandler(users, tokens)

	itemRoutes := router.Group("/items", AuthRequired(tokens))
	{
		itemRoutes.GET("/", ih.List)
		itemRoutes.GET("/:item_id", ih.Get)
		itemRoutes.POST("/", ih.Create)
		itemRoutes.PUT("/:item_id", ih.Update)
		itemRoutes.PUT("/:item_id/finish", ih.Finish)
		itemRoutes.DELETE("/:item_id", ih.Delete)
	}

	userRoutes := router.Group("/users")
	{
		// Registration and login stay reachable without a token.
		userRoutes.POST("/", uh.Create)
		userRoutes.POST("/login", uh.Login)

		authed := userRoutes.Group("", AuthRequired(tokens))
		{
			authed.GET("/", uh.List)
			authed.GET("/me", uh.Me)
			authed.GET("/:user_id", uh.Get)
			authed.PUT("/:user_id", uh.Update)
			authed.DELETE("/:user_id", uh.Delete)
		}
	}

	return router
}
