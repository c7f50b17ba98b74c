package routes

import (
	"net/http"

	"ladle/auth"
	"ladle/middleware"
	"ladle/profile"
	"ladle/recipes"
	"ladle/session"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/css/*filepath", http.Dir("static/css"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler) {
	router.GET("/register", h.Register)
	router.POST("/register", h.Register)
	router.GET("/login", h.Login)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)
}

func AddRecipeRoutes(router *httprouter.Router, h *recipes.Handler, sessions *session.Manager) {
	router.GET("/", h.Home)
	router.GET("/get_recipe", h.List)
	router.GET("/add_recipe", middleware.RequireSession(sessions, h.AddRecipe))
	router.POST("/add_recipe", middleware.RequireSession(sessions, h.AddRecipe))
	router.GET("/full_recipe/:id", middleware.RequireSession(sessions, h.FullRecipe))
	router.GET("/search", h.Search)
	router.POST("/search", h.Search)
}

func AddProfileRoutes(router *httprouter.Router, h *profile.Handler, sessions *session.Manager) {
	router.GET("/profile/:username", middleware.RequireSession(sessions, h.Show))
	router.POST("/profile/:username", middleware.RequireSession(sessions, h.Show))
}
