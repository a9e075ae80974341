package router

import (
	"html/template"

	"github.com/JayWelborn/Rango/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the gin engine, session middleware, templates, and
// the route table.
func SetupRouter(api *handler.API, sessionSecret, templateGlob, staticDir string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("rango_session", store))

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	})
	if templateGlob != "" {
		r.LoadHTMLGlob(templateGlob)
	}
	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	r.GET("/", api.Index)
	r.GET("/about", api.About)
	r.GET("/category/:slug", api.ShowCategory)
	r.POST("/category/:slug", api.ShowCategory)
	r.GET("/goto", api.TrackURL)
	r.GET("/suggest", api.Suggest)
	r.GET("/search", api.SearchPage)
	r.POST("/search", api.SearchPage)

	r.GET("/register", api.ShowRegister)
	r.POST("/register", api.Register)
	r.GET("/login", api.ShowLogin)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/restricted", api.Restricted)
		auth.GET("/like", api.LikeCategory)
		auth.GET("/add_category", api.ShowAddCategory)
		auth.POST("/add_category", api.AddCategory)
		auth.GET("/category/:slug/add_page", api.ShowAddPage)
		auth.POST("/category/:slug/add_page", api.AddPage)
		auth.GET("/profile/list", api.ListUsers)
		auth.GET("/profile/edit", api.ShowEditProfile)
		auth.POST("/profile/edit", api.EditProfile)
		auth.GET("/profile/:id", api.ShowProfile)
	}

	return r
}
