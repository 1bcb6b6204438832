package api

import (
	stdhttp "net/http"
	"sync"

	intconfig "agrisolve/internal/config"
	"agrisolve/internal/domain"
	h "agrisolve/internal/http/handlers"
	"agrisolve/internal/http/middleware"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var bindingNames sync.Once

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	bindingNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			services.UseJSONNames(v)
		}
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		zap.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.AuthOptional(hd.TokenParser())
	loggedIn := middleware.RequireAuth()
	sellers := middleware.RequireRoles(domain.RoleFarmer, domain.RoleTrader)

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", hd.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/register", hd.Register)
		authGroup.POST("/login", hd.Login)

		me := api.Group("/me", auth, loggedIn)
		me.GET("", hd.Me)
		me.PUT("", hd.UpdateMe)
		me.GET("/listings", hd.MyListings)

		// Marketplace
		listings := api.Group("/listings", auth, middleware.Session())
		listings.GET("", hd.ListListings)
		listings.GET("/:id", hd.GetListing)
		listings.GET("/:id/sheet", hd.ListingSheet)
		listings.POST("", sellers, hd.CreateListing)
		listings.PUT("/:id", loggedIn, hd.UpdateListing)
		listings.PATCH("/:id/status", loggedIn, hd.SetListingStatus)
		listings.DELETE("/:id", loggedIn, hd.DeleteListing)

		// Session favorites
		favorites := api.Group("/favorites", middleware.Session())
		favorites.GET("", hd.ListFavorites)
		favorites.POST("/:id/toggle", hd.ToggleFavorite)

		// Forum
		forum := api.Group("/forum/posts", auth)
		forum.GET("", hd.ListPosts)
		forum.GET("/:id", hd.GetPost)
		forum.POST("", loggedIn, hd.CreatePost)
		forum.POST("/:id/replies", loggedIn, hd.CreateReply)
		forum.POST("/:id/like", loggedIn, hd.LikePost)
		forum.POST("/:id/replies/:replyId/like", loggedIn, hd.LikeReply)
		forum.POST("/:id/replies/:replyId/accept", loggedIn, hd.AcceptReply)

		// Advisory
		api.POST("/advisory/tips", hd.AdvisoryTips)
	}

	hd.SetEngine(r)
	return r
}
