package handlers

import (
	"database/sql"

	"agrisolve/internal/favorites"
	"agrisolve/internal/http/middleware"
	"agrisolve/internal/listingview"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds what the endpoints need. Services are built per request so each
// one logs with that request's id.
type Handler struct {
	DB        *sql.DB
	Listings  services.ListingStore
	Forum     services.ForumStore
	Users     services.UserStore
	Favorites favorites.Store
	Snapshot  *listingview.Store
	JWTSecret []byte

	engine *gin.Engine
}

// TokenParser verifies bearer tokens for the auth middleware.
func (h *Handler) TokenParser() middleware.TokenParser {
	return services.AuthService{Secret: h.JWTSecret}
}

// SetEngine stores the active gin engine for /api/routes.
func (h *Handler) SetEngine(r *gin.Engine) {
	h.engine = r
}

func (h *Handler) marketplace(c *gin.Context) services.MarketplaceService {
	return services.MarketplaceService{Repo: h.Listings, Snapshot: h.Snapshot, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) forum(c *gin.Context) services.ForumService {
	return services.ForumService{Repo: h.Forum, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) favorites(c *gin.Context) services.FavoriteService {
	return services.FavoriteService{Store: h.Favorites, Snapshot: h.Snapshot, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	return services.AuthService{Users: h.Users, Secret: h.JWTSecret, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Listings: h.Listings, RequestID: middleware.GetRequestID(c)}
}
