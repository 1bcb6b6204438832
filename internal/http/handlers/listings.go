package handlers

import (
	"net/http"

	"agrisolve/internal/domain/models"
	"agrisolve/internal/http/middleware"
	"agrisolve/internal/listingview"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 while the listing snapshot cannot be fetched.
const retryAfterSeconds = "5"

type browseResponse struct {
	listingview.Result
	Error          string `json:"error,omitempty"`
	FavoritesError string `json:"favorites_error,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func filterFromQuery(c *gin.Context) listingview.FilterState {
	return listingview.FilterState{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Sort:     listingview.SortKey(c.Query("sort")),
		View:     listingview.ViewMode(c.Query("view")),
	}
}

// GET /api/listings
func (h *Handler) ListListings(c *gin.Context) {
	ctx := c.Request.Context()
	f := filterFromQuery(c)

	resp := browseResponse{RequestID: middleware.GetRequestID(c)}
	favs, favErr := h.favorites(c).Load(ctx, middleware.GetSessionID(c))
	if favErr != nil {
		resp.FavoritesError = "favorites unavailable"
	}

	res, err := h.marketplace(c).Browse(ctx, f, favs)
	resp.Result = res
	if err != nil {
		resp.Error = "listings could not be loaded, try again shortly"
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/listings/:id
func (h *Handler) GetListing(c *gin.Context) {
	l, err := h.marketplace(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	favs, _ := h.favorites(c).Load(c.Request.Context(), middleware.GetSessionID(c))
	c.JSON(http.StatusOK, listingview.Item{Listing: l, Favorite: favs.Has(l.ID)})
}

// GET /api/me/listings
func (h *Handler) MyListings(c *gin.Context) {
	list, err := h.marketplace(c).Mine(c.Request.Context(), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list, "count": len(list)})
}

// POST /api/listings
func (h *Handler) CreateListing(c *gin.Context) {
	var in services.ListingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	l, err := h.marketplace(c).Create(c.Request.Context(), middleware.GetRequestContext(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PUT /api/listings/:id
func (h *Handler) UpdateListing(c *gin.Context) {
	var patch models.ListingPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	l, err := h.marketplace(c).Update(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// PATCH /api/listings/:id/status
func (h *Handler) SetListingStatus(c *gin.Context) {
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	l, err := h.marketplace(c).SetStatus(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// DELETE /api/listings/:id
func (h *Handler) DeleteListing(c *gin.Context) {
	if err := h.marketplace(c).Delete(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted", "id": c.Param("id")})
}

// GET /api/listings/:id/sheet
func (h *Handler) ListingSheet(c *gin.Context) {
	pdfBytes, filename, err := h.docs(c).ListingSheet(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
