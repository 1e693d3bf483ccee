package api

import (
	"net/http"
	"strconv"

	resdto "rental-hunter/internal/handler/dto/response"
	"rental-hunter/internal/handler/httperr"
	"rental-hunter/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	q queries.ListingQueries
}

func NewListingHandler(q queries.ListingQueries) *ListingHandler {
	return &ListingHandler{q: q}
}

func (h *ListingHandler) List(c *gin.Context) {
	filter := queries.ListingFilter{
		City:   c.Query("city"),
		Status: c.Query("status"),
	}
	if v := c.Query("available"); v != "" {
		filter.OnlyAvailable = v == "true" || v == "1"
	}
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			filter.Limit = iv
		}
	}

	views, err := h.q.Search(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list listings", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": resdto.FromListingList(views)})
}
