package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foodfinder/internal/modules/recommend"
)

// Recommender is the service surface this handler needs.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

type RecommendHandler struct {
	svc Recommender
}

func NewRecommendHandler(svc Recommender) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// Recommend handles POST /api/recommend. The request blocks on two sequential
// outbound calls, so the timeout covers both.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	resp, err := h.svc.Recommend(ctx, req)
	if err != nil {
		writeRecommendError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, resp)
}
