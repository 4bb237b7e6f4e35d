// Package handlers holds the Gin HTTP handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodfinder/internal/modules/recommend"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRecommendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, recommend.ErrUpstream):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
