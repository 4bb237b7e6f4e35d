package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foodfinder/internal/ai"
)

// sampleQuery exercises the full extraction prompt; handy for verifying
// provider credentials without spending a places call.
const sampleQuery = "give me spicy cheesy biriyani under 200 near tambaram"

type IntentHandler struct {
	extractor ai.IntentExtractor
}

func NewIntentHandler(extractor ai.IntentExtractor) *IntentHandler {
	return &IntentHandler{extractor: extractor}
}

// TestLLM handles GET /api/test-llm: runs the sample query through the
// configured extractor and returns the raw structured output.
func (h *IntentHandler) TestLLM(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	intent, err := h.extractor.ExtractIntent(ctx, sampleQuery)
	if err != nil {
		writeJSON(c, http.StatusInternalServerError, map[string]any{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"status":     "success",
		"llm_output": intent,
	})
}
