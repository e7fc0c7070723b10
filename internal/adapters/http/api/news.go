package api

import (
	"context"
	"net/http"

	"github.com/the12thplayer/predict/internal/domain/newscred"
)

// NewsDependencies defines the interface for news credibility operations.
type NewsDependencies interface {
	ClassifyNews(ctx context.Context, title, text string) (*newscred.Classification, error)
}

// NewsHandler handles news credibility requests.
type NewsHandler struct {
	deps NewsDependencies
}

// NewNewsHandler creates a new news credibility handler.
func NewNewsHandler(deps NewsDependencies) *NewsHandler {
	return &NewsHandler{deps: deps}
}

// HandleClassify handles POST /api/v1/classify-news requests. The article
// arrives as title and text query parameters.
func (h *NewsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_news"
	title := r.URL.Query().Get("title")
	text := r.URL.Query().Get("text")

	result, err := h.deps.ClassifyNews(r.Context(), title, text)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
