package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/crucial707/newsdesk/internal/metrics"
	"github.com/crucial707/newsdesk/internal/middleware"
	"github.com/crucial707/newsdesk/internal/models"
	"github.com/crucial707/newsdesk/internal/validation"
)

var (
	errMissingBody = errors.New("validated body missing from request context")
	errMissingUser = errors.New("authenticated user missing from request context")
)

// ArticleStore is the subset of repo.ArticleRepo the article handlers need.
type ArticleStore interface {
	Create(ctx context.Context, title, body, category string, submittedBy int) (int, error)
	List(ctx context.Context) ([]models.Article, error)
}

type ArticleHandler struct {
	Repo ArticleStore
}

//
// ==========================
// List Articles
// ==========================
//

func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "Failed to fetch articles", err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	writeJSON(w, http.StatusOK, articles)
}

//
// ==========================
// Create Article
// ==========================
//

// CreateArticle must run behind middleware.JWTMiddleware and
// middleware.ValidateBody[validation.ArticleRequest].
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		internalError(w, r, "Failed to create article", errMissingUser)
		return
	}
	input, ok := middleware.Body[validation.ArticleRequest](r.Context())
	if !ok {
		internalError(w, r, "Failed to create article", errMissingBody)
		return
	}

	id, err := h.Repo.Create(r.Context(), input.Title, input.Body, input.Category, userID)
	if err != nil {
		internalError(w, r, "Failed to create article", err)
		return
	}
	metrics.IncArticlesCreated()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Article created successfully",
		"article": models.Article{
			ID:          id,
			Title:       input.Title,
			Body:        input.Body,
			Category:    input.Category,
			SubmittedBy: userID,
			CreatedAt:   time.Now(),
		},
	})
}
