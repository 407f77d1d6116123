package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/newsdesk/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ArticleRepo struct {
	DB *sql.DB
}

func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{DB: db}
}

// ========================
// CREATE ARTICLE
// ========================

// Create inserts an article and returns its id. created_at is left to the
// column default.
func (r *ArticleRepo) Create(ctx context.Context, title, body, category string, submittedBy int) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO articles (title, body, category, submitted_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		title, body, category, submittedBy,
	).Scan(&id)
	return id, err
}

// ========================
// LIST ALL ARTICLES
// ========================

// List returns every article, newest first. Ties on created_at fall back to id
// so rows inserted in the same transaction still come out newest first.
func (r *ArticleRepo) List(ctx context.Context) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, body, category, submitted_by, created_at
		 FROM articles
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.SubmittedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ========================
// LIST WITH SUBMITTERS
// ========================

// ListWithSubmitters is List joined with each submitter's email.
func (r *ArticleRepo) ListWithSubmitters(ctx context.Context) ([]models.ArticleWithUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.title, a.body, a.category, a.submitted_by, a.created_at, u.email
		 FROM articles a
		 JOIN users u ON u.id = a.submitted_by
		 ORDER BY a.created_at DESC, a.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.ArticleWithUser{}
	for rows.Next() {
		var a models.ArticleWithUser
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.SubmittedBy, &a.CreatedAt, &a.SubmitterEmail); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
