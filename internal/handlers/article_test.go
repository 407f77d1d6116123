package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/newsdesk/internal/auth"
	"github.com/crucial707/newsdesk/internal/middleware"
	"github.com/crucial707/newsdesk/internal/repo"
	"github.com/crucial707/newsdesk/internal/validation"
)

var articleColumns = []string{"id", "title", "body", "category", "submitted_by", "created_at"}

func createArticleEndpoint(db *sql.DB, tokens *auth.TokenService) http.Handler {
	h := &ArticleHandler{Repo: repo.NewArticleRepo(db)}
	return middleware.JWTMiddleware(tokens)(
		middleware.ValidateBody[validation.ArticleRequest](validation.New())(
			http.HandlerFunc(h.CreateArticle)))
}

func TestArticleHandler_ListArticles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	a := time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(articleColumns).
			AddRow(2, "Article B", "b", "News", 1, a.Add(time.Minute)).
			AddRow(1, "Article A", "a", "News", 1, a))

	h := &ArticleHandler{Repo: repo.NewArticleRepo(db)}
	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest("GET", "/articles", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListArticles status: got %d, want 200", rr.Code)
	}
	var list []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		SubmittedBy int    `json:"submitted_by"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Article B" || list[1].Title != "Article A" || list[0].SubmittedBy != 1 {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleHandler_ListArticles_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM articles`).WillReturnRows(sqlmock.NewRows(articleColumns))

	h := &ArticleHandler{Repo: repo.NewArticleRepo(db)}
	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest("GET", "/articles", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListArticles status: got %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body: got %q, want []", got)
	}
}

func TestArticleHandler_ListArticles_StoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM articles`).WillReturnError(errors.New("relation \"articles\" does not exist"))

	h := &ArticleHandler{Repo: repo.NewArticleRepo(db)}
	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest("GET", "/articles", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("ListArticles status: got %d, want 500", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "Failed to fetch articles" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestArticleHandler_CreateArticle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO articles \(title, body, category, submitted_by\)`).
		WithArgs("Hello World", "x", "Tech", 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title":"Hello World","body":"x","category":"Tech"}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	createArticleEndpoint(db, tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateArticle status: got %d, want 201 (body %s)", rr.Code, rr.Body)
	}
	var out struct {
		Message string `json:"message"`
		Article struct {
			ID          int       `json:"id"`
			Title       string    `json:"title"`
			SubmittedBy int       `json:"submitted_by"`
			CreatedAt   time.Time `json:"created_at"`
		} `json:"article"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Message != "Article created successfully" || out.Article.ID != 11 || out.Article.SubmittedBy != 7 || out.Article.CreatedAt.IsZero() {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleHandler_CreateArticle_NoToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title":"Hello World","body":"x","category":"Tech"}`))
	rr := httptest.NewRecorder()
	createArticleEndpoint(db, tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("CreateArticle status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleHandler_CreateArticle_TitleTooShort(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title":"Hell","body":"x","category":"Tech"}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	createArticleEndpoint(db, tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("CreateArticle status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestArticleHandler_CreateArticle_StoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO articles`).
		WithArgs("Hello World", "x", "Tech", 7).
		WillReturnError(errors.New("insert or update on table \"articles\" violates foreign key constraint"))

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("POST", "/articles", strings.NewReader(`{"title":"Hello World","body":"x","category":"Tech"}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	createArticleEndpoint(db, tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("CreateArticle status: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "foreign key") {
		t.Errorf("internal error leaked to client: %s", rr.Body)
	}
}
