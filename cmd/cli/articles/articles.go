package articles

import (
	"fmt"
	"time"

	"github.com/crucial707/newsdesk/cmd/cli/client"
	"github.com/crucial707/newsdesk/cmd/cli/config"
	"github.com/crucial707/newsdesk/cmd/cli/output"
	"github.com/crucial707/newsdesk/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Articles
// ==========================
func InitArticles(rootCmd *cobra.Command) {
	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "List and create articles",
	}

	articlesCmd.AddCommand(
		listArticlesCmd(),
		createArticleCmd(),
	)

	rootCmd.AddCommand(articlesCmd)
}

// ==========================
// LIST
// ==========================
func listArticlesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []models.Article
			if err := client.Do("GET", "/articles", "", nil, &list); err != nil {
				return err
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, a := range list {
				rows = append(rows, []interface{}{a.ID, a.Title, a.Category, a.SubmittedBy, a.CreatedAt.Local().Format(time.DateTime)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Category", "Submitted By", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createArticleCmd() *cobra.Command {
	var title, body, category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an article (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return err
			}

			payload := map[string]string{
				"title":    title,
				"body":     body,
				"category": category,
			}
			var out struct {
				Article models.Article `json:"article"`
			}
			if err := client.Do("POST", "/articles", token, payload, &out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created article %d: %s\n", out.Article.ID, out.Article.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "article title (5-100 characters)")
	cmd.Flags().StringVar(&body, "body", "", "article body")
	cmd.Flags().StringVar(&category, "category", "", "article category (3-50 characters)")
	return cmd
}
