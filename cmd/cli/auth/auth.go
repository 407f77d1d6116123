package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crucial707/newsdesk/cmd/cli/client"
	"github.com/crucial707/newsdesk/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitAuth registers register, login and logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := completeCredentials(cmd, &creds); err != nil {
				return err
			}

			var out struct {
				User struct {
					ID    int    `json:"id"`
					Email string `json:"email"`
				} `json:"user"`
			}
			if err := client.Do("POST", "/auth/register", "", creds, &out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d). You can now log in.\n", out.User.Email, out.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when omitted)")
	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := completeCredentials(cmd, &creds); err != nil {
				return err
			}

			var out struct {
				Token string `json:"token"`
			}
			if err := client.Do("POST", "/auth/login", "", creds, &out); err != nil {
				return err
			}
			if out.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}
			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when omitted)")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// completeCredentials prompts for whatever the flags left empty. Passwords are
// read without echo when stdin is a terminal.
func completeCredentials(cmd *cobra.Command, creds *credentials) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if creds.Email == "" {
		fmt.Fprint(out, "Email: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		creds.Email = line
	}
	if creds.Password == "" {
		fmt.Fprint(out, "Password: ")
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return err
			}
			creds.Password = string(b)
		} else {
			line, err := readLine(in)
			if err != nil {
				return err
			}
			creds.Password = line
		}
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
