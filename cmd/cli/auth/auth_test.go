package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/newsdesk/cmd/cli/config"
)

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var in credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email != "a@x.com" || in.Password != "pw123456" {
			t.Errorf("unexpected credentials: %+v", in)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Login successful", "token": "tok-abc"})
	}))
	defer srv.Close()
	t.Setenv("NEWSDESK_API_URL", srv.URL)
	t.Setenv("NEWSDESK_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	var out bytes.Buffer
	cmd := loginCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("pw123456\n"))
	_ = cmd.Flags().Set("email", "a@x.com")
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("login: %v", err)
	}

	token, err := config.ReadToken()
	if err != nil || token != "tok-abc" {
		t.Errorf("stored token: got %q, err %v", token, err)
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid email or password"}`))
	}))
	defer srv.Close()
	t.Setenv("NEWSDESK_API_URL", srv.URL)
	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("NEWSDESK_TOKEN_FILE", tokenFile)

	cmd := loginCmd()
	cmd.SetOut(&bytes.Buffer{})
	_ = cmd.Flags().Set("email", "a@x.com")
	_ = cmd.Flags().Set("password", "wrong")
	err := cmd.RunE(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "Invalid email or password") {
		t.Fatalf("expected rejection, got %v", err)
	}
	if _, statErr := os.Stat(tokenFile); !os.IsNotExist(statErr) {
		t.Error("no token should be stored after a rejected login")
	}
}

func TestRegister_PromptsForEmailAndPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email != "a@x.com" || in.Password != "pw123456" {
			t.Errorf("unexpected credentials: %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "User registered successfully",
			"user":    map[string]interface{}{"id": 1, "email": in.Email},
		})
	}))
	defer srv.Close()
	t.Setenv("NEWSDESK_API_URL", srv.URL)

	var out bytes.Buffer
	cmd := registerCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("a@x.com\npw123456"))
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out.String(), "Registered a@x.com (id 1)") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogout_RemovesToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("NEWSDESK_TOKEN_FILE", tokenFile)
	if err := config.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}

	cmd := logoutCmd()
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := config.ReadToken(); err != config.ErrNoToken {
		t.Errorf("expected ErrNoToken after logout, got %v", err)
	}
	// Logging out twice is fine.
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
