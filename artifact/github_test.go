package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
)

// newTestGitHubStore creates a GitHubStore pointing to a test server.
func newTestGitHubStore(t *testing.T, handler http.Handler) (*GitHubStore, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)

	client := github.NewClient(nil)
	client.BaseURL, _ = client.BaseURL.Parse(server.URL + "/")

	return &GitHubStore{client: client}, server
}

func TestNewGitHubStore(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		s, err := NewGitHubStore("token123", "")
		if err != nil {
			t.Fatalf("NewGitHubStore: %v", err)
		}
		if got := s.client.BaseURL.String(); got != "https://api.github.com/" {
			t.Errorf("BaseURL = %q", got)
		}
	})

	t.Run("public API URL", func(t *testing.T) {
		s, err := NewGitHubStore("token123", "https://api.github.com")
		if err != nil {
			t.Fatalf("NewGitHubStore: %v", err)
		}
		if got := s.client.BaseURL.String(); got != "https://api.github.com/" {
			t.Errorf("BaseURL = %q", got)
		}
	})

	t.Run("enterprise API URL", func(t *testing.T) {
		s, err := NewGitHubStore("token123", "https://ghe.example.com/api/v3")
		if err != nil {
			t.Fatalf("NewGitHubStore: %v", err)
		}
		if got := s.client.BaseURL.String(); got != "https://ghe.example.com/api/v3/" {
			t.Errorf("BaseURL = %q", got)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := NewGitHubStore("", "")
		if !errors.Is(err, ErrNoToken) {
			t.Errorf("err = %v, want ErrNoToken", err)
		}
	})
}

func TestGitHubStore_ListRunArtifacts(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		var gotPath, gotPerPage string

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			gotPath = r.URL.Path
			gotPerPage = r.URL.Query().Get("per_page")
			list := &github.ArtifactList{
				TotalCount: github.Int64(2),
				Artifacts: []*github.Artifact{
					{
						ID:          github.Int64(11),
						Name:        github.String("coverage"),
						SizeInBytes: github.Int64(2048),
						CreatedAt:   &github.Timestamp{Time: created},
						WorkflowRun: &github.ArtifactWorkflowRun{
							ID:         github.Int64(42),
							HeadBranch: github.String("main"),
							HeadSHA:    github.String("abc123"),
						},
					},
					{
						ID:      github.Int64(12),
						Name:    github.String("logs"),
						Expired: github.Bool(true),
					},
				},
			}
			json.NewEncoder(w).Encode(list)
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		artifacts, err := store.ListRunArtifacts(context.Background(), testIdentity)
		if err != nil {
			t.Fatalf("ListRunArtifacts: %v", err)
		}

		if gotPath != "/repos/owner/repo/actions/runs/42/artifacts" {
			t.Errorf("path = %q", gotPath)
		}
		if gotPerPage != "100" {
			t.Errorf("per_page = %q, want 100", gotPerPage)
		}
		if len(artifacts) != 2 {
			t.Fatalf("got %d artifacts, want 2", len(artifacts))
		}

		first := artifacts[0]
		if first.ID != 11 || first.Name != "coverage" || first.SizeInBytes != 2048 {
			t.Errorf("first = %+v", first)
		}
		if first.CreatedAt == nil || !first.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, created)
		}
		if first.WorkflowRun == nil || first.WorkflowRun.ID != 42 || first.WorkflowRun.HeadSHA != "abc123" {
			t.Errorf("WorkflowRun = %+v", first.WorkflowRun)
		}

		second := artifacts[1]
		if second.Name != "logs" || !second.Expired {
			t.Errorf("second = %+v", second)
		}
		if second.WorkflowRun != nil {
			t.Errorf("second.WorkflowRun = %+v, want nil", second.WorkflowRun)
		}
	})

	t.Run("single request", func(t *testing.T) {
		calls := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			// Advertise a next page; it must not be fetched.
			w.Header().Set("Link", `<`+"http://"+r.Host+r.URL.Path+`?page=2>; rel="next"`)
			json.NewEncoder(w).Encode(&github.ArtifactList{
				Artifacts: []*github.Artifact{{ID: github.Int64(1), Name: github.String("a")}},
			})
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		artifacts, err := store.ListRunArtifacts(context.Background(), testIdentity)
		if err != nil {
			t.Fatalf("ListRunArtifacts: %v", err)
		}
		if len(artifacts) != 1 {
			t.Errorf("got %d artifacts, want 1", len(artifacts))
		}
		if calls != 1 {
			t.Errorf("requests = %d, want 1", calls)
		}
	})

	t.Run("run not found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		_, err := store.ListRunArtifacts(context.Background(), testIdentity)
		if !errors.Is(err, ErrRunNotFound) {
			t.Errorf("err = %v, want ErrRunNotFound", err)
		}
		var ghErr *github.ErrorResponse
		if !errors.As(err, &ghErr) || ghErr.Message != "Not Found" {
			t.Errorf("err does not keep the API response: %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		_, err := store.ListRunArtifacts(context.Background(), testIdentity)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "list workflow run artifacts") {
			t.Errorf("err = %v", err)
		}
		var ghErr *github.ErrorResponse
		if !errors.As(err, &ghErr) {
			t.Errorf("err does not wrap *github.ErrorResponse: %v", err)
		}
	})
}

func TestGitHubStore_DeleteArtifact(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotMethod, gotPath string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		if err := store.DeleteArtifact(context.Background(), testIdentity, 11); err != nil {
			t.Fatalf("DeleteArtifact: %v", err)
		}
		if gotMethod != http.MethodDelete {
			t.Errorf("method = %s", gotMethod)
		}
		if gotPath != "/repos/owner/repo/actions/artifacts/11" {
			t.Errorf("path = %q", gotPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		err := store.DeleteArtifact(context.Background(), testIdentity, 11)
		if !errors.Is(err, ErrArtifactNotFound) {
			t.Errorf("err = %v, want ErrArtifactNotFound", err)
		}
		if err == nil || !strings.Contains(err.Error(), "404 Not Found") {
			t.Errorf("err = %v, want the API message kept", err)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Must have admin rights to Repository."}`))
		})

		store, server := newTestGitHubStore(t, handler)
		defer server.Close()

		err := store.DeleteArtifact(context.Background(), testIdentity, 11)
		if err == nil || !strings.Contains(err.Error(), "delete artifact 11") {
			t.Errorf("err = %v", err)
		}
	})
}
