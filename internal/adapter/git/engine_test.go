package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bkyoung/lgtm/internal/adapter/git"
	"github.com/bkyoung/lgtm/internal/domain"
)

func TestEngineCurrentBranch(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	repo := initRepoWithCommit(t, tmp)
	if err := checkoutBranch(repo, "feature"); err != nil {
		t.Fatalf("checkout error: %v", err)
	}

	engine := git.NewEngine(tmp)
	branch, err := engine.CurrentBranch(ctx)
	if err != nil {
		t.Fatalf("CurrentBranch returned error: %v", err)
	}
	if branch != "feature" {
		t.Fatalf("expected branch feature, got %q", branch)
	}
}

func TestEngineCurrentBranchDetachedHead(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	repo := initRepoWithCommit(t, tmp)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("head error: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree error: %v", err)
	}
	if err := worktree.Checkout(&goGit.CheckoutOptions{Hash: head.Hash()}); err != nil {
		t.Fatalf("detach error: %v", err)
	}

	engine := git.NewEngine(tmp)
	if _, err := engine.CurrentBranch(ctx); err == nil {
		t.Fatal("expected detached HEAD error")
	}
}

func TestEngineRepositoryFromRemote(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	repo := initRepoWithCommit(t, tmp)
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octocat/hello-world.git"},
	})
	if err != nil {
		t.Fatalf("create remote error: %v", err)
	}

	engine := git.NewEngine(tmp)
	identity, err := engine.Repository(ctx, "origin")
	if err != nil {
		t.Fatalf("Repository returned error: %v", err)
	}
	if identity.Owner != "octocat" || identity.Name != "hello-world" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestEngineRepositoryMissingRemote(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	initRepoWithCommit(t, tmp)

	engine := git.NewEngine(tmp)
	_, err := engine.Repository(ctx, "origin")
	if !errors.Is(err, domain.ErrNoGitHubRemote) {
		t.Fatalf("expected ErrNoGitHubRemote, got %v", err)
	}
}

func TestEngineRepositoryOutsideGitRepo(t *testing.T) {
	ctx := context.Background()

	engine := git.NewEngine(t.TempDir())
	_, err := engine.Repository(ctx, "origin")
	if !errors.Is(err, domain.ErrNoGitHubRemote) {
		t.Fatalf("expected ErrNoGitHubRemote, got %v", err)
	}
}

func TestParseGitHubRemote(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		owner string
		repo  string
	}{
		{name: "ssh", url: "git@github.com:octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{name: "ssh without suffix", url: "git@github.com:octocat/hello-world", owner: "octocat", repo: "hello-world"},
		{name: "ssh scheme", url: "ssh://git@github.com/octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{name: "https", url: "https://github.com/octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{name: "https without suffix", url: "https://github.com/octocat/hello-world", owner: "octocat", repo: "hello-world"},
		{name: "https trailing slash", url: "https://github.com/octocat/hello-world/", owner: "octocat", repo: "hello-world"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := git.ParseGitHubRemote(tc.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if identity.Owner != tc.owner || identity.Name != tc.repo {
				t.Fatalf("parsed %+v, want %s/%s", identity, tc.owner, tc.repo)
			}
		})
	}
}

func TestParseGitHubRemoteRejectsForeignHosts(t *testing.T) {
	for _, url := range []string{
		"git@gitlab.com:group/project.git",
		"https://example.com/octocat/hello-world",
		"not a url",
		"",
	} {
		if _, err := git.ParseGitHubRemote(url); !errors.Is(err, domain.ErrNoGitHubRemote) {
			t.Errorf("expected ErrNoGitHubRemote for %q, got %v", url, err)
		}
	}
}

func initRepoWithCommit(t *testing.T, dir string) *goGit.Repository {
	t.Helper()

	repo, err := goGit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	writeFile(t, dir, "main.go", "package main\n")
	if _, err := worktree.Add("main.go"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if _, err := worktree.Commit("initial", &goGit.CommitOptions{Author: defaultSignature()}); err != nil {
		t.Fatalf("commit error: %v", err)
	}
	return repo
}

func checkoutBranch(repo *goGit.Repository, name string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return worktree.Checkout(&goGit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write file error: %v", err)
	}
}

func defaultSignature() *object.Signature {
	return &object.Signature{
		Name:  "tester",
		Email: "tester@example.com",
		When:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}
