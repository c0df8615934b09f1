// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/arisatria5/pilketos-smpn4/models"
)

const commitMessage = "Update ballot ledger"

// GitHubStore keeps the ledger as a JSON file in a GitHub repository,
// using the contents API. The blob SHA is the version marker: an
// update supplies the SHA it read, and GitHub rejects the write with
// 409 when the file has moved on.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	path   string
}

// NewGitHubStore builds a store for the given "owner/repo" and file
// path, authenticating with a personal access token.
func NewGitHubStore(ctx context.Context, token, ownerRepo, path string) (*GitHubStore, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("github repo must be owner/name, got %q", ownerRepo)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	return &GitHubStore{client: client, owner: owner, repo: repo, path: path}, nil
}

// NewGitHubStoreWithClient is the test seam: it accepts a
// pre-configured client (e.g. pointed at a fake API server).
func NewGitHubStoreWithClient(client *github.Client, owner, repo, path string) *GitHubStore {
	return &GitHubStore{client: client, owner: owner, repo: repo, path: path}
}

func (s *GitHubStore) Load(ctx context.Context) (*models.BallotLedger, string, error) {
	fc, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.path, nil)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s from github: %w", s.path, err)
	}
	if fc == nil {
		return nil, "", fmt.Errorf("%s is a directory, not a ledger file", s.path)
	}

	raw, err := fc.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("decode %s content: %w", s.path, err)
	}

	var doc models.BallotLedger
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, "", fmt.Errorf("decode ledger document: %w", err)
	}
	return &doc, fc.GetSHA(), nil
}

func (s *GitHubStore) Save(ctx context.Context, doc *models.BallotLedger, expectedVersion string) (string, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode ledger document: %w", err)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(commitMessage),
		Content: raw,
	}

	var (
		res  *github.RepositoryContentResponse
		resp *github.Response
	)
	if expectedVersion == "" {
		res, resp, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, s.path, opts)
	} else {
		opts.SHA = github.String(expectedVersion)
		res, resp, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, s.path, opts)
	}
	if err != nil {
		if isVersionMismatch(resp, err) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("write %s to github: %w", s.path, err)
	}
	return res.Content.GetSHA(), nil
}

// isVersionMismatch recognizes the responses GitHub uses when the
// supplied SHA no longer matches the file: 409 for a stale SHA, 422
// when the SHA is missing or the file already exists on create.
func isVersionMismatch(resp *github.Response, err error) bool {
	if resp != nil &&
		(resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		return code == http.StatusConflict || code == http.StatusUnprocessableEntity
	}
	return false
}
