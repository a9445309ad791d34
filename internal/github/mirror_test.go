package github

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-github/v57/github"
	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type fakeRepositories struct {
	getFn           func(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	listLanguagesFn func(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error)
	getReadmeFn     func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error)
}

func (f *fakeRepositories) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	if f.getFn != nil {
		return f.getFn(ctx, owner, repo)
	}
	return nil, nil, errors.New("unreachable")
}

func (f *fakeRepositories) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error) {
	if f.listLanguagesFn != nil {
		return f.listLanguagesFn(ctx, owner, repo)
	}
	return nil, nil, errors.New("unreachable")
}

func (f *fakeRepositories) GetReadme(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
	if f.getReadmeFn != nil {
		return f.getReadmeFn(ctx, owner, repo, opts)
	}
	return nil, nil, errors.New("unreachable")
}

func testMirror(repos repositoriesAPI, pinned []string) *Mirror {
	return &Mirror{repos: repos, owner: "edgomes", pinned: pinned, log: zerolog.Nop()}
}

func repoFixture(name string) *github.Repository {
	return &github.Repository{
		Name:            github.String(name),
		Description:     github.String("desc of " + name),
		HTMLURL:         github.String("https://github.com/edgomes/" + name),
		StargazersCount: github.Int(4),
		ForksCount:      github.Int(2),
		Language:        github.String("JavaScript"),
	}
}

func TestMirror_Featured_PositionalIDs(t *testing.T) {
	repos := &fakeRepositories{
		getFn: func(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
			return repoFixture(repo), nil, nil
		},
		listLanguagesFn: func(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error) {
			return map[string]int{"JavaScript": 1200}, nil, nil
		},
		getReadmeFn: func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
			return &github.RepositoryContent{Content: github.String("# " + repo)}, nil, nil
		},
	}
	m := testMirror(repos, []string{"biblioteca", "sistema-solar", "exercicios_js"})

	projections := m.Featured(context.Background())
	if len(projections) != 3 {
		t.Fatalf("expected 3 projections, got %d", len(projections))
	}
	for i, p := range projections {
		if p.ID != int64(i+1) {
			t.Errorf("projection %d has id %d, want %d", i, p.ID, i+1)
		}
		if p.LikeCount != 0 || p.CommentCount != 0 || p.Liked {
			t.Errorf("projection %d engagement must be frozen at zero", i)
		}
	}
	if projections[1].Title != "Sistema Solar" {
		t.Errorf("expected prettified title, got %q", projections[1].Title)
	}
	if projections[2].Title != "Exercicios Js" {
		t.Errorf("expected prettified title, got %q", projections[2].Title)
	}
}

func TestMirror_Featured_SkipsUnreachableRepos(t *testing.T) {
	repos := &fakeRepositories{
		getFn: func(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
			if repo == "broken" {
				return nil, nil, errors.New("boom")
			}
			return repoFixture(repo), nil, nil
		},
		listLanguagesFn: func(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error) {
			return nil, nil, errors.New("rate limited")
		},
		getReadmeFn: func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
			return nil, nil, errors.New("no readme")
		},
	}
	m := testMirror(repos, []string{"alpha", "broken", "omega"})

	projections := m.Featured(context.Background())
	if len(projections) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(projections))
	}

	// Ids stay contiguous after the skip.
	if projections[0].ID != 1 || projections[1].ID != 2 {
		t.Errorf("expected ids 1,2 got %d,%d", projections[0].ID, projections[1].ID)
	}
	if projections[1].Title != "Omega" {
		t.Errorf("expected Omega second, got %q", projections[1].Title)
	}

	// Failed metadata calls degrade the fields, not the projection.
	if projections[0].Languages != nil {
		t.Error("expected no languages after lookup failure")
	}
	if projections[0].Content != nil {
		t.Error("expected no readme content after lookup failure")
	}
}

func TestMirror_Featured_FallbackWhenAllFail(t *testing.T) {
	m := testMirror(&fakeRepositories{}, []string{"biblioteca", "spectra"})

	projections := m.Featured(context.Background())
	if len(projections) != 2 {
		t.Fatalf("expected fallback for every pinned repo, got %d", len(projections))
	}
	if projections[0].Title != "Biblioteca" || projections[0].ID != 1 {
		t.Errorf("unexpected first fallback projection %+v", projections[0])
	}
	if projections[1].GithubLink != "https://github.com/edgomes/spectra" {
		t.Errorf("unexpected fallback link %q", projections[1].GithubLink)
	}
}

func TestMirror_ProjectionByID(t *testing.T) {
	repos := &fakeRepositories{
		getFn: func(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
			return repoFixture(repo), nil, nil
		},
		listLanguagesFn: func(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error) {
			return nil, nil, nil
		},
		getReadmeFn: func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
			return nil, nil, errors.New("no readme")
		},
	}
	m := testMirror(repos, []string{"alpha", "beta"})

	p, err := m.ProjectionByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Title != "Beta" {
		t.Errorf("expected Beta, got %q", p.Title)
	}

	for _, id := range []int64{0, -1, 3} {
		if _, err := m.ProjectionByID(context.Background(), id); !errors.Is(err, model.ErrProjectionNotFound) {
			t.Errorf("id %d: expected ErrProjectionNotFound, got %v", id, err)
		}
	}
}

func TestMirror_ReadmeExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a", readmeExcerptLength+100)
	repos := &fakeRepositories{
		getReadmeFn: func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
			return &github.RepositoryContent{Content: github.String(long)}, nil, nil
		},
	}
	m := testMirror(repos, nil)

	excerpt := m.readmeExcerpt(context.Background(), "alpha")
	if len(excerpt) != readmeExcerptLength+3 {
		t.Errorf("expected %d chars plus ellipsis, got %d", readmeExcerptLength, len(excerpt))
	}
	if !strings.HasSuffix(excerpt, "...") {
		t.Error("expected truncated excerpt to end with ellipsis")
	}
}

func TestMirror_ReadmeExcerptMultibyteBoundary(t *testing.T) {
	long := strings.Repeat("ç", readmeExcerptLength+100)
	repos := &fakeRepositories{
		getReadmeFn: func(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
			return &github.RepositoryContent{Content: github.String(long)}, nil, nil
		},
	}
	m := testMirror(repos, nil)

	excerpt := m.readmeExcerpt(context.Background(), "alpha")
	if !utf8.ValidString(excerpt) {
		t.Error("excerpt contains a split multibyte character")
	}
	if got := utf8.RuneCountInString(excerpt); got != readmeExcerptLength+3 {
		t.Errorf("expected %d runes plus ellipsis, got %d", readmeExcerptLength, got)
	}
}
