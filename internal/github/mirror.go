package github

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-github/v57/github"
	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
)

// readmeExcerptLength bounds the content carried into a projection.
const readmeExcerptLength = 500

// repositoriesAPI is the slice of the GitHub Repositories service the
// mirror uses. *github.RepositoriesService satisfies it.
type repositoriesAPI interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error)
	GetReadme(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error)
}

// Mirror exposes the pinned repositories as showcase projections.
type Mirror struct {
	repos  repositoriesAPI
	owner  string
	pinned []string
	log    zerolog.Logger
}

func NewMirror(client *github.Client, owner string, pinned []string, log zerolog.Logger) *Mirror {
	return &Mirror{repos: client.Repositories, owner: owner, pinned: pinned, log: log}
}

// Featured returns one projection per reachable pinned repository, in list
// order with 1-based positional ids. It never returns an error: a repo
// that cannot be fetched is skipped, and if nothing at all is reachable
// the static fallback list is returned so the page always renders.
func (m *Mirror) Featured(ctx context.Context) []model.RepoProjection {
	projections := make([]model.RepoProjection, 0, len(m.pinned))
	for _, name := range m.pinned {
		p, err := m.project(ctx, name)
		if err != nil {
			m.log.Warn().Err(err).Str("repo", name).Msg("skipping unreachable repository")
			continue
		}
		p.ID = int64(len(projections) + 1)
		projections = append(projections, *p)
	}

	if len(projections) == 0 && len(m.pinned) > 0 {
		m.log.Warn().Msg("github unreachable, serving static showcase fallback")
		return m.fallback()
	}
	return projections
}

// ProjectionByID resolves a positional id from the current Featured list.
// Ids are not stable across pinned-list edits or API outages.
func (m *Mirror) ProjectionByID(ctx context.Context, id int64) (*model.RepoProjection, error) {
	projections := m.Featured(ctx)
	if id < 1 || id > int64(len(projections)) {
		return nil, model.ErrProjectionNotFound
	}
	return &projections[id-1], nil
}

// project fetches one repository and reshapes it. Metadata beyond the core
// repo record is best-effort; a failed languages or readme call degrades
// that field rather than the whole projection.
func (m *Mirror) project(ctx context.Context, name string) (*model.RepoProjection, error) {
	repo, _, err := m.repos.Get(ctx, m.owner, name)
	if err != nil {
		return nil, err
	}

	p := &model.RepoProjection{
		Title:       prettifyName(repo.GetName()),
		Description: repo.GetDescription(),
		GithubLink:  repo.GetHTMLURL(),
		IsPublished: true,
		IsFeatured:  true,
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Language:    repo.GetLanguage(),
	}
	if p.Description == "" {
		p.Description = "Project hosted on GitHub."
	}
	if homepage := repo.GetHomepage(); homepage != "" {
		p.DemoLink = &homepage
	}
	if created := repo.GetCreatedAt(); !created.IsZero() {
		t := created.Time
		p.CreatedAt = &t
	}
	if pushed := repo.GetPushedAt(); !pushed.IsZero() {
		t := pushed.Time
		p.UpdatedAt = &t
	}

	if languages, _, err := m.repos.ListLanguages(ctx, m.owner, name); err != nil {
		m.log.Debug().Err(err).Str("repo", name).Msg("languages unavailable")
	} else {
		p.Languages = languages
	}

	if excerpt := m.readmeExcerpt(ctx, name); excerpt != "" {
		p.Content = &excerpt
	}

	return p, nil
}

func (m *Mirror) readmeExcerpt(ctx context.Context, name string) string {
	readme, _, err := m.repos.GetReadme(ctx, m.owner, name, nil)
	if err != nil {
		m.log.Debug().Err(err).Str("repo", name).Msg("readme unavailable")
		return ""
	}
	content, err := readme.GetContent()
	if err != nil {
		m.log.Debug().Err(err).Str("repo", name).Msg("readme not decodable")
		return ""
	}
	content = strings.TrimSpace(content)
	// Truncate on a rune boundary so a multibyte character is never split.
	if utf8.RuneCountInString(content) > readmeExcerptLength {
		content = string([]rune(content)[:readmeExcerptLength]) + "..."
	}
	return content
}

// fallback builds projections from the pinned names alone.
func (m *Mirror) fallback() []model.RepoProjection {
	projections := make([]model.RepoProjection, 0, len(m.pinned))
	for i, name := range m.pinned {
		projections = append(projections, model.RepoProjection{
			ID:          int64(i + 1),
			Title:       prettifyName(name),
			Description: "Project hosted on GitHub.",
			GithubLink:  "https://github.com/" + m.owner + "/" + name,
			IsPublished: true,
			IsFeatured:  true,
		})
	}
	return projections
}

// prettifyName turns a repository slug like "site-com-bootstrap" into
// "Site Com Bootstrap".
func prettifyName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
