package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type mockProjectRepository struct {
	createFn        func(ctx context.Context, project *model.Project, tagNames []string) error
	updateFn        func(ctx context.Context, project *model.Project, tagNames []string) error
	deleteFn        func(ctx context.Context, projectID int64) error
	getByIDFn       func(ctx context.Context, projectID int64) (*model.Project, error)
	listPublishedFn func(ctx context.Context, categoryID *int64) ([]model.Project, error)
	listByUserFn    func(ctx context.Context, userID int64, publishedOnly bool) ([]model.Project, error)
	searchFn        func(ctx context.Context, query string, limit, offset int) ([]model.Project, int, error)
	ownerStatsFn    func(ctx context.Context, userID int64) (*model.DashboardStats, error)

	createTags []string
	updateTags []string
}

func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project, tagNames []string) error {
	m.createTags = tagNames
	if m.createFn != nil {
		return m.createFn(ctx, project, tagNames)
	}
	project.ID = 1
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *model.Project, tagNames []string) error {
	m.updateTags = tagNames
	if m.updateFn != nil {
		return m.updateFn(ctx, project, tagNames)
	}
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, projectID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, projectID)
	}
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, projectID int64) (*model.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, projectID)
	}
	return nil, model.ErrProjectNotFound
}

func (m *mockProjectRepository) ListPublished(ctx context.Context, categoryID *int64) ([]model.Project, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, categoryID)
	}
	return nil, nil
}

func (m *mockProjectRepository) ListByUser(ctx context.Context, userID int64, publishedOnly bool) ([]model.Project, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, publishedOnly)
	}
	return nil, nil
}

func (m *mockProjectRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.Project, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockProjectRepository) OwnerStats(ctx context.Context, userID int64) (*model.DashboardStats, error) {
	if m.ownerStatsFn != nil {
		return m.ownerStatsFn(ctx, userID)
	}
	return &model.DashboardStats{}, nil
}

type mockCategoryRepository struct {
	createFn  func(ctx context.Context, category *model.Category) error
	updateFn  func(ctx context.Context, category *model.Category) error
	deleteFn  func(ctx context.Context, id int64) error
	getByIDFn func(ctx context.Context, id int64) (*model.Category, error)
	listFn    func(ctx context.Context) ([]model.Category, error)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	category.ID = 1
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func adminUserRepo(adminID int64) *mockUserRepository {
	return &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if id == adminID {
				return &model.User{ID: id, IsAdmin: true, FirstName: "Ed"}, nil
			}
			return &model.User{ID: id, FirstName: "Visitor"}, nil
		},
	}
}

func newProjectService(repo *mockProjectRepository, categoryRepo *mockCategoryRepository, userRepo *mockUserRepository) *ProjectService {
	return NewProjectService(repo, categoryRepo, userRepo, &mockEngagementRepository{}, zerolog.Nop())
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "go", []string{"go"}},
		{"trims and drops empties", " go , web ,, backend ", []string{"go", "web", "backend"}},
		{"dedupes preserving order", "go,web,go,api,web", []string{"go", "web", "api"}},
		{"case sensitive", "Go,go", []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProjectService_Create_RequiresAdmin(t *testing.T) {
	repo := &mockProjectRepository{}
	svc := newProjectService(repo, &mockCategoryRepository{}, adminUserRepo(1))

	_, err := svc.Create(context.Background(), 2, model.ProjectRequest{
		Title:       "Portfolio",
		Description: "A site",
	})
	if !errors.Is(err, model.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-admin, got %v", err)
	}
	if repo.createTags != nil {
		t.Error("repository should not be called for a forbidden actor")
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	longTitle := make([]byte, model.MaxProjectTitleLength+1)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	tests := []struct {
		name string
		req  model.ProjectRequest
		want error
	}{
		{"missing title", model.ProjectRequest{Description: "d"}, model.ErrTitleRequired},
		{"blank title", model.ProjectRequest{Title: "   ", Description: "d"}, model.ErrTitleRequired},
		{"missing description", model.ProjectRequest{Title: "t"}, model.ErrDescriptionRequired},
		{"title too long", model.ProjectRequest{Title: string(longTitle), Description: "d"}, model.ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newProjectService(&mockProjectRepository{}, &mockCategoryRepository{}, adminUserRepo(1))
			_, err := svc.Create(context.Background(), 1, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestProjectService_Create_MultibyteLengthLimits(t *testing.T) {
	repo := &mockProjectRepository{
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID}, nil
		},
	}
	svc := newProjectService(repo, &mockCategoryRepository{}, adminUserRepo(1))

	// Accented text at the character limit must pass even though its byte
	// length is twice the limit.
	_, err := svc.Create(context.Background(), 1, model.ProjectRequest{
		Title:       strings.Repeat("é", model.MaxProjectTitleLength),
		Description: strings.Repeat("ç", model.MaxProjectDescriptionLength),
	})
	if err != nil {
		t.Fatalf("expected limit-length multibyte fields to pass, got %v", err)
	}

	_, err = svc.Create(context.Background(), 1, model.ProjectRequest{
		Title:       strings.Repeat("é", model.MaxProjectTitleLength+1),
		Description: "d",
	})
	if !errors.Is(err, model.ErrFieldTooLong) {
		t.Errorf("expected ErrFieldTooLong one character over the limit, got %v", err)
	}
}

func TestProjectService_Create_CategorySentinel(t *testing.T) {
	var captured *model.Project
	repo := &mockProjectRepository{
		createFn: func(ctx context.Context, project *model.Project, tagNames []string) error {
			project.ID = 5
			captured = project
			return nil
		},
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID}, nil
		},
	}
	categoryRepo := &mockCategoryRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Category, error) {
			t.Error("category lookup should be skipped for the none sentinel")
			return nil, model.ErrCategoryNotFound
		},
	}
	svc := newProjectService(repo, categoryRepo, adminUserRepo(1))

	_, err := svc.Create(context.Background(), 1, model.ProjectRequest{
		Title:       "Portfolio",
		Description: "A site",
		CategoryID:  model.CategoryNone,
		Tags:        "go, web, go",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured.CategoryID != nil {
		t.Errorf("expected nil category, got %v", *captured.CategoryID)
	}
	if !reflect.DeepEqual(repo.createTags, []string{"go", "web"}) {
		t.Errorf("expected deduped tags, got %v", repo.createTags)
	}
}

func TestProjectService_Update_OwnershipRequired(t *testing.T) {
	repo := &mockProjectRepository{
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID, UserID: 1, Title: "Mine", Description: "d"}, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			// Both users are admins; only user 1 owns the project.
			return &model.User{ID: id, IsAdmin: true}, nil
		},
	}
	svc := newProjectService(repo, &mockCategoryRepository{}, userRepo)

	_, _, err := svc.Update(context.Background(), 10, 2, model.ProjectRequest{Title: "t", Description: "d"})
	if !errors.Is(err, model.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner admin, got %v", err)
	}
}

func TestProjectService_Update_DisplacedMedia(t *testing.T) {
	oldImage := "projects/old_image.jpg"
	newImage := "projects/new_image.jpg"
	repo := &mockProjectRepository{
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID, UserID: 1, Title: "Mine", Description: "d", ImagePath: &oldImage}, nil
		},
	}
	svc := newProjectService(repo, &mockCategoryRepository{}, adminUserRepo(1))

	_, displaced, err := svc.Update(context.Background(), 10, 1, model.ProjectRequest{
		Title:       "Mine",
		Description: "d",
		ImagePath:   &newImage,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(displaced, []string{oldImage}) {
		t.Errorf("expected displaced [%s], got %v", oldImage, displaced)
	}
}

func TestProjectService_GetByID_UnpublishedVisibility(t *testing.T) {
	repo := &mockProjectRepository{
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			return &model.Project{ID: projectID, UserID: 1, IsPublished: false}, nil
		},
	}
	svc := newProjectService(repo, &mockCategoryRepository{}, adminUserRepo(1))

	t.Run("anonymous viewer", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, nil)
		if !errors.Is(err, model.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("other user", func(t *testing.T) {
		viewer := int64(2)
		_, err := svc.GetByID(context.Background(), 10, &viewer)
		if !errors.Is(err, model.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("owner", func(t *testing.T) {
		viewer := int64(1)
		project, err := svc.GetByID(context.Background(), 10, &viewer)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if project.ID != 10 {
			t.Errorf("expected project 10, got %d", project.ID)
		}
	})
}

func TestProjectService_Search_Paging(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockProjectRepository{
		searchFn: func(ctx context.Context, query string, limit, offset int) ([]model.Project, int, error) {
			gotLimit, gotOffset = limit, offset
			page := make([]model.Project, limit)
			return page, 25, nil
		},
	}
	svc := newProjectService(repo, &mockCategoryRepository{}, adminUserRepo(1))

	result, err := svc.Search(context.Background(), "go", 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotLimit != model.SearchPageSize || gotOffset != model.SearchPageSize {
		t.Errorf("expected limit=%d offset=%d, got limit=%d offset=%d",
			model.SearchPageSize, model.SearchPageSize, gotLimit, gotOffset)
	}
	if !result.HasMore {
		t.Error("expected HasMore for 25 total matches on page 2")
	}

	// Pages below 1 clamp to the first page.
	if _, err := svc.Search(context.Background(), "go", 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset 0 for clamped page, got %d", gotOffset)
	}
}

func TestProjectService_Stats_RequiresAdmin(t *testing.T) {
	svc := newProjectService(&mockProjectRepository{}, &mockCategoryRepository{}, adminUserRepo(1))

	if _, err := svc.Stats(context.Background(), 2); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Stats(context.Background(), 1); err != nil {
		t.Errorf("expected no error for admin, got %v", err)
	}
}
