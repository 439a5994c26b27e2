package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrFileURLRequired     = errors.New("file URL is required")
	ErrVisibilityRequired  = errors.New("resource must be visible to at least one role")
	ErrResourceNotFound    = errors.New("resource not found")
)

const defaultResourceCategory = "General"

// ResourceKind is how a resource is opened.
type ResourceKind string

const (
	ResourceKindPDF  ResourceKind = "pdf"
	ResourceKindLink ResourceKind = "link"
)

// ResourceItem is a resource prepared for the library view.
type ResourceItem struct {
	models.Resource
	Kind        ResourceKind
	AccessLevel models.Role
}

// ResourceLibrary is the resource list with per-role visibility counts.
type ResourceLibrary struct {
	Items        []ResourceItem
	VisibleUser  int
	VisibleAdmin int
}

type ResourceService struct {
	backend BackendFor
}

func NewResourceService(backend BackendFor) *ResourceService {
	return &ResourceService{backend: backend}
}

// List returns resources published for visibleTo, or all resources when
// visibleTo is empty.
func (s *ResourceService) List(ctx context.Context, token string, visibleTo models.Role) (*ResourceLibrary, error) {
	resources, err := s.backend(token).ListResources(ctx, remote.ResourceQuery{VisibleTo: visibleTo})
	if err != nil {
		return nil, err
	}

	lib := &ResourceLibrary{Items: make([]ResourceItem, 0, len(resources))}
	for _, r := range resources {
		if visibleTo != "" && !r.VisibleToRole(visibleTo) {
			continue
		}
		if r.VisibleToRole(models.RoleUser) {
			lib.VisibleUser++
		}
		if r.VisibleToRole(models.RoleAdmin) {
			lib.VisibleAdmin++
		}
		lib.Items = append(lib.Items, libraryItem(r))
	}
	return lib, nil
}

func libraryItem(r models.Resource) ResourceItem {
	item := ResourceItem{
		Resource:    r,
		Kind:        ResourceKindLink,
		AccessLevel: models.RoleAdmin,
	}
	if r.FileURL != "" {
		item.Kind = ResourceKindPDF
	}
	if r.Category == "" {
		item.Category = defaultResourceCategory
	}
	if r.VisibleToRole(models.RoleUser) {
		item.AccessLevel = models.RoleUser
	}
	return item
}

// UploadResourceInput represents input for publishing a resource
type UploadResourceInput struct {
	Title       string
	Description string
	FileURL     string
	VisibleTo   []models.Role
	Language    string
}

func (s *ResourceService) Upload(ctx context.Context, token string, input UploadResourceInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	fileURL := strings.TrimSpace(input.FileURL)
	switch {
	case title == "":
		return ErrTitleRequired
	case description == "":
		return ErrDescriptionRequired
	case fileURL == "":
		return ErrFileURLRequired
	}

	visible := make([]string, 0, len(input.VisibleTo))
	for _, role := range input.VisibleTo {
		if role != models.RoleUser && role != models.RoleAdmin {
			return ErrInvalidRole
		}
		visible = append(visible, string(role))
	}
	visible = uniqueStrings(visible)
	if len(visible) == 0 {
		return ErrVisibilityRequired
	}

	err := s.backend(token).UploadResource(ctx, remote.UploadResourceRequest{
		Title:       title,
		Description: description,
		FileURL:     fileURL,
		VisibleTo:   visible,
		Language:    strings.TrimSpace(input.Language),
	})
	if err != nil {
		return err
	}

	log.WithField("title", title).Info("resource uploaded")
	return nil
}

func (s *ResourceService) Delete(ctx context.Context, token, id string) error {
	if err := s.backend(token).DeleteResource(ctx, id); err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return ErrResourceNotFound
		}
		return err
	}

	log.WithField("resource_id", id).Info("resource deleted")
	return nil
}
