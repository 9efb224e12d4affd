package wardrobe

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxNameLen      = 120
)

// Service exposes wardrobe management for authenticated users.
type Service interface {
	Create(ctx context.Context, userID int64, input ItemInput) (Item, error)
	Get(ctx context.Context, userID, id int64) (Item, error)
	Update(ctx context.Context, userID, id int64, input ItemInput) (Item, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, req ListRequest) (ListResponse, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the wardrobe domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "wardrobe.service")}
}

func (s *service) Create(ctx context.Context, userID int64, input ItemInput) (Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return Item{}, err
	}
	item.UserID = userID
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to save item", err)
	}
	s.logger.Info("wardrobe item created", "user_id", userID, "item_id", created.ID, "category", created.Category)
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, id int64) (Item, error) {
	item, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Item{}, translateRepoErr(err, "failed to load item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, userID, id int64, input ItemInput) (Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return Item{}, err
	}
	item.ID = id
	item.UserID = userID
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return Item{}, translateRepoErr(err, "failed to update item")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return translateRepoErr(err, "failed to delete item")
	}
	s.logger.Info("wardrobe item deleted", "user_id", userID, "item_id", id)
	return nil
}

func (s *service) List(ctx context.Context, userID int64, req ListRequest) (ListResponse, error) {
	filter := Filter{Query: strings.TrimSpace(req.Query)}
	if strings.TrimSpace(req.Category) != "" {
		category, err := ParseCategory(req.Category)
		if err != nil {
			return ListResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
		filter.Category = category
	}
	if req.Page < 0 || req.Limit < 0 {
		return ListResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "page and limit must be positive", nil)
	}

	if req.Page == 0 {
		items, total, err := s.repo.List(ctx, userID, filter)
		if err != nil {
			return ListResponse{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to list items", err)
		}
		return ListResponse{Items: items, Total: total}, nil
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	filter.Limit = limit
	filter.Offset = (req.Page - 1) * limit

	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return ListResponse{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to list items", err)
	}
	return ListResponse{
		Items:       items,
		Paged:       true,
		TotalItems:  total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: req.Page,
	}, nil
}

func buildItem(input ItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name cannot be empty", nil)
	}
	if len([]rune(name)) > maxNameLen {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name is too long", nil)
	}
	category, err := ParseCategory(input.Category)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	insulation, err := ParseInsulation(input.Insulation)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	formality, err := ParseFormality(input.Formality)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return Item{
		Name:         name,
		Category:     category,
		Insulation:   insulation,
		Waterproof:   input.Waterproof,
		UVProtection: input.UVProtection,
		Formality:    formality,
		Color:        strings.TrimSpace(input.Color),
		Notes:        strings.TrimSpace(input.Notes),
	}, nil
}

func translateRepoErr(err error, message string) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "clothing item not found", err)
	}
	return apperrors.Wrap(apperrors.CodeWardrobe, message, err)
}
