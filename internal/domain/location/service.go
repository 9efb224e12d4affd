package location

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

// Service manages a user's saved locations.
type Service interface {
	Create(ctx context.Context, userID int64, input Input) (Location, error)
	Get(ctx context.Context, userID, id int64) (Location, error)
	Update(ctx context.Context, userID, id int64, input Input) (Location, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]Location, error)
	Default(ctx context.Context, userID int64) (Location, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the location domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "location.service")}
}

func (s *service) Create(ctx context.Context, userID int64, input Input) (Location, error) {
	loc, err := buildLocation(input)
	if err != nil {
		return Location{}, err
	}
	loc.UserID = userID
	created, err := s.repo.Create(ctx, loc)
	if err != nil {
		return Location{}, apperrors.Wrap(apperrors.CodeLocation, "failed to save location", err)
	}
	s.logger.Info("location created", "user_id", userID, "location_id", created.ID, "default", created.IsDefault)
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, id int64) (Location, error) {
	loc, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Location{}, translateRepoErr(err, "failed to load location")
	}
	return loc, nil
}

func (s *service) Update(ctx context.Context, userID, id int64, input Input) (Location, error) {
	loc, err := buildLocation(input)
	if err != nil {
		return Location{}, err
	}
	loc.ID = id
	loc.UserID = userID
	updated, err := s.repo.Update(ctx, loc)
	if err != nil {
		return Location{}, translateRepoErr(err, "failed to update location")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return translateRepoErr(err, "failed to delete location")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID int64) ([]Location, error) {
	locs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLocation, "failed to list locations", err)
	}
	return locs, nil
}

func (s *service) Default(ctx context.Context, userID int64) (Location, error) {
	loc, err := s.repo.Default(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Location{}, apperrors.Wrap(apperrors.CodeNotFound, "default location not found", err)
		}
		return Location{}, apperrors.Wrap(apperrors.CodeLocation, "failed to load default location", err)
	}
	return loc, nil
}

func buildLocation(input Input) (Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name cannot be empty", nil)
	}
	if input.Latitude == nil || input.Longitude == nil {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are required", nil)
	}
	if err := ValidateCoordinates(*input.Latitude, *input.Longitude); err != nil {
		return Location{}, err
	}
	return Location{
		Name:      name,
		City:      strings.TrimSpace(input.City),
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		IsDefault: input.IsDefault,
	}, nil
}

// ValidateCoordinates rejects values outside the WGS84 range.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be between -90 and 90", nil)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be between -180 and 180", nil)
	}
	return nil
}

func translateRepoErr(err error, message string) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "location not found", err)
	}
	return apperrors.Wrap(apperrors.CodeLocation, message, err)
}
