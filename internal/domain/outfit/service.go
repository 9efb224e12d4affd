package outfit

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

// WardrobeReader supplies the inventory snapshot for one user.
type WardrobeReader interface {
	ListAll(ctx context.Context, userID int64) ([]wardrobe.Item, error)
}

// Service suggests outfits from a user's saved wardrobe.
type Service interface {
	Suggest(ctx context.Context, userID int64, weather Weather) (Suggestion, error)
}

type service struct {
	wardrobe WardrobeReader
	newRand  func() Rand
	logger   *slog.Logger
}

// NewService wires the outfit domain.
func NewService(reader WardrobeReader, logger *slog.Logger) Service {
	return &service{
		wardrobe: reader,
		newRand: func() Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		logger: logger.With("component", "outfit.service"),
	}
}

// NewSeededService breaks score ties with a fixed seed, so repeated calls over
// the same wardrobe and weather pick the same items.
func NewSeededService(reader WardrobeReader, seed uint64, logger *slog.Logger) Service {
	return &service{
		wardrobe: reader,
		newRand: func() Rand {
			return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		},
		logger: logger.With("component", "outfit.service"),
	}
}

func (s *service) Suggest(ctx context.Context, userID int64, weather Weather) (Suggestion, error) {
	items, err := s.wardrobe.ListAll(ctx, userID)
	if err != nil {
		return Suggestion{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to load wardrobe", err)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Suggestion{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
	}

	suggestion := Assemble(items, weather, s.newRand())
	s.logger.Debug("outfit suggested",
		"user_id", userID,
		"items", len(items),
		"selected", len(suggestion.Outfit),
		"gaps", len(suggestion.Gaps),
		"target_insulation", suggestion.Context.TargetInsulation,
	)
	return suggestion, nil
}
