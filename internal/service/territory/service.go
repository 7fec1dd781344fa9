package territory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/pkg/logger"
	"pelada-hub/internal/repository"
)

const (
	geoIndexKey        = "courts:geo"
	territoryCacheKey  = "territory:map"
	territoryCacheTTL  = 5 * time.Minute
	maxNearbyRadiusKm  = 50.0
	defaultNearbyLimit = 20
)

var ErrGeoIndexUnavailable = errors.New("court geo index is unavailable")

type Service interface {
	CreateCourt(ctx context.Context, creatorID uuid.UUID, input domain.CreateCourtInput) (*domain.Court, error)
	GetCourt(ctx context.Context, id uuid.UUID) (*domain.Court, error)
	ListCourts(ctx context.Context, city *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Court], error)
	DeleteCourt(ctx context.Context, id uuid.UUID) error
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.NearbyCourt, error)
	Map(ctx context.Context) ([]domain.TerritoryStanding, error)
	SyncGeoIndex(ctx context.Context) error
}

type service struct {
	courtRepo repository.CourtRepository
	redis     *redis.Client
}

func NewService(courtRepo repository.CourtRepository, redisClient *redis.Client) Service {
	return &service{
		courtRepo: courtRepo,
		redis:     redisClient,
	}
}

func (s *service) CreateCourt(ctx context.Context, creatorID uuid.UUID, input domain.CreateCourtInput) (*domain.Court, error) {
	court := &domain.Court{
		ID:        uuid.New(),
		Name:      input.Name,
		Address:   input.Address,
		City:      input.City,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Surface:   input.Surface,
		CreatedBy: creatorID,
	}

	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, err
	}

	if s.redis != nil {
		err := s.redis.GeoAdd(ctx, geoIndexKey, &redis.GeoLocation{
			Name:      court.ID.String(),
			Longitude: court.Longitude,
			Latitude:  court.Latitude,
		}).Err()
		if err != nil {
			logger.L().WithError(err).Warn("failed to index court location")
		}
		_ = s.redis.Del(ctx, territoryCacheKey).Err()
	}

	return court, nil
}

func (s *service) GetCourt(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, domain.ErrCourtNotFound
	}
	return court, nil
}

func (s *service) ListCourts(ctx context.Context, city *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Court], error) {
	courts, total, err := s.courtRepo.List(ctx, city, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Court]{}, err
	}
	return domain.NewPaginatedResponse(courts, params.Page, params.PageSize, total), nil
}

func (s *service) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if court == nil {
		return domain.ErrCourtNotFound
	}

	if err := s.courtRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.redis != nil {
		_ = s.redis.ZRem(ctx, geoIndexKey, id.String()).Err()
		_ = s.redis.Del(ctx, territoryCacheKey).Err()
	}
	return nil
}

func (s *service) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.NearbyCourt, error) {
	if s.redis == nil {
		return nil, ErrGeoIndexUnavailable
	}
	if radiusKm <= 0 || radiusKm > maxNearbyRadiusKm {
		radiusKm = 10
	}
	if limit <= 0 || limit > 100 {
		limit = defaultNearbyLimit
	}

	locations, err := s.redis.GeoSearchLocation(ctx, geoIndexKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lng,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return []domain.NearbyCourt{}, nil
	}

	distances := make(map[uuid.UUID]float64, len(locations))
	ids := make([]uuid.UUID, 0, len(locations))
	for _, loc := range locations {
		id, err := uuid.Parse(loc.Name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		distances[id] = loc.Dist
	}

	courts, err := s.courtRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Court, len(courts))
	for _, c := range courts {
		byID[c.ID] = c
	}

	// Preserve the distance ordering from the geo search. A court missing
	// from the database (stale index entry) is skipped.
	nearby := make([]domain.NearbyCourt, 0, len(ids))
	for _, id := range ids {
		court, ok := byID[id]
		if !ok {
			continue
		}
		nearby = append(nearby, domain.NearbyCourt{Court: court, DistanceKm: distances[id]})
	}

	return nearby, nil
}

func (s *service) Map(ctx context.Context) ([]domain.TerritoryStanding, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, territoryCacheKey).Result(); err == nil {
			var standings []domain.TerritoryStanding
			if json.Unmarshal([]byte(cached), &standings) == nil {
				return standings, nil
			}
		}
	}

	standings, err := s.courtRepo.TerritoryStandings(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(standings); err == nil {
			_ = s.redis.Set(ctx, territoryCacheKey, data, territoryCacheTTL).Err()
		}
	}

	return standings, nil
}

// SyncGeoIndex rebuilds the Redis geo set from the courts table. Runs on
// startup so the index survives a flushed Redis.
func (s *service) SyncGeoIndex(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	params := domain.PaginationParams{Page: 1, PageSize: 100}
	for {
		courts, total, err := s.courtRepo.List(ctx, nil, params)
		if err != nil {
			return err
		}
		if len(courts) == 0 {
			return nil
		}

		locations := make([]*redis.GeoLocation, len(courts))
		for i, c := range courts {
			locations[i] = &redis.GeoLocation{
				Name:      c.ID.String(),
				Longitude: c.Longitude,
				Latitude:  c.Latitude,
			}
		}
		if err := s.redis.GeoAdd(ctx, geoIndexKey, locations...).Err(); err != nil {
			return err
		}

		if int64(params.Page*params.PageSize) >= total {
			return nil
		}
		params.Page++
	}
}
