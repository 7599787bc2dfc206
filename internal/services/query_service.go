package services

import (
	"context"
	"errors"

	"yardwork_backend/internal/config"
	"yardwork_backend/internal/geo"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// QueryService - read-only фасад для списков. Инварианты не проверяет
// и статусы не мутирует; пустой результат - это пустой срез, не ошибка.
// Порядок везде: created_at DESC.
type QueryService struct {
	db          *gorm.DB
	postingRepo repositories.PostingRepository
	bidRepo     repositories.BidRepository
	reviewRepo  repositories.ReviewRepository
}

func NewQueryService(
	db *gorm.DB,
	postingRepo repositories.PostingRepository,
	bidRepo repositories.BidRepository,
	reviewRepo repositories.ReviewRepository,
) *QueryService {
	return &QueryService{
		db:          db,
		postingRepo: postingRepo,
		bidRepo:     bidRepo,
		reviewRepo:  reviewRepo,
	}
}

// ListOpenPostingsExcludingBidder возвращает открытые объявления без ставок
// данного подрядчика. Если задан центр поиска - дополнительно фильтрует по
// расстоянию (радиус явный или дефолтный из конфига); объявления без
// координат при этом пропускаются.
func (s *QueryService) ListOpenPostingsExcludingBidder(ctx context.Context, bidderID string, q *dto.ListPostingsQuery) ([]*dto.PostingResponse, error) {
	postings, err := s.postingRepo.ListOpenExcludingBidder(withCtx(s.db, ctx), bidderID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	withRadius := q != nil && q.CenterLat != nil && q.CenterLng != nil
	radiusKm := config.GetConfig().Geo.DefaultRadiusKm
	if withRadius && q.RadiusKm != nil {
		radiusKm = *q.RadiusKm
	}

	responses := make([]*dto.PostingResponse, 0, len(postings))
	for i := range postings {
		p := &postings[i]

		if withRadius {
			if p.Lat == nil || p.Lng == nil {
				continue
			}
			distance := geo.HaversineKm(*q.CenterLat, *q.CenterLng, *p.Lat, *p.Lng)
			if distance > radiusKm {
				continue
			}
		}

		responses = append(responses, buildPostingResponse(p))
	}

	return responses, nil
}

// ListReviewsForCompany возвращает отзывы о подрядчике, новые первыми
func (s *QueryService) ListReviewsForCompany(ctx context.Context, companyOwnerID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindReviewsByCompanyOwner(withCtx(s.db, ctx), companyOwnerID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// GetReviewForPosting возвращает отзыв домовладельца на его объявление
func (s *QueryService) GetReviewForPosting(ctx context.Context, postingID, homeownerID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindReviewByPostingAndHomeowner(withCtx(s.db, ctx), postingID, homeownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return review, nil
}

// ListBidsForUser возвращает ставки подрядчика, опционально по статусам
func (s *QueryService) ListBidsForUser(ctx context.Context, bidderID string, statuses []models.BidStatus) ([]models.Bid, error) {
	bids, err := s.bidRepo.ListByBidder(withCtx(s.db, ctx), bidderID, statuses)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// ListPostingsWithBidsByStatus возвращает объявления домовладельца
// в заданных статусах вместе с их ставками (join по posting_id).
func (s *QueryService) ListPostingsWithBidsByStatus(ctx context.Context, homeownerID string, statuses []models.JobStatus) ([]*dto.PostingResponse, error) {
	db := withCtx(s.db, ctx)

	postings, err := s.postingRepo.ListByHomeowner(db, homeownerID, statuses)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	responses := make([]*dto.PostingResponse, 0, len(postings))
	for i := range postings {
		p := &postings[i]
		resp := buildPostingResponse(p)

		bids, err := s.bidRepo.ListByPosting(db, p.ID)
		if err != nil {
			return nil, apperrors.StoreUnavailable(err)
		}
		resp.Bids = bids

		responses = append(responses, resp)
	}

	return responses, nil
}
