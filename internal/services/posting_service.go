package services

import (
	"context"

	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PostingService - создание и редактирование объявлений.
// Статусные поля не трогает, это территория LifecycleService.
type PostingService struct {
	db          *gorm.DB
	txm         repositories.TxManager
	postingRepo repositories.PostingRepository
	bidRepo     repositories.BidRepository
	userRepo    repositories.UserRepository
}

func NewPostingService(
	db *gorm.DB,
	txm repositories.TxManager,
	postingRepo repositories.PostingRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
) *PostingService {
	return &PostingService{
		db:          db,
		txm:         txm,
		postingRepo: postingRepo,
		bidRepo:     bidRepo,
		userRepo:    userRepo,
	}
}

// CreatePosting создает объявление в статусе open с пустым списком ставок
func (s *PostingService) CreatePosting(ctx context.Context, homeownerID string, req *dto.CreatePostingRequest) (*models.Posting, error) {
	owner, err := s.userRepo.FindByID(withCtx(s.db, ctx), homeownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	if !owner.IsHomeowner() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	posting := &models.Posting{
		HomeownerID:   homeownerID,
		Title:         req.Title,
		Description:   req.Description,
		PostalCode:    req.PostalCode,
		Images:        encodeStringList(req.Images),
		StartDate:     req.StartDate,
		Status:        models.JobStatusOpen,
		Lat:           req.Lat,
		Lng:           req.Lng,
		BidIDs:        encodeStringList(nil),
		Confirmations: encodeConfirmations(map[string]bool{}),
		Version:       1,
	}

	if err := s.postingRepo.Create(withCtx(s.db, ctx), posting); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return posting, nil
}

// GetPosting возвращает объявление со ставками, если смотрит владелец
func (s *PostingService) GetPosting(ctx context.Context, postingID, requesterID string) (*dto.PostingResponse, error) {
	db := withCtx(s.db, ctx)

	posting, err := s.postingRepo.FindByID(db, postingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostingNotFound) {
			return nil, apperrors.ErrPostingNotFound
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	resp := buildPostingResponse(posting)

	if posting.HomeownerID == requesterID {
		bids, err := s.bidRepo.ListByPosting(db, posting.ID)
		if err == nil {
			resp.Bids = bids
		}
	}

	return resp, nil
}

// UpdatePosting редактирует детали объявления; допускается только
// владельцем и только пока объявление open.
func (s *PostingService) UpdatePosting(ctx context.Context, postingID, requesterID string, req *dto.UpdatePostingRequest) error {
	return s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		posting, err := s.postingRepo.FindByID(tx, postingID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrPostingNotFound) {
				return apperrors.ErrPostingNotFound
			}
			return apperrors.StoreUnavailable(err)
		}

		if posting.HomeownerID != requesterID {
			return apperrors.ErrInsufficientPermissions
		}
		if posting.Status != models.JobStatusOpen {
			return apperrors.ErrPostingNotOpen
		}

		if req.Title != nil {
			posting.Title = *req.Title
		}
		if req.Description != nil {
			posting.Description = *req.Description
		}
		if req.PostalCode != nil {
			posting.PostalCode = *req.PostalCode
		}
		if req.Images != nil {
			posting.Images = encodeStringList(req.Images)
		}
		if req.StartDate != nil {
			posting.StartDate = req.StartDate
		}
		if req.Lat != nil {
			posting.Lat = req.Lat
		}
		if req.Lng != nil {
			posting.Lng = req.Lng
		}

		if err := s.postingRepo.UpdateDetails(tx, posting); err != nil {
			if apperrors.Is(err, repositories.ErrVersionConflict) {
				return apperrors.ErrConcurrentModification("posting")
			}
			return apperrors.StoreUnavailable(err)
		}
		return nil
	})
}

// buildPostingResponse раскодирует JSONB-поля модели в DTO
func buildPostingResponse(posting *models.Posting) *dto.PostingResponse {
	return &dto.PostingResponse{
		ID:            posting.ID,
		HomeownerID:   posting.HomeownerID,
		Title:         posting.Title,
		Description:   posting.Description,
		PostalCode:    posting.PostalCode,
		Images:        decodeStringList(posting.Images),
		StartDate:     posting.StartDate,
		Status:        posting.Status,
		Lat:           posting.Lat,
		Lng:           posting.Lng,
		BidIDs:        decodeStringList(posting.BidIDs),
		AcceptedBidID: posting.AcceptedBidID,
		Confirmations: decodeConfirmations(posting.Confirmations),
		CreatedAt:     posting.CreatedAt,
	}
}
