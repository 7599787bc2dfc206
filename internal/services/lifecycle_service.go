package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"yardwork_backend/internal/events"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LifecycleService - единственная точка мутации статусов Posting/Bid.
// Каждая операция выполняется как одна транзакция: предусловия
// перепроверяются внутри нее, версионированные записи ловят конкурентные
// изменения, события публикуются только после успешного коммита.
type LifecycleService struct {
	txm         repositories.TxManager
	postingRepo repositories.PostingRepository
	bidRepo     repositories.BidRepository
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
	publisher   events.Publisher
}

func NewLifecycleService(
	txm repositories.TxManager,
	postingRepo repositories.PostingRepository,
	bidRepo repositories.BidRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	publisher events.Publisher,
) *LifecycleService {
	return &LifecycleService{
		txm:         txm,
		postingRepo: postingRepo,
		bidRepo:     bidRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// Bid Operations

// SubmitBid создает ставку pending и атомарно дописывает ее id
// в список ставок объявления.
func (s *LifecycleService) SubmitBid(ctx context.Context, bidderID string, req *dto.SubmitBidRequest) (*models.Bid, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ValidationError(map[string]string{"amount": "must be greater than zero"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.ValidationError(map[string]string{"description": "must not be empty"})
	}

	var bid *models.Bid
	var pending []events.Event

	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		bidder, err := s.userRepo.FindByID(tx, bidderID)
		if err != nil {
			return s.mapUserErr(err)
		}
		if !bidder.IsCompanyOwner() {
			return apperrors.ErrInsufficientPermissions
		}

		posting, err := s.postingRepo.FindByID(tx, req.PostingID)
		if err != nil {
			return s.mapPostingErr(err)
		}
		if posting.Status != models.JobStatusOpen {
			return apperrors.ErrPostingNotOpen
		}
		if posting.HomeownerID == bidderID {
			return apperrors.ErrOwnPostingBid
		}

		exists, err := s.bidRepo.ExistsForBidder(tx, posting.ID, bidderID)
		if err != nil {
			return apperrors.StoreUnavailable(err)
		}
		if exists {
			return apperrors.ErrDuplicateBid
		}

		bid = &models.Bid{
			PostingID:    posting.ID,
			BidderID:     bidderID,
			Amount:       req.Amount,
			Description:  req.Description,
			ProposedDate: req.ProposedDate,
			Status:       models.BidStatusPending,
			Version:      1,
		}
		if err := s.bidRepo.Create(tx, bid); err != nil {
			return apperrors.StoreUnavailable(err)
		}

		bidIDs := decodeStringList(posting.BidIDs)
		bidIDs = append(bidIDs, bid.ID)
		posting.BidIDs = encodeStringList(bidIDs)

		if err := s.postingRepo.UpdateVersioned(tx, posting); err != nil {
			return s.mapVersionErr(err, "posting")
		}

		pending = append(pending, events.Event{
			Type:      events.EventBidSubmitted,
			PostingID: posting.ID,
			BidID:     bid.ID,
			ActorID:   bidderID,
			TargetID:  posting.HomeownerID,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAll(pending)
	return bid, nil
}

// AcceptBid - самый рискованный переход: одной атомарной единицей
// принимается ставка, объявление уходит в inprogress и все остальные
// ставки отклоняются. Частичное применение не наблюдаемо.
func (s *LifecycleService) AcceptBid(ctx context.Context, requesterID, bidID string) error {
	var pending []events.Event

	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		bid, err := s.bidRepo.FindByID(tx, bidID)
		if err != nil {
			return s.mapBidErr(err)
		}

		posting, err := s.postingRepo.FindByID(tx, bid.PostingID)
		if err != nil {
			return s.mapPostingErr(err)
		}
		if posting.HomeownerID != requesterID {
			return apperrors.ErrInsufficientPermissions
		}
		if bid.Status.Terminal() {
			return apperrors.ErrBidNotPending
		}
		if posting.Status != models.JobStatusOpen {
			return apperrors.ErrPostingNotOpen
		}

		if err := s.bidRepo.UpdateStatusVersioned(tx, bid, models.BidStatusAccepted); err != nil {
			return s.mapVersionErr(err, "bid")
		}

		rejected, err := s.bidRepo.RejectPendingSiblings(tx, posting.ID, bid.ID)
		if err != nil {
			return apperrors.StoreUnavailable(err)
		}

		posting.Status = models.JobStatusInProgress
		posting.AcceptedBidID = &bid.ID
		if err := s.postingRepo.UpdateVersioned(tx, posting); err != nil {
			return s.mapVersionErr(err, "posting")
		}

		now := time.Now()
		pending = append(pending, events.Event{
			Type:      events.EventBidAccepted,
			PostingID: posting.ID,
			BidID:     bid.ID,
			ActorID:   requesterID,
			TargetID:  bid.BidderID,
			Timestamp: now,
		})
		if len(rejected) > 0 {
			pending = append(pending, events.Event{
				Type:      events.EventBidsRejected,
				PostingID: posting.ID,
				BidIDs:    rejected,
				ActorID:   requesterID,
				Timestamp: now,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishAll(pending)
	return nil
}

// ConfirmCompletion выставляет флаг подтверждения подрядчика.
// Статус объявления не меняется. Повторный вызов - no-op без события.
func (s *LifecycleService) ConfirmCompletion(ctx context.Context, companyOwnerID, postingID string) error {
	var pending []events.Event

	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		posting, err := s.postingRepo.FindByID(tx, postingID)
		if err != nil {
			return s.mapPostingErr(err)
		}
		if posting.Status != models.JobStatusInProgress {
			return apperrors.ErrPostingNotInProgress
		}
		if posting.AcceptedBidID == nil {
			// inprogress без выигравшей ставки - нарушенный инвариант хранилища
			return apperrors.ErrPostingNotInProgress
		}

		accepted, err := s.bidRepo.FindByID(tx, *posting.AcceptedBidID)
		if err != nil {
			return s.mapBidErr(err)
		}
		if accepted.BidderID != companyOwnerID {
			return apperrors.ErrInsufficientPermissions
		}

		confirmations := decodeConfirmations(posting.Confirmations)
		if confirmations[companyOwnerID] {
			// Идемпотентность: состояние уже такое, как просят
			return nil
		}

		confirmations[companyOwnerID] = true
		posting.Confirmations = encodeConfirmations(confirmations)
		if err := s.postingRepo.UpdateVersioned(tx, posting); err != nil {
			return s.mapVersionErr(err, "posting")
		}

		pending = append(pending, events.Event{
			Type:      events.EventJobConfirmed,
			PostingID: posting.ID,
			BidID:     accepted.ID,
			ActorID:   companyOwnerID,
			TargetID:  posting.HomeownerID,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.publishAll(pending)
	return nil
}

// CloseCompletedJob атомарно завершает объявление и выигравшую ставку.
// Требует предварительного подтверждения подрядчика.
func (s *LifecycleService) CloseCompletedJob(ctx context.Context, homeownerID, postingID, winningBidID string) error {
	var pending []events.Event

	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		posting, err := s.postingRepo.FindByID(tx, postingID)
		if err != nil {
			return s.mapPostingErr(err)
		}
		if posting.HomeownerID != homeownerID {
			return apperrors.ErrInsufficientPermissions
		}
		if posting.Status != models.JobStatusInProgress {
			return apperrors.ErrPostingNotInProgress
		}
		if posting.AcceptedBidID == nil || *posting.AcceptedBidID != winningBidID {
			return apperrors.ErrBidNotAccepted
		}

		bid, err := s.bidRepo.FindByID(tx, winningBidID)
		if err != nil {
			return s.mapBidErr(err)
		}

		confirmations := decodeConfirmations(posting.Confirmations)
		if !confirmations[bid.BidderID] {
			return apperrors.ErrCompletionNotConfirmed
		}

		posting.Status = models.JobStatusCompleted
		if err := s.postingRepo.UpdateVersioned(tx, posting); err != nil {
			return s.mapVersionErr(err, "posting")
		}
		if err := s.bidRepo.UpdateStatusVersioned(tx, bid, models.BidStatusCompleted); err != nil {
			return s.mapVersionErr(err, "bid")
		}

		pending = append(pending, events.Event{
			Type:      events.EventJobClosed,
			PostingID: posting.ID,
			BidID:     bid.ID,
			ActorID:   homeownerID,
			TargetID:  bid.BidderID,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.publishAll(pending)
	return nil
}

// Review Operations

// SubmitReview создает отзыв после завершения работ.
// Повторная отправка той же пары (posting, homeowner) отклоняется.
func (s *LifecycleService) SubmitReview(ctx context.Context, homeownerID string, req *dto.SubmitReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ValidationError(map[string]string{"rating": "must be between 1 and 5"})
	}

	var review *models.Review
	var pending []events.Event

	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		posting, err := s.postingRepo.FindByID(tx, req.PostingID)
		if err != nil {
			return s.mapPostingErr(err)
		}
		if posting.HomeownerID != homeownerID {
			return apperrors.ErrInsufficientPermissions
		}
		if posting.Status.Canonical() != models.JobStatusCompleted {
			return apperrors.ErrPostingNotCompleted
		}
		if posting.AcceptedBidID == nil {
			return apperrors.ErrPostingNotCompleted
		}

		accepted, err := s.bidRepo.FindByID(tx, *posting.AcceptedBidID)
		if err != nil {
			return s.mapBidErr(err)
		}

		review = &models.Review{
			PostingID:      posting.ID,
			HomeownerID:    homeownerID,
			CompanyOwnerID: accepted.BidderID,
			Rating:         req.Rating,
			Title:          req.Title,
			Text:           req.Text,
		}
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
				return apperrors.ErrDuplicateReview
			}
			return apperrors.StoreUnavailable(err)
		}

		pending = append(pending, events.Event{
			Type:      events.EventReviewSubmitted,
			PostingID: posting.ID,
			ReviewID:  review.ID,
			ActorID:   homeownerID,
			TargetID:  accepted.BidderID,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAll(pending)
	return review, nil
}

// Helper Methods

func (s *LifecycleService) publishAll(evts []events.Event) {
	if s.publisher == nil {
		return
	}
	for _, e := range evts {
		s.publisher.Publish(e)
	}
}

func (s *LifecycleService) mapPostingErr(err error) error {
	if apperrors.Is(err, repositories.ErrPostingNotFound) {
		return apperrors.ErrPostingNotFound
	}
	return apperrors.StoreUnavailable(err)
}

func (s *LifecycleService) mapBidErr(err error) error {
	if apperrors.Is(err, repositories.ErrBidNotFound) {
		return apperrors.ErrBidNotFound
	}
	return apperrors.StoreUnavailable(err)
}

func (s *LifecycleService) mapUserErr(err error) error {
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.StoreUnavailable(err)
}

func (s *LifecycleService) mapVersionErr(err error, domain string) error {
	if apperrors.Is(err, repositories.ErrVersionConflict) {
		return apperrors.ErrConcurrentModification(domain)
	}
	return apperrors.StoreUnavailable(err)
}

// --- JSONB кодеки ---

func decodeStringList(raw datatypes.JSON) []string {
	var list []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &list)
	}
	return list
}

func encodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	return datatypes.JSON(raw)
}

func decodeConfirmations(raw datatypes.JSON) map[string]bool {
	confirmations := make(map[string]bool)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &confirmations)
	}
	return confirmations
}

func encodeConfirmations(m map[string]bool) datatypes.JSON {
	raw, _ := json.Marshal(m)
	return datatypes.JSON(raw)
}
