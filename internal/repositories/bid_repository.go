package repositories

import (
	"errors"

	"yardwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBidNotFound      = errors.New("bid not found")
	ErrBidAlreadyExists = errors.New("bid already exists for this bidder and posting")
)

type BidRepository interface {
	Create(db *gorm.DB, bid *models.Bid) error
	FindByID(db *gorm.DB, id string) (*models.Bid, error)
	ListByPosting(db *gorm.DB, postingID string) ([]models.Bid, error)
	ListByBidder(db *gorm.DB, bidderID string, statuses []models.BidStatus) ([]models.Bid, error)
	ExistsForBidder(db *gorm.DB, postingID, bidderID string) (bool, error)
	// UpdateStatusVersioned переводит ставку в новый статус с проверкой версии
	UpdateStatusVersioned(db *gorm.DB, bid *models.Bid, status models.BidStatus) error
	// RejectPendingSiblings отклоняет все pending-ставки объявления, кроме указанной.
	// Возвращает id отклоненных ставок.
	RejectPendingSiblings(db *gorm.DB, postingID, exceptBidID string) ([]string, error)
}

type BidRepositoryImpl struct{}

func NewBidRepository() BidRepository {
	return &BidRepositoryImpl{}
}

func (r *BidRepositoryImpl) Create(db *gorm.DB, bid *models.Bid) error {
	return db.Create(bid).Error
}

func (r *BidRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	err := db.First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) ListByPosting(db *gorm.DB, postingID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Where("posting_id = ?", postingID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) ListByBidder(db *gorm.DB, bidderID string, statuses []models.BidStatus) ([]models.Bid, error) {
	var bids []models.Bid
	q := db.Where("bidder_id = ?", bidderID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("created_at DESC").Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) ExistsForBidder(db *gorm.DB, postingID, bidderID string) (bool, error) {
	var count int64
	err := db.Model(&models.Bid{}).
		Where("posting_id = ? AND bidder_id = ?", postingID, bidderID).
		Count(&count).Error
	return count > 0, err
}

func (r *BidRepositoryImpl) UpdateStatusVersioned(db *gorm.DB, bid *models.Bid, status models.BidStatus) error {
	result := db.Model(&models.Bid{}).
		Where("id = ? AND version = ?", bid.ID, bid.Version).
		Updates(map[string]interface{}{
			"status":  status,
			"version": bid.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	bid.Status = status
	bid.Version++
	return nil
}

func (r *BidRepositoryImpl) RejectPendingSiblings(db *gorm.DB, postingID, exceptBidID string) ([]string, error) {
	var siblings []models.Bid
	err := db.Where("posting_id = ? AND id <> ? AND status = ?",
		postingID, exceptBidID, models.BidStatusPending).
		Find(&siblings).Error
	if err != nil {
		return nil, err
	}
	if len(siblings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(siblings))
	for _, b := range siblings {
		ids = append(ids, b.ID)
	}

	err = db.Model(&models.Bid{}).
		Where("id IN ? AND status = ?", ids, models.BidStatusPending).
		Updates(map[string]interface{}{
			"status":  models.BidStatusRejected,
			"version": gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
