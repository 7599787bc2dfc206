package repositories

import (
	"errors"

	"yardwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostingNotFound = errors.New("posting not found")
	// ErrVersionConflict - версионированный UPDATE не затронул ни одной строки:
	// сущность была изменена конкурентно между чтением и записью.
	ErrVersionConflict = errors.New("version conflict")
)

type PostingRepository interface {
	Create(db *gorm.DB, posting *models.Posting) error
	FindByID(db *gorm.DB, id string) (*models.Posting, error)
	// UpdateVersioned применяет мутируемые жизненным циклом поля с проверкой
	// версии; при несовпадении версии возвращает ErrVersionConflict.
	UpdateVersioned(db *gorm.DB, posting *models.Posting) error
	UpdateDetails(db *gorm.DB, posting *models.Posting) error
	ListByHomeowner(db *gorm.DB, homeownerID string, statuses []models.JobStatus) ([]models.Posting, error)
	ListOpenExcludingBidder(db *gorm.DB, bidderID string) ([]models.Posting, error)
}

type PostingRepositoryImpl struct{}

func NewPostingRepository() PostingRepository {
	return &PostingRepositoryImpl{}
}

func (r *PostingRepositoryImpl) Create(db *gorm.DB, posting *models.Posting) error {
	return db.Create(posting).Error
}

func (r *PostingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Posting, error) {
	var posting models.Posting
	err := db.First(&posting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (r *PostingRepositoryImpl) UpdateVersioned(db *gorm.DB, posting *models.Posting) error {
	result := db.Model(&models.Posting{}).
		Where("id = ? AND version = ?", posting.ID, posting.Version).
		Updates(map[string]interface{}{
			"status":          posting.Status,
			"bid_ids":         posting.BidIDs,
			"accepted_bid_id": posting.AcceptedBidID,
			"confirmations":   posting.Confirmations,
			"version":         posting.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	posting.Version++
	return nil
}

func (r *PostingRepositoryImpl) UpdateDetails(db *gorm.DB, posting *models.Posting) error {
	result := db.Model(&models.Posting{}).
		Where("id = ? AND version = ?", posting.ID, posting.Version).
		Updates(map[string]interface{}{
			"title":       posting.Title,
			"description": posting.Description,
			"postal_code": posting.PostalCode,
			"images":      posting.Images,
			"start_date":  posting.StartDate,
			"lat":         posting.Lat,
			"lng":         posting.Lng,
			"version":     posting.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	posting.Version++
	return nil
}

func (r *PostingRepositoryImpl) ListByHomeowner(db *gorm.DB, homeownerID string, statuses []models.JobStatus) ([]models.Posting, error) {
	var postings []models.Posting
	q := db.Where("homeowner_id = ?", homeownerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", canonicalStatuses(statuses))
	}
	err := q.Order("created_at DESC").Find(&postings).Error
	return postings, err
}

// ListOpenExcludingBidder возвращает открытые объявления, на которые
// подрядчик еще не ставил. Пустой результат - не ошибка.
func (r *PostingRepositoryImpl) ListOpenExcludingBidder(db *gorm.DB, bidderID string) ([]models.Posting, error) {
	var postings []models.Posting
	err := db.
		Where("status = ?", models.JobStatusOpen).
		Where("id NOT IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Bid{}).
				Select("posting_id").
				Where("bidder_id = ?", bidderID),
		).
		Order("created_at DESC").
		Find(&postings).Error
	return postings, err
}

// canonicalStatuses нормализует legacy "closed" в "completed" перед запросом
func canonicalStatuses(statuses []models.JobStatus) []models.JobStatus {
	out := make([]models.JobStatus, 0, len(statuses))
	seen := make(map[models.JobStatus]bool)
	for _, s := range statuses {
		c := s.Canonical()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
