package repositories

import (
	"errors"

	"yardwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this posting")
)

type ReviewRepository interface {
	// CreateReview создает отзыв; повторный отзыв той же пары
	// (posting, homeowner) возвращает ErrReviewAlreadyExists.
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByPostingAndHomeowner(db *gorm.DB, postingID, homeownerID string) (*models.Review, error)
	FindReviewsByCompanyOwner(db *gorm.DB, companyOwnerID string) ([]models.Review, error)

	// Rating operations
	CalculateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) (float64, error)
	UpdateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) error
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// Review operations

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	var existing models.Review
	err := db.Where("posting_id = ? AND homeowner_id = ?", review.PostingID, review.HomeownerID).
		First(&existing).Error
	if err == nil {
		return ErrReviewAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(review).Error; err != nil {
		return err
	}

	// Средний рейтинг подрядчика пересчитывается в той же транзакции
	return r.updateCompanyOwnerRatingInternal(db, review.CompanyOwnerID)
}

func (r *ReviewRepositoryImpl) FindReviewByPostingAndHomeowner(db *gorm.DB, postingID, homeownerID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("posting_id = ? AND homeowner_id = ?", postingID, homeownerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewsByCompanyOwner(db *gorm.DB, companyOwnerID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("company_owner_id = ?", companyOwnerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Rating operations

func (r *ReviewRepositoryImpl) CalculateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) (float64, error) {
	var avgRating float64
	err := db.Model(&models.Review{}).Where("company_owner_id = ?", companyOwnerID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating).Error
	return avgRating, err
}

func (r *ReviewRepositoryImpl) UpdateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) error {
	return r.updateCompanyOwnerRatingInternal(db, companyOwnerID)
}

func (r *ReviewRepositoryImpl) updateCompanyOwnerRatingInternal(db *gorm.DB, companyOwnerID string) error {
	newRating, err := r.CalculateCompanyOwnerRating(db, companyOwnerID)
	if err != nil {
		return err
	}

	return db.Model(&models.User{}).Where("id = ?", companyOwnerID).
		Update("rating", newRating).Error
}
