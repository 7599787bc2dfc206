package services

import (
	"context"
	"sort"

	"yardwork_backend/internal/events"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory фейки репозиториев. Репозитории stateless и получают *gorm.DB
// аргументом, поэтому фейки просто игнорируют его и держат данные в картах.
// Версионная логика воспроизводится как в настоящих реализациях.

type fakeTxManager struct{}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.published = append(p.published, e)
}

func (p *recordingPublisher) ofType(t events.EventType) []events.Event {
	var out []events.Event
	for _, e := range p.published {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// --- Posting ---

type fakePostingRepo struct {
	postings map[string]*models.Posting
	// bids используется ListOpenExcludingBidder для воспроизведения
	// NOT IN подзапроса настоящей реализации
	bids *fakeBidRepo
	// forceVersionConflict заставляет следующий версионированный UPDATE
	// вернуть конфликт, имитируя конкурентную запись
	forceVersionConflict bool
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{postings: make(map[string]*models.Posting)}
}

func copyPosting(p *models.Posting) *models.Posting {
	clone := *p
	return &clone
}

func (r *fakePostingRepo) Create(db *gorm.DB, posting *models.Posting) error {
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	r.postings[posting.ID] = copyPosting(posting)
	return nil
}

func (r *fakePostingRepo) FindByID(db *gorm.DB, id string) (*models.Posting, error) {
	p, ok := r.postings[id]
	if !ok {
		return nil, repositories.ErrPostingNotFound
	}
	return copyPosting(p), nil
}

func (r *fakePostingRepo) UpdateVersioned(db *gorm.DB, posting *models.Posting) error {
	if r.forceVersionConflict {
		r.forceVersionConflict = false
		return repositories.ErrVersionConflict
	}
	stored, ok := r.postings[posting.ID]
	if !ok || stored.Version != posting.Version {
		return repositories.ErrVersionConflict
	}
	stored.Status = posting.Status
	stored.BidIDs = posting.BidIDs
	stored.AcceptedBidID = posting.AcceptedBidID
	stored.Confirmations = posting.Confirmations
	stored.Version++
	posting.Version++
	return nil
}

func (r *fakePostingRepo) UpdateDetails(db *gorm.DB, posting *models.Posting) error {
	stored, ok := r.postings[posting.ID]
	if !ok || stored.Version != posting.Version {
		return repositories.ErrVersionConflict
	}
	stored.Title = posting.Title
	stored.Description = posting.Description
	stored.PostalCode = posting.PostalCode
	stored.Images = posting.Images
	stored.StartDate = posting.StartDate
	stored.Lat = posting.Lat
	stored.Lng = posting.Lng
	stored.Version++
	posting.Version++
	return nil
}

func (r *fakePostingRepo) ListByHomeowner(db *gorm.DB, homeownerID string, statuses []models.JobStatus) ([]models.Posting, error) {
	wanted := make(map[models.JobStatus]bool)
	for _, s := range statuses {
		wanted[s.Canonical()] = true
	}
	var out []models.Posting
	for _, p := range r.postings {
		if p.HomeownerID != homeownerID {
			continue
		}
		if len(wanted) > 0 && !wanted[p.Status.Canonical()] {
			continue
		}
		out = append(out, *p)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePostingRepo) ListOpenExcludingBidder(db *gorm.DB, bidderID string) ([]models.Posting, error) {
	var out []models.Posting
	for _, p := range r.postings {
		if p.Status != models.JobStatusOpen {
			continue
		}
		if r.hasBidFrom(p.ID, bidderID) {
			continue
		}
		out = append(out, *p)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePostingRepo) hasBidFrom(postingID, bidderID string) bool {
	if r.bids == nil {
		return false
	}
	for _, b := range r.bids.bids {
		if b.PostingID == postingID && b.BidderID == bidderID {
			return true
		}
	}
	return false
}

func sortNewestFirst(postings []models.Posting) {
	sort.Slice(postings, func(i, j int) bool {
		return postings[i].CreatedAt.After(postings[j].CreatedAt)
	})
}

// --- Bid ---

type fakeBidRepo struct {
	bids map[string]*models.Bid
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[string]*models.Bid)}
}

func copyBid(b *models.Bid) *models.Bid {
	clone := *b
	return &clone
}

func (r *fakeBidRepo) Create(db *gorm.DB, bid *models.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	r.bids[bid.ID] = copyBid(bid)
	return nil
}

func (r *fakeBidRepo) FindByID(db *gorm.DB, id string) (*models.Bid, error) {
	b, ok := r.bids[id]
	if !ok {
		return nil, repositories.ErrBidNotFound
	}
	return copyBid(b), nil
}

func (r *fakeBidRepo) ListByPosting(db *gorm.DB, postingID string) ([]models.Bid, error) {
	var out []models.Bid
	for _, b := range r.bids {
		if b.PostingID == postingID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) ListByBidder(db *gorm.DB, bidderID string, statuses []models.BidStatus) ([]models.Bid, error) {
	wanted := make(map[models.BidStatus]bool)
	for _, s := range statuses {
		wanted[s] = true
	}
	var out []models.Bid
	for _, b := range r.bids {
		if b.BidderID != bidderID {
			continue
		}
		if len(wanted) > 0 && !wanted[b.Status] {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBidRepo) ExistsForBidder(db *gorm.DB, postingID, bidderID string) (bool, error) {
	for _, b := range r.bids {
		if b.PostingID == postingID && b.BidderID == bidderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBidRepo) UpdateStatusVersioned(db *gorm.DB, bid *models.Bid, status models.BidStatus) error {
	stored, ok := r.bids[bid.ID]
	if !ok || stored.Version != bid.Version {
		return repositories.ErrVersionConflict
	}
	stored.Status = status
	stored.Version++
	bid.Status = status
	bid.Version++
	return nil
}

func (r *fakeBidRepo) RejectPendingSiblings(db *gorm.DB, postingID, exceptBidID string) ([]string, error) {
	var rejected []string
	for _, b := range r.bids {
		if b.PostingID == postingID && b.ID != exceptBidID && b.Status == models.BidStatusPending {
			b.Status = models.BidStatusRejected
			b.Version++
			rejected = append(rejected, b.ID)
		}
	}
	return rejected, nil
}

// --- Review ---

type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) CreateReview(db *gorm.DB, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.PostingID == review.PostingID && existing.HomeownerID == review.HomeownerID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) FindReviewByPostingAndHomeowner(db *gorm.DB, postingID, homeownerID string) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.PostingID == postingID && review.HomeownerID == homeownerID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindReviewsByCompanyOwner(db *gorm.DB, companyOwnerID string) ([]models.Review, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.CompanyOwnerID == companyOwnerID {
			out = append(out, *review)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeReviewRepo) CalculateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) (float64, error) {
	var sum, count float64
	for _, review := range r.reviews {
		if review.CompanyOwnerID == companyOwnerID {
			sum += float64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

func (r *fakeReviewRepo) UpdateCompanyOwnerRating(db *gorm.DB, companyOwnerID string) error {
	return nil
}

// --- Notification ---

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) CreateBulkNotifications(db *gorm.DB, notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := r.CreateNotification(db, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindUserNotifications(db *gorm.DB, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeNotificationRepo) MarkAsRead(db *gorm.DB, notificationID, userID string) error {
	for _, n := range r.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// --- User ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
