package services

import (
	"context"
	"testing"
	"time"

	"yardwork_backend/internal/events"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvent_BidSubmittedNotifiesHomeowner(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(nil, repo, newFakeBidRepo(), newFakePostingRepo())

	svc.HandleEvent(events.Event{
		Type:      events.EventBidSubmitted,
		PostingID: "posting-1",
		BidID:     "bid-1",
		ActorID:   "company-1",
		TargetID:  "owner-1",
		Timestamp: time.Now(),
	})

	require.Len(t, repo.notifications, 1)
	n := repo.notifications[0]
	assert.Equal(t, "owner-1", n.UserID)
	assert.Equal(t, repositories.NotificationTypeNewBid, n.Type)
	assert.False(t, n.IsRead)
}

func TestHandleEvent_BidsRejectedNotifiesEachBidder(t *testing.T) {
	repo := newFakeNotificationRepo()
	bids := newFakeBidRepo()
	svc := NewNotificationService(nil, repo, bids, newFakePostingRepo())

	bidA := &models.Bid{PostingID: "posting-1", BidderID: "company-a", Status: models.BidStatusRejected, Version: 2}
	bidB := &models.Bid{PostingID: "posting-1", BidderID: "company-b", Status: models.BidStatusRejected, Version: 2}
	require.NoError(t, bids.Create(nil, bidA))
	require.NoError(t, bids.Create(nil, bidB))

	svc.HandleEvent(events.Event{
		Type:      events.EventBidsRejected,
		PostingID: "posting-1",
		BidIDs:    []string{bidA.ID, bidB.ID},
		ActorID:   "owner-1",
		Timestamp: time.Now(),
	})

	require.Len(t, repo.notifications, 2)
	recipients := map[string]bool{}
	for _, n := range repo.notifications {
		assert.Equal(t, repositories.NotificationTypeBidRejected, n.Type)
		recipients[n.UserID] = true
	}
	assert.True(t, recipients["company-a"])
	assert.True(t, recipients["company-b"])
}

func TestHandleEvent_UnknownTargetIsSkipped(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(nil, repo, newFakeBidRepo(), newFakePostingRepo())

	svc.HandleEvent(events.Event{
		Type:      events.EventJobConfirmed,
		PostingID: "posting-1",
		Timestamp: time.Now(),
	})

	assert.Empty(t, repo.notifications)
}

func TestListNotifications_PaginatesAndCounts(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(nil, repo, newFakeBidRepo(), newFakePostingRepo())

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(nil, &models.Notification{
			UserID: "owner-1",
			Type:   repositories.NotificationTypeNewBid,
			Title:  "New bid received",
		}))
	}

	notifications, total, err := svc.ListNotifications(context.Background(), "owner-1", false, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, notifications, 2)
}

func TestMarkAsRead_RequiresMatchingUser(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(nil, repo, newFakeBidRepo(), newFakePostingRepo())

	n := &models.Notification{UserID: "owner-1", Type: repositories.NotificationTypeNewBid}
	require.NoError(t, repo.CreateNotification(nil, n))

	err := svc.MarkAsRead(context.Background(), n.ID, "someone-else")
	require.Error(t, err)

	require.NoError(t, svc.MarkAsRead(context.Background(), n.ID, "owner-1"))

	count, err := svc.GetUnreadCount(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
