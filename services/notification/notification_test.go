package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"servicefinder/models"
	"servicefinder/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeNotificationRepo struct {
	notifications []*models.Notification
	seq           int
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	f.seq++
	if n.ID == "" {
		n.ID = fmt.Sprintf("ntf-%d", f.seq)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	cp := *n
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipient(_ context.Context, recipient string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].Recipient == recipient {
			out = append(out, *f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) HasUnreadByType(_ context.Context, recipient, notificationType string) (bool, error) {
	for _, n := range f.notifications {
		if n.Recipient == recipient && n.Type == notificationType && !n.Read {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipient string) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.Recipient == recipient && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipient string) error {
	for _, n := range f.notifications {
		if n.ID == id && n.Recipient == recipient {
			n.Read = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkSent(_ context.Context, id string) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.Sent = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, recipient string) error {
	for i, n := range f.notifications {
		if n.ID == id && n.Recipient == recipient {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func newTestNotificationService() (*DefaultNotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return &DefaultNotificationService{Repo: repo}, repo
}

func TestNotifyRequiresRecipient(t *testing.T) {
	svc, _ := newTestNotificationService()

	err := svc.Notify(context.Background(), &models.Notification{Message: "hi"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestNotifyPersistsWithoutQueue(t *testing.T) {
	svc, repo := newTestNotificationService()

	err := svc.Notify(context.Background(), &models.Notification{
		Recipient: "u1", Message: "hello", Type: models.NotificationComment,
	})
	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)
	assert.False(t, repo.notifications[0].Sent)
}

func TestNotifyAdminDigestCapsUnread(t *testing.T) {
	svc, repo := newTestNotificationService()

	require.NoError(t, svc.NotifyAdminDigest(context.Background(), "admin1", "u1"))
	require.NoError(t, svc.NotifyAdminDigest(context.Background(), "admin1", "u2"))
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, AdminDigestMessage, repo.notifications[0].Message)

	require.NoError(t, repo.MarkRead(context.Background(), repo.notifications[0].ID, "admin1"))
	require.NoError(t, svc.NotifyAdminDigest(context.Background(), "admin1", "u3"))
	assert.Len(t, repo.notifications, 2)
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, _ := newTestNotificationService()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(context.Background(), &models.Notification{
			Recipient: "u1", Message: fmt.Sprintf("msg-%d", i), Type: models.NotificationComment,
		}))
	}
	require.NoError(t, svc.Notify(context.Background(), &models.Notification{
		Recipient: "u2", Message: "other user", Type: models.NotificationComment,
	}))

	got, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "msg-2", got[0].Message)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	svc, repo := newTestNotificationService()

	require.NoError(t, svc.Notify(context.Background(), &models.Notification{
		Recipient: "u1", Message: "a", Type: models.NotificationComment,
	}))
	require.NoError(t, svc.Notify(context.Background(), &models.Notification{
		Recipient: "u1", Message: "b", Type: models.NotificationComment,
	}))

	count, err := svc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(context.Background(), repo.notifications[0].ID, "u1"))
	count, err = svc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkReadAndDeleteMissingAreNotFound(t *testing.T) {
	svc, _ := newTestNotificationService()

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "ghost", "u1"), utils.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost", "u1"), utils.ErrNotFound)
}

func TestDeleteIsScopedToRecipient(t *testing.T) {
	svc, repo := newTestNotificationService()

	require.NoError(t, svc.Notify(context.Background(), &models.Notification{
		Recipient: "u1", Message: "mine", Type: models.NotificationComment,
	}))

	// Another user cannot delete it.
	assert.ErrorIs(t, svc.Delete(context.Background(), repo.notifications[0].ID, "u2"), utils.ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), repo.notifications[0].ID, "u1"))
	assert.Empty(t, repo.notifications)
}
