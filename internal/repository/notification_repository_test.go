package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
)

func TestNotificationRepositoryAddAssignsFields(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(nil)
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo.SetClock(func() time.Time { return fixed })

	n, err := repo.Add(ctx, models.Notification{UserID: "u1", Message: "hello", Type: models.NotificationInfo})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.Equal(t, fixed, n.CreatedAt)
	assert.Equal(t, models.KindGeneral, n.Kind)
}

func TestNotificationRepositoryListByUser_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(nil)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		tick := base.Add(time.Duration(i) * time.Minute)
		repo.SetClock(func() time.Time { return tick })
		_, err := repo.Add(ctx, models.Notification{UserID: "u1", Message: msg})
		require.NoError(t, err)
	}
	repo.SetClock(func() time.Time { return base.Add(time.Hour) })
	_, err := repo.Add(ctx, models.Notification{UserID: "other", Message: "not yours"})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
	assert.Equal(t, "first", list[2].Message)
}

func TestNotificationRepositoryMarkAllRead_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(nil)

	for i := 0; i < 2; i++ {
		_, err := repo.Add(ctx, models.Notification{UserID: "u1", Message: "m"})
		require.NoError(t, err)
	}
	_, err := repo.Add(ctx, models.Notification{UserID: "u2", Message: "m"})
	require.NoError(t, err)

	changed, err := repo.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	count, err := repo.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := repo.UnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, otherCount)

	// Second pass finds nothing left to flip.
	changed, err = repo.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestNotificationRepositoryHasKind(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(nil)

	_, err := repo.Add(ctx, models.Notification{
		UserID:  "u1",
		Message: "Report Due",
		Kind:    models.KindReportDue,
		EventID: "e1",
	})
	require.NoError(t, err)

	found, err := repo.HasKind(ctx, "u1", models.KindReportDue, "e1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.HasKind(ctx, "u1", models.KindReportDue, "e2")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = repo.HasKind(ctx, "u2", models.KindReportDue, "e1")
	require.NoError(t, err)
	assert.False(t, found)
}
