package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

func setupChatTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS chat_messages (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  sender_id TEXT NOT NULL,
  message TEXT NOT NULL,
  edited_at DATETIME,
  deleted_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newChatService(t *testing.T) *service {
	t.Helper()
	svc, err := NewService(NewRepository(setupChatTestDB(t)))
	require.NoError(t, err)
	return svc.(*service)
}

func TestSendAndListNewestFirst(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()
	sender := uuid.New()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		tick := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return tick }
		_, err := svc.Send(context.Background(), weddingID, sender, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), weddingID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Messages, 3)
	assert.Equal(t, "message 2", page.Messages[0].Message)
	assert.Equal(t, "message 0", page.Messages[2].Message)
	assert.False(t, page.HasMore)
}

func TestListPagesWithCursor(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()
	sender := uuid.New()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tick := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return tick }
		_, err := svc.Send(context.Background(), weddingID, sender, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), weddingID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Messages, 2)
	require.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, "message 4", first.Messages[0].Message)

	second, err := svc.List(context.Background(), weddingID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Messages, 2)
	assert.Equal(t, "message 2", second.Messages[0].Message)
	assert.True(t, second.HasMore)

	third, err := svc.List(context.Background(), weddingID, pagination.Params{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	require.Len(t, third.Messages, 1)
	assert.False(t, third.HasMore)
	assert.Empty(t, third.NextCursor)
}

func TestEditBySenderStampsEditedAt(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()
	sender := uuid.New()

	message, err := svc.Send(context.Background(), weddingID, sender, "typo here")
	require.NoError(t, err)

	edited, err := svc.Edit(context.Background(), weddingID, message.ID, sender, "fixed now")
	require.NoError(t, err)
	assert.Equal(t, "fixed now", edited.Message)
	assert.NotNil(t, edited.EditedAt)
}

func TestEditByOtherUserForbidden(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()

	message, err := svc.Send(context.Background(), weddingID, uuid.New(), "hello")
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), weddingID, message.ID, uuid.New(), "hijacked")
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestDeleteRedactsInListing(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()
	sender := uuid.New()

	message, err := svc.Send(context.Background(), weddingID, sender, "regret this")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), weddingID, message.ID, sender, false))

	page, err := svc.List(context.Background(), weddingID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Empty(t, page.Messages[0].Message)
	assert.NotNil(t, page.Messages[0].DeletedAt)
}

func TestModeratorDeletesAnyMessage(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()

	message, err := svc.Send(context.Background(), weddingID, uuid.New(), "spam")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), weddingID, message.ID, uuid.New(), true)
	require.NoError(t, err)
}

func TestDeleteTwiceNotFound(t *testing.T) {
	svc := newChatService(t)
	weddingID := uuid.New()
	sender := uuid.New()

	message, err := svc.Send(context.Background(), weddingID, sender, "bye")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), weddingID, message.ID, sender, false))

	err = svc.Delete(context.Background(), weddingID, message.ID, sender, false)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
