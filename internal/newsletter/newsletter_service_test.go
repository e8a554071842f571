package newsletter_test

import (
	"context"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/newsletter"
	"labourdesk/backend/internal/storage"
	"labourdesk/backend/internal/storage/storagetest"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscribe_NewAddress(t *testing.T) {
	// Arrange
	mem := storagetest.NewMemory()
	svc := newsletter.NewService(mem, zap.NewNop())

	// Act
	res, err := svc.Subscribe(context.Background(), newsletter.SubscribeInput{
		Email:  " Efua@Example.com ",
		Topics: []string{"job-fairs", "Labour-Law", "job-fairs"},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, res.AlreadySubscribed)

	sub, err := mem.GetSubscriberByEmail(context.Background(), "efua@example.com")
	require.NoError(t, err)
	assert.True(t, sub.Active)
	assert.Equal(t, pq.StringArray{"job-fairs", "labour-law"}, sub.Topics)
}

func TestSubscribe_DefaultsTopic(t *testing.T) {
	mem := storagetest.NewMemory()
	svc := newsletter.NewService(mem, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), newsletter.SubscribeInput{Email: "a@example.com"})
	require.NoError(t, err)

	sub, err := mem.GetSubscriberByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"announcements"}, sub.Topics)
}

func TestSubscribe_IsIdempotentAndReactivates(t *testing.T) {
	mem := storagetest.NewMemory()
	svc := newsletter.NewService(mem, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, newsletter.SubscribeInput{Email: "a@example.com"})
	require.NoError(t, err)

	res, err := svc.Subscribe(ctx, newsletter.SubscribeInput{Email: "A@example.com"})
	require.NoError(t, err)
	assert.True(t, res.AlreadySubscribed)

	require.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))
	sub, err := mem.GetSubscriberByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, sub.Active)
	assert.NotNil(t, sub.UnsubscribedAt)

	res, err = svc.Subscribe(ctx, newsletter.SubscribeInput{Email: "a@example.com"})
	require.NoError(t, err)
	assert.False(t, res.AlreadySubscribed)

	sub, err = mem.GetSubscriberByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, sub.Active)
	assert.Nil(t, sub.UnsubscribedAt)
	assert.EqualValues(t, 1, sub.ID)
}

func TestSubscribe_Rejections(t *testing.T) {
	svc := newsletter.NewService(storagetest.NewMemory(), zap.NewNop())

	_, err := svc.Subscribe(context.Background(), newsletter.SubscribeInput{Email: "nope"})
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Subscribe(context.Background(), newsletter.SubscribeInput{Email: "a@example.com", Topics: []string{"gossip"}})
	_, ok = apperr.AsValidation(err)
	assert.True(t, ok)
}

func TestUnsubscribe_UnknownAddressSucceedsWithoutWriting(t *testing.T) {
	mem := storagetest.NewMemory()
	svc := newsletter.NewService(mem, zap.NewNop())

	err := svc.Unsubscribe(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	_, err = mem.GetSubscriberByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound, "no subscriber row is created")
}
