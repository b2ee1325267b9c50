package newsletters

import (
	"context"
	"testing"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/newsletters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSubs struct {
	seq  uint
	rows map[uint]domain.Subscriber
}

func (m *memSubs) FindByID(_ context.Context, id uint) (*domain.Subscriber, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSubs) FindByEmail(_ context.Context, email string) (*domain.Subscriber, error) {
	for _, s := range m.rows {
		if s.Email == email {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSubs) Create(_ context.Context, s *domain.Subscriber) error {
	m.seq++
	s.ID = m.seq
	m.rows[s.ID] = *s
	return nil
}

func (m *memSubs) Save(_ context.Context, s *domain.Subscriber) error {
	m.rows[s.ID] = *s
	return nil
}

func (m *memSubs) Delete(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memSubs) List(context.Context, ListQuery) ([]domain.Subscriber, int64, error) {
	return nil, 0, nil
}

func TestSubscribeLifecycle(t *testing.T) {
	repo := &memSubs{rows: map[uint]domain.Subscriber{}}
	s := NewService(repo)
	ctx := context.Background()

	sub, err := s.Subscribe(ctx, SubscribeInput{Email: " Fan@Example.com ", Source: "footer"})
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", sub.Email)
	assert.True(t, sub.IsSubscribed)

	_, err = s.Subscribe(ctx, SubscribeInput{Email: "fan@example.com"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	sub, err = s.Unsubscribe(ctx, "FAN@example.com")
	require.NoError(t, err)
	assert.False(t, sub.IsSubscribed)
	assert.NotNil(t, sub.UnsubscribedAt)

	sub, err = s.Subscribe(ctx, SubscribeInput{Email: "fan@example.com", Name: "Fan"})
	require.NoError(t, err)
	assert.True(t, sub.IsSubscribed)
	assert.Nil(t, sub.UnsubscribedAt)
	assert.Len(t, repo.rows, 1)

	_, err = s.Unsubscribe(ctx, "ghost@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = s.Subscribe(ctx, SubscribeInput{Email: "nope"})
	assert.Equal(t, "Invalid email format", apperr.As(err).Message)
}

func TestDelete(t *testing.T) {
	repo := &memSubs{rows: map[uint]domain.Subscriber{}}
	s := NewService(repo)
	sub, err := s.Subscribe(context.Background(), SubscribeInput{Email: "a@b.io"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), sub.ID))
	assert.True(t, apperr.IsKind(s.Delete(context.Background(), sub.ID), apperr.KindNotFound))
}
