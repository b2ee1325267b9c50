package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	domain "artmarket-admin/internal/domain/pricing"
)

type fakeTx struct{ calls int }

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memPricings struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.ArtworkPricing // by artwork id
}

func newMemPricings() *memPricings {
	return &memPricings{rows: map[string]domain.ArtworkPricing{}}
}

func (m *memPricings) FindByID(_ context.Context, id string) (*domain.ArtworkPricing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPricings) FindByArtworkID(_ context.Context, artworkID string) (*domain.ArtworkPricing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[artworkID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPricings) FindBySlug(_ context.Context, slug string) (*domain.ArtworkPricing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ArtworkSlug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPricings) List(_ context.Context, q ListQuery) ([]domain.ArtworkPricing, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ArtworkPricing
	for _, p := range m.rows {
		if q.Search != "" && !strings.Contains(strings.ToLower(p.ArtworkTitle), strings.ToLower(q.Search)) {
			continue
		}
		if q.Active != nil && p.IsActive != *q.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArtworkID < out[j].ArtworkID })
	total := int64(len(out))
	if q.Offset < len(out) {
		out = out[q.Offset:]
	} else {
		out = nil
	}
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (m *memPricings) Save(_ context.Context, p *domain.ArtworkPricing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		m.seq++
		p.ID = fmt.Sprintf("p-%d", m.seq)
	}
	m.rows[p.ArtworkID] = *p
	return nil
}

func (m *memPricings) SaveAll(ctx context.Context, ps []*domain.ArtworkPricing) error {
	for _, p := range ps {
		if err := m.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *memPricings) ListActiveMatching(_ context.Context, f domain.Filter) ([]*domain.ArtworkPricing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ArtworkPricing
	for _, p := range m.rows {
		if !p.IsActive || !f.Matches(p.Target()) {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPricings) ResetAll(_ context.Context, updatedBy *uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, p := range m.rows {
		if !p.IsActive {
			continue
		}
		p.Reset()
		p.UpdatedBy = updatedBy
		m.rows[k] = p
		n++
	}
	return n, nil
}

type memAdjustments struct {
	mu   sync.Mutex
	rows []*domain.GlobalPricingAdjustment
}

func (m *memAdjustments) Active(context.Context) (*domain.GlobalPricingAdjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.rows {
		if g.IsActive {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAdjustments) FindByID(_ context.Context, id string) (*domain.GlobalPricingAdjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.rows {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAdjustments) Create(_ context.Context, g *domain.GlobalPricingAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = fmt.Sprintf("g-%d", len(m.rows)+1)
	cp := *g
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memAdjustments) DeactivateAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, g := range m.rows {
		if g.IsActive {
			g.IsActive = false
			n++
		}
	}
	return n, nil
}

func (m *memAdjustments) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.rows {
		if g.ID == id {
			g.IsActive = false
		}
	}
	return nil
}

func (m *memAdjustments) SetAffected(_ context.Context, id string, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.rows {
		if g.ID == id {
			g.AffectedCount = n
		}
	}
	return nil
}

func (m *memAdjustments) List(_ context.Context, limit, offset int) ([]domain.GlobalPricingAdjustment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.GlobalPricingAdjustment
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, *m.rows[i])
	}
	total := int64(len(out))
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memAdjustments) activeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, g := range m.rows {
		if g.IsActive {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	events []domain.Event
}

func (r *recordingPublisher) PublishPricing(_ context.Context, events ...domain.Event) error {
	r.events = append(r.events, events...)
	return nil
}

type memCache struct {
	entry   *domain.GlobalPricingAdjustment
	found   bool
	failSet bool
}

func (m *memCache) GetActive(context.Context) (*domain.GlobalPricingAdjustment, bool, error) {
	return m.entry, m.found, nil
}

func (m *memCache) SetActive(_ context.Context, g *domain.GlobalPricingAdjustment) error {
	if m.failSet {
		return errors.New("READONLY You can't write against a read only replica")
	}
	m.entry, m.found = g, true
	return nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.entry, m.found = nil, false
	return nil
}
