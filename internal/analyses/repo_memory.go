package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// ListByUser returns the newest analyses first along with the user's total count.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	owned := make([]Analysis, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	if offset >= total {
		return []Analysis{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return owned[offset:end], total, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, analysisID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[analysisID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, analysisID)
	return nil
}

func (r *MemoryRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	return r.deleteWhere(ctx, func(a Analysis) bool { return a.ResumeID == resumeID })
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteWhere(ctx, func(a Analysis) bool { return a.UserID == userID })
}

func (r *MemoryRepo) deleteWhere(ctx context.Context, match func(Analysis) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.byID {
		if match(a) {
			delete(r.byID, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
