package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	if resume.UpdatedAt.IsZero() {
		resume.UpdatedAt = resume.CreatedAt
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, int, error) {
	all, err := r.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset >= total {
		return []Resume{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *MemoryRepo) ListAllByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) FindByHash(ctx context.Context, userID, fileHash string) (Resume, error) {
	all, err := r.ListAllByUser(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	for _, resume := range all {
		if resume.FileHash == fileHash {
			return resume, nil
		}
	}
	return Resume{}, ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.resumes, resumeID)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, resume := range r.resumes {
		if resume.UserID == userID {
			delete(r.resumes, id)
			n++
		}
	}
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)
