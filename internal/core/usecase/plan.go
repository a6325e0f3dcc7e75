package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

// analysis is the per-file outcome the plan is built from. An empty name
// keeps the original stem; an empty category means rename mode.
type analysis struct {
	file     domain.SupportedFile
	name     string
	category string
}

// planBuilder assigns non-colliding destinations. Paths claimed by earlier
// entries count as taken even though nothing exists on disk yet.
type planBuilder struct {
	store   ports.FileStore
	claimed map[string]struct{}
}

func newPlanBuilder(store ports.FileStore) *planBuilder {
	return &planBuilder{store: store, claimed: make(map[string]struct{})}
}

func (b *planBuilder) build(ctx context.Context, dir string, mode domain.Mode, items []analysis) (domain.Plan, error) {
	plan := domain.Plan{Directory: dir, Mode: mode, Entries: make([]domain.PlanEntry, 0, len(items))}
	for _, item := range items {
		targetDir := dir
		if item.category != "" {
			targetDir = filepath.Join(dir, item.category)
		}
		base := item.name
		if base == "" {
			base = item.file.Stem()
		}

		dest, err := b.resolve(ctx, item.file.Path, targetDir, base, item.file.Ext())
		if err != nil {
			return domain.Plan{}, err
		}
		if dest == item.file.Path {
			continue
		}
		b.claimed[dest] = struct{}{}
		plan.Entries = append(plan.Entries, domain.PlanEntry{
			Source:      item.file.Path,
			Destination: dest,
			Category:    item.category,
		})
	}
	return plan, nil
}

func (b *planBuilder) resolve(ctx context.Context, src, dir, base, ext string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for n := 1; candidate != src; n++ {
		taken, err := b.taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
	return candidate, nil
}

func (b *planBuilder) taken(ctx context.Context, path string) (bool, error) {
	if _, ok := b.claimed[path]; ok {
		return true, nil
	}
	exists, err := b.store.Exists(ctx, path)
	if err != nil {
		return false, fmt.Errorf("check destination %s: %w", path, err)
	}
	return exists, nil
}
