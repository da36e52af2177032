package memory

import (
	"task-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SnapshotCache struct {
	cache *cache.Cache
}

// NewSnapshotCache keeps validated task snapshots in process memory. Entries
// never expire; staleness is an accepted tradeoff for availability.
func NewSnapshotCache() *SnapshotCache {
	c := cache.New(cache.NoExpiration, 0)
	return &SnapshotCache{
		cache: c,
	}
}

func (r *SnapshotCache) Get(taskId uuid.UUID) (*entity.TaskSnapshot, bool) {
	if x, found := r.cache.Get(taskId.String()); found {
		return x.(*entity.TaskSnapshot), true
	}
	return nil, false
}

func (r *SnapshotCache) Set(snapshot *entity.TaskSnapshot) {
	r.cache.Set(snapshot.TaskId.String(), snapshot, cache.NoExpiration)
}
