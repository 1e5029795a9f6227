package lsm

import lru "github.com/hashicorp/golang-lru/v2"

// BlockCache is an opaque lookup collaborator: it accepts (sst_id,
// block_idx) and returns a shared Block, with its own eviction policy.
// This package does not prescribe replacement policy, sharding, or
// memory accounting, and SsTable.ReadBlock does not consult one — it's
// a seam for a future compaction/hot-read path, not part of this
// core's read contract.
type BlockCache interface {
	Get(sstID uint64, blockIdx int) (*Block, bool)
	Put(sstID uint64, blockIdx int, block *Block)
}

type blockCacheKey struct {
	sstID    uint64
	blockIdx int
}

// LRUBlockCache is a BlockCache backed by an in-process LRU.
type LRUBlockCache struct {
	cache *lru.Cache[blockCacheKey, *Block]
}

// NewLRUBlockCache creates a BlockCache holding up to capacity blocks.
func NewLRUBlockCache(capacity int) (*LRUBlockCache, error) {
	c, err := lru.New[blockCacheKey, *Block](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUBlockCache{cache: c}, nil
}

// Get returns the cached block for (sstID, blockIdx), if present.
func (c *LRUBlockCache) Get(sstID uint64, blockIdx int) (*Block, bool) {
	return c.cache.Get(blockCacheKey{sstID, blockIdx})
}

// Put stores block under (sstID, blockIdx), possibly evicting another
// entry.
func (c *LRUBlockCache) Put(sstID uint64, blockIdx int, block *Block) {
	c.cache.Add(blockCacheKey{sstID, blockIdx}, block)
}
