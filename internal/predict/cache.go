package predict

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/fireball-picks/internal/models"
)

// cachedPrediction is the snapshot of a game's prediction columns stored
// under a (game key, model version) cache key
type cachedPrediction struct {
	ATSPick         *models.Pick
	ATSConfidence   *float64
	ATSFireballs    *int
	TotalPick       *models.Pick
	TotalConfidence *float64
	TotalFireballs  *int
}

func snapshotPredictions(game *models.Game) cachedPrediction {
	clone := game.Clone()
	return cachedPrediction{
		ATSPick:         clone.ATSPick,
		ATSConfidence:   clone.ATSConfidence,
		ATSFireballs:    clone.ATSFireballs,
		TotalPick:       clone.TotalPick,
		TotalConfidence: clone.TotalConfidence,
		TotalFireballs:  clone.TotalFireballs,
	}
}

func (c cachedPrediction) apply(game *models.Game) {
	game.ATSPick = c.ATSPick
	game.ATSConfidence = c.ATSConfidence
	game.ATSFireballs = c.ATSFireballs
	game.TotalPick = c.TotalPick
	game.TotalConfidence = c.TotalConfidence
	game.TotalFireballs = c.TotalFireballs
}

// Cache keeps predictions for settled games across scheduled runs so the
// daemon does not rescore games that cannot change under the same model
// pair
type Cache struct {
	cache     *cache.Cache
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewCache creates a prediction cache with the given TTL
func NewCache(ttl time.Duration) *Cache {
	return &Cache{cache: cache.New(ttl, ttl*2)}
}

// Get retrieves a cached prediction for a game under a model version
func (c *Cache) Get(key models.GameKey, modelVersion string) (cachedPrediction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, found := c.cache.Get(cacheKey(key, modelVersion)); found {
		if pred, ok := value.(cachedPrediction); ok {
			c.hitCount++
			return pred, true
		}
	}
	c.missCount++
	return cachedPrediction{}, false
}

// Put stores a prediction snapshot
func (c *Cache) Put(key models.GameKey, modelVersion string, pred cachedPrediction) {
	c.cache.SetDefault(cacheKey(key, modelVersion), pred)
}

// Stats returns hit and miss counts
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hitCount, c.missCount
}

func cacheKey(key models.GameKey, modelVersion string) string {
	return key.String() + "@" + modelVersion
}
