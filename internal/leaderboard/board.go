package leaderboard

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/mathquest/internal/logger"
	"github.com/abhisek/mathquest/internal/tournament"
)

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mathquest_leaderboard_cache_requests_total",
	Help: "Leaderboard reads by board kind and cache result.",
}, []string{"board", "result"})

// Source loads standings from the system of record.
type Source interface {
	QualifierLeaderboard(ctx context.Context, qualifierID string, limit int) ([]tournament.Standing, error)
	FinalLeaderboard(ctx context.Context, finalID string, limit int) ([]tournament.Standing, error)
}

// Options configures a Board.
type Options struct {
	TTL    time.Duration
	Prefix string
	Log    *logger.Logger
}

// Board serves leaderboards from the cache, loading misses from the source.
// Cache failures are logged and fall through to the source.
type Board struct {
	src    Source
	cache  Cache
	ttl    time.Duration
	prefix string
	log    *logger.Logger
	flight singleflight.Group
}

// New creates a Board. A nil cache serves every read from src.
func New(src Source, cache Cache, opts Options) *Board {
	if opts.TTL <= 0 {
		opts.TTL = time.Minute
	}
	if opts.Prefix == "" {
		opts.Prefix = "mathquest"
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Board{
		src:    src,
		cache:  cache,
		ttl:    opts.TTL,
		prefix: opts.Prefix,
		log:    opts.Log.With("component", "leaderboard"),
	}
}

const (
	kindQualifier = "qualifier"
	kindFinal     = "final"
)

// Qualifier returns a qualifier's standings.
func (b *Board) Qualifier(ctx context.Context, qualifierID string, limit int) ([]tournament.Standing, error) {
	return b.read(ctx, kindQualifier, qualifierID, limit, b.src.QualifierLeaderboard)
}

// Final returns a final's standings.
func (b *Board) Final(ctx context.Context, finalID string, limit int) ([]tournament.Standing, error) {
	return b.read(ctx, kindFinal, finalID, limit, b.src.FinalLeaderboard)
}

// InvalidateQualifier drops every cached page of a qualifier board.
func (b *Board) InvalidateQualifier(ctx context.Context, qualifierID string) {
	b.invalidate(ctx, kindQualifier, qualifierID)
}

// InvalidateFinal drops every cached page of a final board.
func (b *Board) InvalidateFinal(ctx context.Context, finalID string) {
	b.invalidate(ctx, kindFinal, finalID)
}

func (b *Board) key(kind, id string) string {
	return b.prefix + ":lb:" + kind + ":" + id
}

type loadFunc func(ctx context.Context, id string, limit int) ([]tournament.Standing, error)

func (b *Board) read(ctx context.Context, kind, id string, limit int, load loadFunc) ([]tournament.Standing, error) {
	if b.cache == nil || id == "" {
		return load(ctx, id, limit)
	}

	key, field := b.key(kind, id), strconv.Itoa(limit)
	if raw, ok, err := b.cache.Get(ctx, key, field); err != nil {
		cacheRequests.WithLabelValues(kind, "error").Inc()
		b.log.Warn("leaderboard cache read failed", "key", key, "error", err)
	} else if ok {
		var out []tournament.Standing
		if err := json.Unmarshal(raw, &out); err == nil {
			cacheRequests.WithLabelValues(kind, "hit").Inc()
			return out, nil
		}
		b.log.Warn("leaderboard cache entry corrupt", "key", key)
	}
	cacheRequests.WithLabelValues(kind, "miss").Inc()

	v, err, _ := b.flight.Do(key+"#"+field, func() (any, error) {
		out, err := load(ctx, id, limit)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(out); err == nil {
			if err := b.cache.Set(ctx, key, field, raw, b.ttl); err != nil {
				b.log.Warn("leaderboard cache write failed", "key", key, "error", err)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]tournament.Standing), nil
}

func (b *Board) invalidate(ctx context.Context, kind, id string) {
	if b.cache == nil {
		return
	}
	key := b.key(kind, id)
	if err := b.cache.Delete(ctx, key); err != nil {
		b.log.Warn("leaderboard cache invalidate failed", "key", key, "error", err)
	}
}
