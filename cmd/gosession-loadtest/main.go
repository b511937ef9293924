// Command gosession-loadtest seeds sessions and drives concurrent resolve
// and refresh traffic against a Redis-backed engine for rough throughput
// numbers. With no -redis-addr flag and no REDIS_ADDR env it runs against an
// embedded miniredis.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/Kade-Lor/goSession"
	"github.com/Kade-Lor/goSession/session"
	"github.com/Kade-Lor/goSession/session/redisstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type staticDirectory struct{}

func (staticDirectory) FindByID(_ context.Context, id string) (*goSession.Principal, error) {
	return &goSession.Principal{ID: id, Email: id + "@loadtest.local"}, nil
}

func main() {
	var (
		sessions    = flag.Int("sessions", 10000, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 128, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "resolve operations to run")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "lt", "session key prefix")
	)
	flag.Parse()

	if *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		cleanup = func() {}
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keygen failed: %v\n", err)
		os.Exit(1)
	}

	engine, err := goSession.New().
		WithConfig(goSession.Config{
			JWT: goSession.JWTConfig{
				AccessTTL:     5 * time.Minute,
				RefreshTTL:    time.Hour,
				SigningMethod: "ed25519",
				PrivateKey:    priv,
				PublicKey:     pub,
			},
			Metrics: goSession.MetricsConfig{Enabled: true, EnableLatencyHistograms: true},
		}).
		WithStore(redisstore.NewStore(client, *prefix, time.Hour)).
		WithUserDirectory(staticDirectory{}).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	fmt.Printf("seeding %d sessions...\n", *sessions)
	startSeed := time.Now()
	refreshTokens := make([]string, *sessions)
	for i := range refreshTokens {
		pair, err := engine.IssuePair(ctx, goSession.Principal{
			ID:    fmt.Sprintf("user-%d", i%1000),
			Email: fmt.Sprintf("user-%d@loadtest.local", i%1000),
		}, session.Metadata{IP: "127.0.0.1", UserAgent: "loadtest"})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed failed at %d: %v\n", i, err)
			os.Exit(1)
		}
		refreshTokens[i] = pair.RefreshToken
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	fmt.Printf("running %d resolves across %d workers...\n", *ops, *concurrency)
	var (
		wg        sync.WaitGroup
		opCount   atomic.Int64
		failCount atomic.Int64
		latencies = make([][]time.Duration, *concurrency)
	)
	startRun := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := mrand.New(mrand.NewSource(int64(worker)))
			local := make([]time.Duration, 0, *ops / *concurrency + 1)
			for opCount.Add(1) <= int64(*ops) {
				token := refreshTokens[rng.Intn(len(refreshTokens))]
				start := time.Now()
				if _, _, err := engine.Resolve(ctx, token); err != nil {
					failCount.Add(1)
				}
				local = append(local, time.Since(start))
			}
			latencies[worker] = local
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(startRun)

	var all []time.Duration
	for _, l := range latencies {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	fmt.Printf("done in %s (%.0f ops/sec, %d failures)\n",
		elapsed.Round(time.Millisecond),
		float64(len(all))/elapsed.Seconds(),
		failCount.Load(),
	)
	if len(all) > 0 {
		fmt.Printf("latency p50=%s p95=%s p99=%s max=%s\n",
			all[len(all)/2],
			all[len(all)*95/100],
			all[len(all)*99/100],
			all[len(all)-1],
		)
	}

	snapshot := engine.MetricsSnapshot()
	fmt.Printf("resolve_success=%d resolve_failures=%d\n",
		snapshot.Counters[goSession.MetricResolveSuccess],
		snapshot.Counters[goSession.MetricResolveMalformed]+
			snapshot.Counters[goSession.MetricResolveExpired]+
			snapshot.Counters[goSession.MetricResolveSessionNotFound],
	)
}
