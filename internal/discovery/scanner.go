package discovery

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Scanner probes a list of targets with a fixed pool of workers
type Scanner struct {
	prober      Prober
	concurrency int
	metrics     metrics.Metrics
	log         logger.Logger
}

// NewScanner returns a new instance of Scanner
func NewScanner(prober Prober, concurrency int, m metrics.Metrics) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}

	if m == nil {
		m = metrics.Noop{}
	}

	return &Scanner{
		prober:      prober,
		concurrency: concurrency,
		metrics:     m,
		log:         logger.New().With("discovery"),
	}
}

type hit struct {
	index int64
	ip    string
}

// Scan probes targets and returns the responders in target order. Unless
// all is set it stops at the first responder and returns at most one
// address. Scan returns once every worker has exited.
func (s *Scanner) Scan(ctx context.Context, targets []string, all bool) []string {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cursor atomic.Int64
	var found atomic.Bool

	mux := sync.Mutex{}
	hits := []hit{}

	workers := s.concurrency

	if workers > len(targets) {
		workers = len(targets)
	}

	group := errgroup.Group{}

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for {
				if ctx.Err() != nil || (!all && found.Load()) {
					return nil
				}

				idx := cursor.Add(1) - 1

				if idx >= int64(len(targets)) {
					return nil
				}

				ip := targets[idx]

				if !s.prober.Probe(ctx, ip) {
					s.metrics.IncProbes("miss")
					continue
				}

				s.metrics.IncProbes("hit")

				if all {
					mux.Lock()
					hits = append(hits, hit{index: idx, ip: ip})
					mux.Unlock()
					continue
				}

				if found.CompareAndSwap(false, true) {
					mux.Lock()
					hits = append(hits, hit{index: idx, ip: ip})
					mux.Unlock()

					s.log.Debug().Str("ip", ip).Msg("found device")

					cancel()
				}

				return nil
			}
		})
	}

	group.Wait()

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].index < hits[j].index
	})

	results := make([]string, 0, len(hits))

	for _, h := range hits {
		results = append(results, h.ip)
	}

	return results
}
