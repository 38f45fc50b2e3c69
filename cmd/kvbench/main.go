// kvbench drives set -> get -> remove round trips against a running kektorkv
// server and prints per-operation latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sanonone/kektorkv/pkg/client"
	"golang.org/x/sync/errgroup"
)

type sample struct {
	set, get, remove time.Duration
	ran, ok          bool
}

type report struct {
	requests  int
	successes int
	failures  int
	total     time.Duration

	avgSet, avgGet, avgRemove time.Duration
	maxSet, maxGet, maxRemove time.Duration
}

// roundTrip runs one set/get/remove cycle on a fresh key.
// A cycle succeeds when every call succeeds and the get returns the written value.
func roundTrip(c *client.Client) sample {
	s := sample{ran: true}
	key := "key_" + uuid.NewString()
	value := "value_" + uuid.NewString()

	start := time.Now()
	errSet := c.Set(key, value)
	s.set = time.Since(start)

	start = time.Now()
	got, found, errGet := c.Get(key)
	s.get = time.Since(start)

	start = time.Now()
	errRemove := c.Remove(key)
	s.remove = time.Since(start)

	s.ok = errSet == nil && errGet == nil && errRemove == nil && found && got == value
	return s
}

func run(ctx context.Context, c *client.Client, n, concurrency int) (report, error) {
	samples := make([]sample, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	start := time.Now()
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			samples[i] = roundTrip(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report{}, err
	}

	// Rounds skipped after cancellation are not part of the report.
	r := report{total: time.Since(start)}
	var sumSet, sumGet, sumRemove time.Duration
	for _, s := range samples {
		if !s.ran {
			continue
		}
		r.requests++
		if s.ok {
			r.successes++
		} else {
			r.failures++
		}
		sumSet += s.set
		sumGet += s.get
		sumRemove += s.remove
		r.maxSet = max(r.maxSet, s.set)
		r.maxGet = max(r.maxGet, s.get)
		r.maxRemove = max(r.maxRemove, s.remove)
	}
	if r.requests > 0 {
		r.avgSet = sumSet / time.Duration(r.requests)
		r.avgGet = sumGet / time.Duration(r.requests)
		r.avgRemove = sumRemove / time.Duration(r.requests)
	}
	return r, ctx.Err()
}

func (r report) print(w io.Writer) {
	fmt.Fprintf(w, "Number of Requests: %d\n", r.requests)
	fmt.Fprintf(w, "Average Set Time: %s (max %s)\n", r.avgSet, r.maxSet)
	fmt.Fprintf(w, "Average Get Time: %s (max %s)\n", r.avgGet, r.maxGet)
	fmt.Fprintf(w, "Average Remove Time: %s (max %s)\n", r.avgRemove, r.maxRemove)
	fmt.Fprintf(w, "Total Successes: %d\n", r.successes)
	fmt.Fprintf(w, "Total Errors: %d\n", r.failures)
	fmt.Fprintf(w, "Total Time: %s\n", r.total.Round(time.Millisecond))
	if secs := r.total.Seconds(); secs > 0 {
		fmt.Fprintf(w, "Requests Per Second: %.2f\n", float64(r.requests)/secs)
	}
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:3030", "Base URL of the kektorkv server")
	n := flag.Int("n", 1000, "Number of set/get/remove round trips")
	concurrency := flag.Int("c", 50, "Maximum concurrent round trips")
	flag.Parse()

	if *n < 0 || *concurrency < 1 {
		log.Fatalf("-n must be >= 0 and -c must be >= 1")
	}

	r, err := run(context.Background(), client.NewWithURL(*baseURL), *n, *concurrency)
	if err != nil {
		log.Fatalf("Benchmark aborted: %v", err)
	}
	r.print(os.Stdout)
}
