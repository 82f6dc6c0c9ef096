package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang/glog"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/VanDung-dev/NamedCache/bridge"
	"github.com/VanDung-dev/NamedCache/cache"
)

// StressTestConfig holds configuration for the stress test.
type StressTestConfig struct {
	Concurrency int    `short:"c" long:"concurrency" default:"8" description:"Number of concurrent workers"`
	Keys        int    `short:"k" long:"keys" default:"10000" description:"Distinct keys written by each worker"`
	Rounds      int    `short:"r" long:"rounds" default:"3" description:"Times each worker overwrites its keys"`
	Shards      int    `short:"s" long:"shards" default:"16" description:"Registry shard count"`
	Map         string `short:"m" long:"map" default:"stress" description:"Name of the shared map"`
	ReportFile  string `short:"o" long:"output" description:"Output report file (JSON)"`
}

// StressTestResult holds the results of a stress test.
type StressTestResult struct {
	TotalCalls    int64
	Inserted      int64
	Overwritten   int64
	Reads         int64
	Exports       int64
	TotalDuration time.Duration
	AvgLatency    time.Duration
	MinLatency    time.Duration
	MaxLatency    time.Duration
	CallsPerSec   float64
	FinalSize     int
	Mismatches    int
}

func main() {
	var config StressTestConfig
	if _, err := flags.Parse(&config); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	defer glog.Flush()

	fmt.Println("=== NamedCache Stress Test ===")
	fmt.Printf("Concurrency: %d workers\n", config.Concurrency)
	fmt.Printf("Keys/worker: %d x %d rounds\n", config.Keys, config.Rounds)
	fmt.Printf("Shards:      %d\n", config.Shards)
	fmt.Println()

	adapter := bridge.NewAdapter(cache.New(cache.Options{Shards: config.Shards}), nil)
	result, err := runStressTest(context.Background(), adapter, config)
	if err != nil {
		glog.Errorf("stress test failed: %v", err)
		os.Exit(1)
	}

	printResults(result)

	if config.ReportFile != "" {
		saveReport(config, result)
	}
	if result.Mismatches > 0 {
		os.Exit(1)
	}
}

// latencyStats accumulates per-call latency across workers.
type latencyStats struct {
	total int64
	count int64
	min   int64
	max   int64
}

func newLatencyStats() *latencyStats {
	return &latencyStats{min: 1<<63 - 1}
}

func (s *latencyStats) observe(d time.Duration) {
	lat := int64(d)
	atomic.AddInt64(&s.total, lat)
	atomic.AddInt64(&s.count, 1)
	for {
		old := atomic.LoadInt64(&s.min)
		if lat >= old || atomic.CompareAndSwapInt64(&s.min, old, lat) {
			break
		}
	}
	for {
		old := atomic.LoadInt64(&s.max)
		if lat <= old || atomic.CompareAndSwapInt64(&s.max, old, lat) {
			break
		}
	}
}

// runStressTest has every worker upsert its own disjoint key range for several
// rounds while reading and exporting, then checks that the map holds exactly
// one entry per key with the last value written for it.
func runStressTest(ctx context.Context, a *bridge.Adapter, config StressTestConfig) (StressTestResult, error) {
	if config.Concurrency <= 0 || config.Keys <= 0 || config.Rounds <= 0 {
		return StressTestResult{}, fmt.Errorf("concurrency, keys and rounds must be positive")
	}

	var inserted, overwritten, reads, exports, readMismatches int64
	lat := newLatencyStats()

	a.CreateMap(config.Map)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < config.Concurrency; w++ {
		g.Go(func() error {
			for round := 0; round < config.Rounds; round++ {
				for i := 0; i < config.Keys; i++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					start := time.Now()
					switch a.UpsertNumberStatus(config.Map, workerKey(w, i), lastValue(w, i, round)) {
					case bridge.StatusInserted:
						atomic.AddInt64(&inserted, 1)
					case bridge.StatusOverwritten:
						atomic.AddInt64(&overwritten, 1)
					default:
						return fmt.Errorf("worker %d: map %q disappeared", w, config.Map)
					}
					lat.observe(time.Since(start))

					// Keys are disjoint per worker, so the read must see this round's write.
					if i%16 == 0 {
						if got, want := a.GetNumber(config.Map, workerKey(w, i)), lastValue(w, i, round); got != want {
							glog.Warningf("read %s: got %v, want %v", workerKey(w, i), got, want)
							atomic.AddInt64(&readMismatches, 1)
						}
						atomic.AddInt64(&reads, 1)
					}
				}
				p, n := a.ExportNumericEntries(config.Map)
				a.FreeEntries(p, n)
				atomic.AddInt64(&exports, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return StressTestResult{}, err
	}
	duration := time.Since(startTime)

	mismatches := int(atomic.LoadInt64(&readMismatches))
	for w := 0; w < config.Concurrency; w++ {
		for i := 0; i < config.Keys; i++ {
			want := lastValue(w, i, config.Rounds-1)
			if got := a.GetNumber(config.Map, workerKey(w, i)); got != want {
				glog.Warningf("key %s: got %v, want %v", workerKey(w, i), got, want)
				mismatches++
			}
		}
	}

	total := atomic.LoadInt64(&inserted) + atomic.LoadInt64(&overwritten) + atomic.LoadInt64(&reads) + atomic.LoadInt64(&exports)
	var avgLatency time.Duration
	if c := atomic.LoadInt64(&lat.count); c > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&lat.total) / c)
	}

	return StressTestResult{
		TotalCalls:    total,
		Inserted:      inserted,
		Overwritten:   overwritten,
		Reads:         reads,
		Exports:       exports,
		TotalDuration: duration,
		AvgLatency:    avgLatency,
		MinLatency:    time.Duration(lat.min),
		MaxLatency:    time.Duration(lat.max),
		CallsPerSec:   float64(total) / duration.Seconds(),
		FinalSize:     a.MapSize(config.Map),
		Mismatches:    mismatches,
	}, nil
}

func workerKey(worker, i int) string {
	return fmt.Sprintf("w%03d-k%06d", worker, i)
}

func lastValue(worker, i, round int) float64 {
	return float64(worker)*1e6 + float64(i) + float64(round)/10
}

func printResults(result StressTestResult) {
	fmt.Println("=== Results ===")
	fmt.Printf("Duration:        %v\n", result.TotalDuration.Round(time.Millisecond))
	fmt.Printf("Total Calls:     %d\n", result.TotalCalls)
	fmt.Printf("Inserted:        %d\n", result.Inserted)
	fmt.Printf("Overwritten:     %d\n", result.Overwritten)
	fmt.Printf("Reads/Exports:   %d / %d\n", result.Reads, result.Exports)
	fmt.Printf("Calls/sec:       %.2f\n", result.CallsPerSec)
	fmt.Printf("Avg Latency:     %v\n", result.AvgLatency)
	fmt.Printf("Min Latency:     %v\n", result.MinLatency)
	fmt.Printf("Max Latency:     %v\n", result.MaxLatency)
	fmt.Printf("Final Size:      %d\n", result.FinalSize)
	fmt.Printf("Mismatches:      %d\n", result.Mismatches)
}

func saveReport(config StressTestConfig, result StressTestResult) {
	report := map[string]interface{}{
		"config": map[string]interface{}{
			"concurrency": config.Concurrency,
			"keys":        config.Keys,
			"rounds":      config.Rounds,
			"shards":      config.Shards,
		},
		"results": map[string]interface{}{
			"total_calls":    result.TotalCalls,
			"inserted":       result.Inserted,
			"overwritten":    result.Overwritten,
			"calls_per_sec":  result.CallsPerSec,
			"avg_latency_us": float64(result.AvgLatency.Nanoseconds()) / 1000,
			"min_latency_us": float64(result.MinLatency.Nanoseconds()) / 1000,
			"max_latency_us": float64(result.MaxLatency.Nanoseconds()) / 1000,
			"final_size":     result.FinalSize,
			"mismatches":     result.Mismatches,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		glog.Errorf("Failed to encode report: %v", err)
		return
	}
	if err := os.WriteFile(config.ReportFile, data, 0o644); err != nil {
		glog.Errorf("Failed to write report: %v", err)
	} else {
		fmt.Printf("Report saved to: %s\n", config.ReportFile)
	}
}
