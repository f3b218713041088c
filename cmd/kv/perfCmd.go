package kv

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/letsrust/simple-redis/cmd/util"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for simple-redis servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix   = "__perf"
	perfOps         = 10000
	perfNumThreads  = 10
	perfKeySpread   = 100
	perfValueSizeKB = 1
	perfSkip        = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,hget)"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 10000, util.WrapString("Number of operations per benchmark"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "value-size"
	perfTestCmd.Flags().Int(key, 1, util.WrapString("Size of the values in KB"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfOps = viper.GetInt("ops")
	perfNumThreads = viper.GetInt("threads")
	perfKeySpread = viper.GetInt("keys")
	perfValueSizeKB = viper.GetInt("value-size")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for simple-redis servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Operations: %d\n", perfOps)
	fmt.Println()

	fmt.Println("starting tests...")

	value := make([]byte, perfValueSizeKB*1024)
	for i := range value {
		value[i] = 'x'
	}

	registry := gometrics.NewRegistry()

	runBenchmark(registry, "set", func(i int) error {
		return kvClient.Set(perfKey("set", i), value)
	})

	runBenchmark(registry, "get", func(i int) error {
		_, _, err := kvClient.Get(perfKey("set", i))
		return err
	})

	runBenchmark(registry, "hset", func(i int) error {
		return kvClient.HSet(perfKey("hset", i%perfKeySpread), fmt.Sprintf("f%d", i), value)
	})

	runBenchmark(registry, "hget", func(i int) error {
		_, _, err := kvClient.HGet(perfKey("hset", i%perfKeySpread), fmt.Sprintf("f%d", i))
		return err
	})

	runBenchmark(registry, "hgetall", func(i int) error {
		_, err := kvClient.HGetAll(perfKey("hset", i%perfKeySpread))
		return err
	})

	return nil
}

// runBenchmark drives op from perfNumThreads workers and reports latency
// percentiles from a shared timer
func runBenchmark(registry gometrics.Registry, name string, op func(i int) error) {
	if shouldSkip(name) {
		fmt.Printf("%-8s skipped\n", name)
		return
	}

	timer := gometrics.NewRegisteredTimer(name, registry)

	var (
		wg       sync.WaitGroup
		errCount int64
		errMu    sync.Mutex
	)
	wg.Add(perfNumThreads)

	opsPerThread := perfOps / perfNumThreads
	start := time.Now()

	for t := 0; t < perfNumThreads; t++ {
		go func(thread int) {
			defer wg.Done()
			for i := 0; i < opsPerThread; i++ {
				opStart := time.Now()
				err := op(thread*opsPerThread + i)
				timer.UpdateSince(opStart)
				if err != nil {
					errMu.Lock()
					errCount++
					errMu.Unlock()
				}
			}
		}(t)
	}
	wg.Wait()

	elapsed := time.Since(start)
	printResult(name, timer, elapsed, errCount)
}

// printResult prints count, throughput and latency percentiles of one run
func printResult(name string, timer gometrics.Timer, elapsed time.Duration, errCount int64) {
	percentiles := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("%-8s %8d ops %10.0f ops/sec  mean %8s  p50 %8s  p95 %8s  p99 %8s  errors %d\n",
		name,
		timer.Count(),
		float64(timer.Count())/elapsed.Seconds(),
		time.Duration(timer.Mean()),
		time.Duration(percentiles[0]),
		time.Duration(percentiles[1]),
		time.Duration(percentiles[2]),
		errCount,
	)
}

func perfKey(name string, i int) string {
	return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, name, i%perfKeySpread)
}

func shouldSkip(name string) bool {
	for _, s := range perfSkip {
		if strings.TrimSpace(s) == name {
			return true
		}
	}
	return false
}
