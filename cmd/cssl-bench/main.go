// cssl-bench is the external benchmark driver spec.md §1/§6 describes
// as "not re-specified" core functionality: it consumes only the
// core's public operations (Build, Find, FindRange, SortedKeys) and
// reports throughput, mirroring original_source/src/bin/cssl.rs.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/cssl-go/cssl"
	"github.com/gaarutyunov/cssl-go/internal/benchconfig"
	"github.com/gaarutyunov/cssl-go/internal/logging"
)

// sparseKeyCeiling matches the original driver's modulus for random
// sparse keys: 32767/2 - 1 + 1 == 32767/2.
const sparseKeyCeiling = 32767 / 2

func generateKeys(n int, sparse bool, rng *rand.Rand) []uint32 {
	keys := make([]uint32, n)
	if !sparse {
		for i := range keys {
			keys[i] = uint32(i) + 1
		}
		return keys
	}
	for i := range keys {
		keys[i] = uint32(rng.Intn(sparseKeyCeiling + 1))
	}
	return keys
}

func shuffled(keys []uint32, rng *rand.Rand) []uint32 {
	out := make([]uint32, len(keys))
	copy(out, keys)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func opsPerSecond(n int, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(n) / elapsed.Seconds())
}

func runBenchmark(cfg benchconfig.Config, n int, sparse bool, log logging.Logger) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	keys := generateKeys(n, sparse, rng)

	log.Infow("generated keys", "n", n, "sparse", sparse, "max_level", cfg.MaxLevel, "skip", cfg.Skip)

	start := time.Now()
	c := cssl.Build(cfg.MaxLevel, cfg.Skip, keys)
	buildElapsed := time.Since(start)
	fmt.Printf("Insertion: %d ops/s.\n", opsPerSecond(n, buildElapsed))

	sorted := c.SortedKeys()
	randomKeys := shuffled(sorted, rng)

	repeat := cfg.Repeat
	if repeat <= 0 {
		repeat = 100000000 / n
		if repeat < 1 {
			repeat = 1
		}
	}

	start = time.Now()
	for r := 0; r < repeat; r++ {
		for _, k := range randomKeys {
			idx, ok := c.Find(k)
			if !ok || sorted[idx] != k {
				return fmt.Errorf("internal inconsistency: Find(%d) = (%d, %v)", k, idx, ok)
			}
		}
	}
	lookupElapsed := time.Since(start)
	fmt.Printf("Lookup:    %d ops/s.\n", opsPerSecond(n*repeat, lookupElapsed))

	m := cfg.RangeSamples
	if m <= 0 {
		m = 1000000
	}
	rangeSize := uint32(n / 10)
	rangeKeys := make([]uint32, m)
	for i := range rangeKeys {
		rangeKeys[i] = uint32(rng.Intn(n))
	}

	start = time.Now()
	for _, k := range rangeKeys {
		begin, end, ok := c.FindRange(k, k+rangeSize)
		if !ok {
			continue
		}
		if sorted[begin] < k || sorted[end-1] > k+rangeSize {
			return fmt.Errorf("internal inconsistency: FindRange(%d,%d) = (%d,%d)", k, k+rangeSize, begin, end)
		}
	}
	rangeElapsed := time.Since(start)
	fmt.Printf("Range:     %d ops/s.\n", opsPerSecond(m, rangeElapsed))

	return nil
}

func runSmoke(log logging.Logger) error {
	c := cssl.Build(9, 5, []uint32{2, 1, 3, 10, 0})
	sorted := c.SortedKeys()
	log.Infow("smoke build complete", "n", len(sorted))
	fmt.Println(sorted[0])
	return nil
}

func loadConfig(c *cli.Context) (benchconfig.Config, error) {
	cfg := benchconfig.Default()
	if path := c.String("config"); path != "" {
		loaded, err := benchconfig.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.IsSet("max-level") {
		cfg.MaxLevel = uint32(c.Int("max-level"))
	}
	if c.IsSet("skip") {
		cfg.Skip = uint32(c.Int("skip"))
	}
	if c.IsSet("repeat") {
		cfg.Repeat = c.Int("repeat")
	}
	if c.IsSet("range-samples") {
		cfg.RangeSamples = c.Int("range-samples")
	}
	return cfg, nil
}

func buildApp(log logging.Logger) *cli.App {
	configFlag := &cli.StringFlag{Name: "config", Usage: "path to a TOML driver config file"}
	maxLevelFlag := &cli.IntFlag{Name: "max-level", Usage: "number of fast lanes"}
	skipFlag := &cli.IntFlag{Name: "skip", Usage: "geometric stride between lane levels"}
	repeatFlag := &cli.IntFlag{Name: "repeat", Usage: "lookup-loop repeat count (0 = auto)"}
	rangeSamplesFlag := &cli.IntFlag{Name: "range-samples", Usage: "number of random FindRange samples (0 = default)"}

	return &cli.App{
		Name:  "cssl-bench",
		Usage: "benchmark the cache-sensitive skip list's build/find/find_range operations",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "build, lookup, and range-scan a generated key set",
				ArgsUsage: "<num_elements> <0|1>",
				Flags:     []cli.Flag{configFlag, maxLevelFlag, skipFlag, repeatFlag, rangeSamplesFlag},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return cli.Exit("usage: cssl-bench run <num_elements> <0|1 (0=dense, 1=sparse)>", 1)
					}
					n, err := strconv.Atoi(c.Args().Get(0))
					if err != nil || n <= 0 {
						return cli.Exit(fmt.Sprintf("invalid num_elements: %q", c.Args().Get(0)), 1)
					}
					sparseFlag, err := strconv.Atoi(c.Args().Get(1))
					if err != nil || (sparseFlag != 0 && sparseFlag != 1) {
						return cli.Exit(fmt.Sprintf("invalid dense/sparse flag: %q", c.Args().Get(1)), 1)
					}

					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return runBenchmark(cfg, n, sparseFlag == 1, log)
				},
			},
			{
				Name:  "smoke",
				Usage: "build a five-key CSSL and print its smallest key",
				Action: func(c *cli.Context) error {
					return runSmoke(log)
				},
			},
		},
	}
}

func main() {
	log := logging.New()
	app := buildApp(log)

	if err := app.Run(os.Args); err != nil {
		log.Errorw("cssl-bench failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
