// Command btreebench sweeps the persistent B-tree across a set of minimum
// degrees, recording pager read/write/alloc growth under a load-then-mix
// workload, and writes the results as a CSV plus a PNG growth chart.
//
// Usage:
//
//	btreebench [-degrees 8,32,128] [-n 20000] [-checkpoints 10] [-csv out.csv] [-chart out.png] [-serve :9090]
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btree-query-bench/dsacore/dbms/btree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("btreebench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	degreesFlag := fs.String("degrees", "8,32,128", "comma-separated minimum degrees to sweep")
	n := fs.Int("n", 20000, "keys to insert per degree, then read/write-mixed over the same keyspace")
	checkpoints := fs.Int("checkpoints", 10, "number of evenly spaced counter samples taken during the insert phase")
	csvPath := fs.String("csv", "btreebench_results.csv", "CSV output path")
	chartPath := fs.String("chart", "btreebench_growth.png", "PNG chart path, plotted for the first swept degree")
	serveAddr := fs.String("serve", "", "if set, serve the final run's counters on this address at /metrics and block")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	degrees, err := parseDegrees(*degreesFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *n <= 0 || *checkpoints <= 0 {
		fmt.Fprintln(stderr, "btreebench: -n and -checkpoints must be positive")
		return 2
	}

	var allSamples []sample
	var firstRunSamples []sample
	var lastCollector *btree.Collector

	for i, degree := range degrees {
		bt, path, err := openScratchTree(degree)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		runSamples := sweepOne(bt, degree, *n, *checkpoints)
		allSamples = append(allSamples, runSamples...)
		if i == 0 {
			firstRunSamples = runSamples
		}

		lastCollector = btree.NewCollector(bt, fmt.Sprintf("t%d", degree))

		if err := bt.Close(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		os.Remove(path)
	}

	f, err := os.Create(*csvPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer f.Close()
	if err := writeCSV(f, allSamples); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d samples to %s\n", len(allSamples), *csvPath)

	if len(firstRunSamples) > 0 {
		if err := renderChart(*chartPath, firstRunSamples, degrees[0]); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote growth chart to %s\n", *chartPath)
	}

	if *serveAddr != "" && lastCollector != nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(lastCollector)
		fmt.Fprintf(stdout, "serving /metrics on %s\n", *serveAddr)
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *serveAddr, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	return 0
}

// sweepOne loads bt with n keys (v = k*2), sampling pager counters at
// checkpoints evenly spaced points, then runs an OLTP and an OLAP mixed
// workload pass and samples once more after each.
func sweepOne(bt *btree.BTree, degree int32, n, checkpoints int) []sample {
	var samples []sample
	every := n / checkpoints
	if every == 0 {
		every = 1
	}

	for k := 0; k < n; k++ {
		start := time.Now()
		_ = bt.Put(int32(k), int32(k)*2)
		latency := time.Since(start).Nanoseconds()
		if (k+1)%every == 0 || k == n-1 {
			samples = append(samples, snapshot(bt, degree, "Insert", latency))
		}
	}

	start := time.Now()
	executeWorkload(bt, OLTP, n/2, n)
	samples = append(samples, snapshot(bt, degree, string(OLTP), time.Since(start).Nanoseconds()/int64(n/2+1)))

	start = time.Now()
	executeWorkload(bt, OLAP, n/2, n)
	samples = append(samples, snapshot(bt, degree, string(OLAP), time.Since(start).Nanoseconds()/int64(n/2+1)))

	return samples
}

func snapshot(bt *btree.BTree, degree int32, op string, latencyNs int64) sample {
	return sample{
		Degree:    degree,
		Operation: op,
		LatencyNs: latencyNs,
		Reads:     bt.ReadCount(),
		Writes:    bt.WriteCount(),
		Allocs:    bt.AllocCount(),
	}
}

func openScratchTree(degree int32) (*btree.BTree, string, error) {
	f, err := os.CreateTemp("", "btreebench-*.bt")
	if err != nil {
		return nil, "", fmt.Errorf("btreebench: scratch file: %w", err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path) // btree.Open must create it fresh at this path

	bt, err := btree.Open(path, degree)
	if err != nil {
		return nil, "", fmt.Errorf("btreebench: open t=%d: %w", degree, err)
	}
	return bt, path, nil
}

func parseDegrees(s string) ([]int32, error) {
	parts := strings.Split(s, ",")
	degrees := make([]int32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("btreebench: invalid degree %q: %w", p, err)
		}
		if v < 2 {
			return nil, fmt.Errorf("btreebench: degree must be >= 2, got %d", v)
		}
		degrees = append(degrees, int32(v))
	}
	if len(degrees) == 0 {
		return nil, fmt.Errorf("btreebench: no degrees given")
	}
	return degrees, nil
}
