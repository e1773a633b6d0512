package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesCSVAndChart(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	chartPath := filepath.Join(dir, "out.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-degrees", "3,4",
		"-n", "200",
		"-checkpoints", "4",
		"-csv", csvPath,
		"-chart", chartPath,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("want exit code 0, got %d (stderr: %s)", code, stderr.String())
	}

	if _, err := os.Stat(csvPath); err != nil {
		t.Fatalf("expected CSV at %s: %v", csvPath, err)
	}
	if _, err := os.Stat(chartPath); err != nil {
		t.Fatalf("expected chart at %s: %v", chartPath, err)
	}
}

func TestRunRejectsBadDegree(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-degrees", "1"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("want exit code 2 for degree < 2, got %d", code)
	}
}

func TestRunRejectsNonPositiveSweepParams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "0"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("want exit code 2 for n=0, got %d", code)
	}
}

func TestParseDegrees(t *testing.T) {
	degrees, err := parseDegrees(" 8, 32 ,128")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int32{8, 32, 128}
	if len(degrees) != len(want) {
		t.Fatalf("want %v, got %v", want, degrees)
	}
	for i := range want {
		if degrees[i] != want[i] {
			t.Fatalf("want %v, got %v", want, degrees)
		}
	}
}
