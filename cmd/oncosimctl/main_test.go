package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oncosim/internal/search"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"transmogrify"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestSimulateCommandWritesArtifacts(t *testing.T) {
	artifacts := filepath.Join(t.TempDir(), "artifacts")
	err := run(context.Background(), []string{
		"simulate",
		"-store", "memory",
		"-artifacts-dir", artifacts,
		"-days", "30",
		"-seed", "123456789",
	})
	if err != nil {
		t.Fatalf("simulate command: %v", err)
	}

	dirs, err := os.ReadDir(artifacts)
	if err != nil {
		t.Fatalf("read artifacts dir: %v", err)
	}
	found := false
	for _, d := range dirs {
		if d.IsDir() && strings.HasPrefix(d.Name(), "traj-123456789-") {
			found = true
			if _, err := os.Stat(filepath.Join(artifacts, d.Name(), "trajectory.csv")); err != nil {
				t.Fatalf("missing trajectory.csv: %v", err)
			}
		}
	}
	if !found {
		t.Fatalf("no trajectory run dir under %s", artifacts)
	}
}

func TestSearchCommandWritesResultJSON(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "result.json")
	err := run(context.Background(), []string{
		"search",
		"-store", "memory",
		"-artifacts-dir", filepath.Join(tmp, "artifacts"),
		"-n", "50",
		"-out", out,
	})
	if err != nil {
		t.Fatalf("search command: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read result json: %v", err)
	}
	var result search.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("parse result json: %v", err)
	}
	if result.OriginalProtein != "CARDSSNWFAY" {
		t.Fatalf("baseline protein = %q", result.OriginalProtein)
	}
}

func TestInitCommand(t *testing.T) {
	if err := run(context.Background(), []string{"init", "-store", "memory"}); err != nil {
		t.Fatalf("init command: %v", err)
	}
}
