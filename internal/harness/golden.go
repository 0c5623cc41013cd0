package harness

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/pitchshare/internal/store"
)

// RunWithGolden executes a scenario file against a fresh SQLite backend and
// compares the result against a golden file.
//
// The golden file is stored in testdata/golden/{scenario.Name}.golden.
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenarioPath string) {
	t.Helper()

	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "harness.db"))
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := SeedBackend(ctx, st, sc); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	result, err := Run(ctx, st, sc)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, data)
}
