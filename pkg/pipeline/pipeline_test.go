package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/lhchan/mixhop-syngen/pkg/artifacts"
	"github.com/lhchan/mixhop-syngen/pkg/mixhop"
)

func testPipeline(t *testing.T, dir string) *Pipeline {
	t.Helper()
	writer, err := artifacts.NewFileWriter(dir)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	return &Pipeline{
		Params:    mixhop.DefaultGeneratorParams(60, 2, 0.8),
		NumGraphs: 2,
		Seed:      17,
		Writer:    writer,
		Logger:    zerolog.Nop(),
	}
}

func TestPipelineRunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	pipe := testPipeline(t, dir)
	pipe.WriteSplits = true

	result, err := pipe.Run()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(result.Names) != 2 {
		t.Fatalf("expected 2 replicate names, got %d", len(result.Names))
	}
	if result.Names[0] != "n60-h0.8-c2-g0" {
		t.Errorf("unexpected replicate name: %s", result.Names[0])
	}

	for _, name := range result.Names {
		for _, suffix := range []string{"graph", "ally", "allx", "splits"} {
			path := filepath.Join(dir, "ind."+name+"."+suffix)
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected artifact %s: %v", path, err)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
		t.Errorf("expected manifest.json: %v", err)
	}
}

func TestPipelineRunWithoutSplits(t *testing.T) {
	dir := t.TempDir()
	pipe := testPipeline(t, dir)

	result, err := pipe.Run()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	path := filepath.Join(dir, "ind."+result.Names[0]+".splits")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("splits file should not exist when WriteSplits is off")
	}
}

func TestPipelineOnGraphCallback(t *testing.T) {
	dir := t.TempDir()
	pipe := testPipeline(t, dir)

	seen := 0
	pipe.OnGraph = func(name string, g *mixhop.Graph, x *mat.Dense) error {
		seen++
		if g.NumNodes != 60 {
			t.Errorf("callback graph has %d nodes, expected 60", g.NumNodes)
		}
		rows, cols := x.Dims()
		if rows != 60 || cols != 2 {
			t.Errorf("callback features shape [%d, %d], expected [60, 2]", rows, cols)
		}
		return nil
	}

	if _, err := pipe.Run(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if seen != pipe.NumGraphs {
		t.Errorf("callback invoked %d times, expected %d", seen, pipe.NumGraphs)
	}
}

func TestPipelineRejectsInvalidParams(t *testing.T) {
	dir := t.TempDir()
	pipe := testPipeline(t, dir)
	pipe.Params.ClassRatio = []float64{0.4, 0.3, 0.3} // odd class count

	if _, err := pipe.Run(); err == nil {
		t.Errorf("expected error for odd class count, got nil")
	}
}

func TestPipelineDeterminism(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	pipe1 := testPipeline(t, dir1)
	pipe2 := testPipeline(t, dir2)

	if _, err := pipe1.Run(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := pipe2.Run(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	for _, suffix := range []string{"graph", "ally", "allx"} {
		name := "ind.n60-h0.8-c2-g0." + suffix
		a, err := os.ReadFile(filepath.Join(dir1, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		b, err := os.ReadFile(filepath.Join(dir2, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		if string(a) != string(b) {
			t.Errorf("artifact %s differs across identically seeded runs", name)
		}
	}
}
