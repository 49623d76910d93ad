// Package artifacts persists generated graphs, labels, features and splits as
// per-configuration files plus a run manifest.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/lhchan/mixhop-syngen/pkg/splits"
)

// Writer interface for flexible artifact output
type Writer interface {
	WriteGraph(name string, adjacency [][]int) error
	WriteLabels(name string, labels *mat.Dense) error
	WriteFeatures(name string, features *mat.Dense) error
	WriteSplit(name string, split splits.Split) error
	WriteManifest(manifest *Manifest) error
}

// Manifest records one generation run: its parameters and the files it produced
type Manifest struct {
	RunID     string                 `json:"run_id"`
	CreatedAt time.Time              `json:"created_at"`
	Params    map[string]interface{} `json:"params"`
	Files     []string               `json:"files"`
}

// NewManifest creates a manifest with a fresh run ID
func NewManifest(params map[string]interface{}) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Params:    params,
	}
}

// Matrix is the JSON interchange form of a dense matrix
type Matrix struct {
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Data [][]float64 `json:"data"`
}

// NewMatrix converts a gonum dense matrix into its interchange form
func NewMatrix(m *mat.Dense) Matrix {
	rows, cols := m.Dims()
	data := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		mat.Row(row, i, m)
		data[i] = row
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}
}

// FileWriter implements Writer with JSON files under a single directory,
// named ind.<name>.graph / .ally / .allx / .splits
type FileWriter struct {
	Dir      string
	manifest *Manifest
}

// NewFileWriter creates the output directory if needed
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileWriter{Dir: dir}, nil
}

// WriteGraph writes the adjacency as a mapping from node index to its ordered
// neighbor list
func (fw *FileWriter) WriteGraph(name string, adjacency [][]int) error {
	dict := make(map[string][]int, len(adjacency))
	for v, neighbors := range adjacency {
		if neighbors == nil {
			neighbors = []int{}
		}
		dict[strconv.Itoa(v)] = neighbors
	}
	return fw.writeJSON(fmt.Sprintf("ind.%s.graph", name), dict)
}

// WriteLabels writes the one-hot label matrix
func (fw *FileWriter) WriteLabels(name string, labels *mat.Dense) error {
	return fw.writeJSON(fmt.Sprintf("ind.%s.ally", name), NewMatrix(labels))
}

// WriteFeatures writes the node feature matrix
func (fw *FileWriter) WriteFeatures(name string, features *mat.Dense) error {
	return fw.writeJSON(fmt.Sprintf("ind.%s.allx", name), NewMatrix(features))
}

// WriteSplit writes the train/val/test index sets
func (fw *FileWriter) WriteSplit(name string, split splits.Split) error {
	return fw.writeJSON(fmt.Sprintf("ind.%s.splits", name), split)
}

// WriteManifest writes the run manifest
func (fw *FileWriter) WriteManifest(manifest *Manifest) error {
	return fw.writeJSON("manifest.json", manifest)
}

func (fw *FileWriter) writeJSON(filename string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(filepath.Join(fw.Dir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
