package mixhop

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Graph is an undirected graph built incrementally by the attachment process.
// Nodes are dense integer indices in creation order. Colors holds the 1-indexed
// class label of each node.
type Graph struct {
	NumNodes  int     `json:"num_nodes"`
	NumEdges  int     `json:"num_edges"`
	Colors    []int   `json:"colors"`
	Degrees   []int   `json:"degrees"`
	Adjacency [][]int `json:"-"` // Adjacency[v] = neighbors of v in insertion order
}

// NewGraph creates an empty graph with capacity for n nodes
func NewGraph(n int) *Graph {
	return &Graph{
		Colors:    make([]int, 0, n),
		Degrees:   make([]int, 0, n),
		Adjacency: make([][]int, 0, n),
	}
}

// AddNode appends a node with the given 1-indexed class and returns its index
func (g *Graph) AddNode(color int) int {
	v := g.NumNodes
	g.Colors = append(g.Colors, color)
	g.Degrees = append(g.Degrees, 0)
	g.Adjacency = append(g.Adjacency, nil)
	g.NumNodes++
	return v
}

// AddEdge adds an undirected edge between two existing nodes
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("node index out of range: u=%d, v=%d, numNodes=%d", u, v, g.NumNodes)
	}
	if u == v {
		return fmt.Errorf("self-loop not allowed: v=%d", v)
	}

	g.Adjacency[u] = append(g.Adjacency[u], v)
	g.Adjacency[v] = append(g.Adjacency[v], u)
	g.Degrees[u]++
	g.Degrees[v]++
	g.NumEdges++
	return nil
}

// Labels returns the 0-indexed class label of every node
func (g *Graph) Labels() []int {
	labels := make([]int, g.NumNodes)
	for v, c := range g.Colors {
		labels[v] = c - 1
	}
	return labels
}

// OneHotLabels builds the dense one-hot label matrix of shape [n, numClasses]
func (g *Graph) OneHotLabels(numClasses int) *mat.Dense {
	ally := mat.NewDense(g.NumNodes, numClasses, nil)
	for v, c := range g.Colors {
		ally.Set(v, c-1, 1)
	}
	return ally
}

// DegreeHistogram returns counts of nodes per degree, indexed by degree
func (g *Graph) DegreeHistogram() []int {
	maxDeg := 0
	for _, d := range g.Degrees {
		if d > maxDeg {
			maxDeg = d
		}
	}
	hist := make([]int, maxDeg+1)
	for _, d := range g.Degrees {
		hist[d]++
	}
	return hist
}

// Validate checks graph consistency
func (g *Graph) Validate() error {
	if g.NumNodes != len(g.Colors) || g.NumNodes != len(g.Adjacency) || g.NumNodes != len(g.Degrees) {
		return fmt.Errorf("inconsistent node arrays: nodes=%d colors=%d adjacency=%d degrees=%d",
			g.NumNodes, len(g.Colors), len(g.Adjacency), len(g.Degrees))
	}

	degreeSum := 0
	for v, neighbors := range g.Adjacency {
		if len(neighbors) != g.Degrees[v] {
			return fmt.Errorf("degree mismatch at node %d: degree=%d, neighbors=%d",
				v, g.Degrees[v], len(neighbors))
		}
		degreeSum += len(neighbors)
		for _, u := range neighbors {
			if u < 0 || u >= g.NumNodes {
				return fmt.Errorf("edge endpoint out of range at node %d: %d", v, u)
			}
			if u == v {
				return fmt.Errorf("self-loop at node %d", v)
			}
		}
	}
	if degreeSum != 2*g.NumEdges {
		return fmt.Errorf("edge count mismatch: degree sum=%d, 2*numEdges=%d", degreeSum, 2*g.NumEdges)
	}

	for v, c := range g.Colors {
		if c < 1 {
			return fmt.Errorf("node %d has invalid color %d", v, c)
		}
	}
	return nil
}
