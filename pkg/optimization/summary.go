// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single loan amount search.
type Summary struct {
	TargetName string   `json:"targetName"`
	Field      string   `json:"field"`
	Target     string   `json:"target"`
	Original   float64  `json:"original"`
	Value      float64  `json:"value"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	Status     string   `json:"status"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}
