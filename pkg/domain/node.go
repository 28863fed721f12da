package domain

// Node is a state of the editor graph.
type Node struct {
	ID        string `json:"id" yaml:"id"`
	IsInitial bool   `json:"isInitial" yaml:"initial,omitempty"`
	IsFinal   bool   `json:"isFinal" yaml:"final,omitempty"`
}
