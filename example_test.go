package automata_test

import (
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/traversal"
)

func ExampleGenerate() {
	g := domain.Graph{
		Nodes: []domain.Node{{ID: "S0", IsInitial: true}, {ID: "S1", IsFinal: true}},
		Edges: []domain.Edge{{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"}},
	}

	steps, err := automata.Generate(domain.AlgorithmAccessible, g)
	if err != nil {
		log.Fatal(err)
	}

	lines := make([]int, 0, len(steps))
	for _, s := range steps {
		lines = append(lines, s.Line)
	}
	fmt.Println(lines)
	fmt.Println(traversal.Result(steps))
	// Output:
	// [1 2 3 4 5 6 7 8 3 4 5 3 9]
	// [S0 S1]
}

func ExampleNewVisualizer() {
	g := domain.Graph{
		Nodes: []domain.Node{{ID: "S0", IsInitial: true}, {ID: "S1", IsFinal: true}, {ID: "S2"}},
		Edges: []domain.Edge{{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"}},
	}

	v := automata.NewVisualizer(g)
	defer v.Close()

	for v.Player().Next() {
	}
	if err := v.Prune(); err != nil {
		log.Fatal(err)
	}
	for _, n := range v.Active().Nodes {
		fmt.Println(n.ID)
	}
	// Output:
	// S0
	// S1
}
