/*
Package domain contains the core models shared by every other package of the automata workbench.

It is kept pure and free of I/O: nothing here knows about storage, transport or rendering.

# Key Entities

  - Automaton: the normalized, read-only model (alphabet, states, initial state,
    final states, instructions) with an adjacency index built once at construction.
  - Graph: the editor-side snapshot (Nodes flagged initial/final, Edges with
    source/target/id) that the traversal generators consume.
  - Step: one immutable, replayable snapshot of an algorithm run, tagged with
    the pseudo-code line it illustrates.
  - Session: the persisted state of a visualizer (original graph, active graph,
    algorithm, cursor).
*/
package domain
