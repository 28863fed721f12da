/*
Package ports defines the driven ports (interfaces) of the automata workbench.

These interfaces decouple session orchestration from storage and coordination
backends.

# Key Interfaces

  - SessionStore: persists and loads visualizer Sessions.
  - DistributedLocker: serializes access to one session across replicas.
*/
package ports
