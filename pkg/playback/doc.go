/*
Package playback replays a computed step sequence and manages the graph a
visualizer works on.

A Player holds a step list and a cursor, and is either paused or playing.
While playing, a single ticker advances the cursor on a fixed interval until
the last step, then pauses itself. Starting playback replaces any pending
ticker; pausing, loading a new sequence or closing the player cancels it.

A Visualizer composes a Player with the active graph and the selected
algorithm. Any change of graph or algorithm rebuilds the sequence from scratch
and rewinds the Player. Prune narrows the active graph to the result of the
completed run; Restore returns to the graph it was created or last set with.
*/
package playback
