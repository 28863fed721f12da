/*
Package traversal produces the annotated step sequences of the accessible and
co-accessible algorithms, and the equivalent pure reductions on an Automaton.

Generators are lazy: Accessible and CoAccessible return an iter.Seq that computes
one Step per pull, so a caller may stop early or drive the run one step at a time
(iter.Pull). Collect drains a sequence eagerly.

The frontier L is popped from the end it is pushed to (depth-first order) even
though the listing calls it a queue. WithFrontier(FrontierFIFO) switches to
front dequeueing.
*/
package traversal
