/*
Package flow implements the funnel graph mutation commands and the
structural validator.

Mutations are pure reducers: each command takes a graph and returns a new
one, leaving the input untouched. Rendering and upload side effects live at
the boundary (HTTP adapter); node data holds no behavior.

The validator enforces the structural invariants of the persisted graph
contract: at most one edge per (source, handle) pair, a single start node of
an allowed kind with no incoming edges, terminal template nodes, suppressed
condition branches carrying no edges, and balanced randomizer weights.
*/
package flow
