// Package lineage builds the successor graph between companies.
//
// Nodes are company names and every edge points from a company to the
// company it became part of. Following edges (Descendants) walks forward in
// corporate history towards the current owner; following them backwards
// (Ancestors) collects every company that was absorbed along the way.
//
// The graph is never rejected for cycles or self-loops. Every walk carries a
// visited set, so queries terminate on any input; Cycles reports the nodes
// on a cycle for diagnostics.
package lineage
