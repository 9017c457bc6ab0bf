// Package graph collapses the live, possibly cyclic, possibly highly shared
// asset-reference graph into a hierarchical aggregation tree.
//
// # Why aggregation exists
//
// Walking the raw reference graph is hazardous: cycles recurse forever and
// shared subgraphs (diamonds) are revisited once per path, which becomes
// exponential on dense graphs. The aggregation tree fixes both by
// construction: every asset reachable from the root appears as exactly one
// leaf, grouped under balanced internal nodes, so any traversal of the tree
// visits each asset once and terminates.
//
// # Invariant
//
// The set of leaf assets of Aggregate(root) equals the set of assets
// reachable from root through direct and transitive references — no drops,
// no duplicates. Grouping only reorganizes reachability for traversal
// efficiency; it never changes it.
//
// # Caching
//
// Aggregation results are memoized through the task engine per root asset
// identity, so unchanged subgraphs are not recomputed when unrelated parts
// of the build change. Invalidate the root's aggregation key to force a
// rebuild after an upstream edit.
package graph
