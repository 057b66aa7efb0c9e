// Package bindings implements the key-binding registry and its resolution
// engine.
//
// The registry keeps two independent stores, one per keyspace: layout
// dependent key-code bindings and layout independent scan-code bindings.
// Each store maps a chain's trigger chord to the ordered list of bindings
// registered under it; every binding carries a global, monotonically
// increasing index assigned at insertion time.
//
// # Resolution
//
// Given the two live input chains (one per keyspace), Resolve produces the
// ordered candidate action list:
//
//  1. Fetch candidates keyed by each trigger chord under exact modifiers and
//     under the Any wildcard, filtered by full chain fit (prefix match plus
//     inter-key timeout).
//  2. Merge exact-modifier candidates across the two keyspaces, then merge
//     wildcard candidates, suppressing cross-keyspace duplicates: two
//     bindings with the identical action line count as one, and the one with
//     the lower global index survives.
//  3. Concatenate the exact merge before the wildcard merge. The result is
//     most-specific and earliest-bound first.
//
// # Mutation and dispatch
//
// Bind, Unbind, UnbindKeyset, UnbindAction and UnbindAll mutate the stores;
// the hotkey reverse index (action -> display strings) is rebuilt after
// mutations unless rebuilds are suspended for a bulk load. Textual commands
// (the persisted file format and the in-game console share one grammar) are
// parsed once into a Command variant and dispatched by Execute.
//
// The registry is a plain owned object with no internal locking; callers
// serialize mutation against lookup on their own update loop.
package bindings
