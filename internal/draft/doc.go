// Package draft implements the in-memory allocation draft store.
//
// The store owns the client-local, user-editable working copy of one
// resource's allocation. It is seeded wholesale from an authoritative server
// snapshot, mutated freely through row-level operations, and replaced
// wholesale again after every successful commit. No partial state ever
// crosses a seed boundary - a seed is a full replacement, never a
// patch-merge, which eliminates stale-row ambiguity.
//
// ARCHITECTURE:
//
// Single-Editor Discipline:
// All mutations of one Store happen on one logical thread of control. The
// store performs no internal locking; the hosting session is responsible
// for not mutating the same draft concurrently. Edits to a different Store
// instance are always independent.
//
// Mutate Freely, Validate Once:
// The store never validates business rules. A draft may transiently violate
// every constraint while being edited; the validate package judges the draft
// only when a save is requested. The store enforces exactly two local
// invariants of its own:
//   - share values outside [0, 100] are rejected at the door
//   - PRIMARY rows cannot be removed
//
// Row Identity:
// Every row gets a session-unique key from a KeyGenerator at seed or add
// time. Keys are stable for the row's lifetime and never reused after
// deletion, so rows can be reordered, edited, and removed without identity
// confusion. Server rows carry no client identity; seeding always assigns
// fresh keys.
package draft
