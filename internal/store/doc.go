// Package store provides the SQLite-backed allocation backend.
//
// The store implements the three collaborator contracts the engine consumes:
//   - Resource lookup: the authoritative allocation of one resource
//   - Subject directory: the read-only candidate beneficiary table
//   - Batch commit: the single atomic write of a full allocation
//
// # Write Semantics
//
// A batch commit replaces the resource's entire allocation inside one
// transaction: delete all existing rows, insert the batch in order. Either
// every record is applied or none is - there is no partial application and
// no per-row error reporting. This matches the engine's last-writer-wins
// model: the batch IS the allocation, not a delta against it.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Share bounds and kind values are also enforced by CHECK constraints, so a
// bypassing writer cannot persist a row the engine could never have produced.
package store
