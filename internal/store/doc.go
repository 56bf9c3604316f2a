// Package store provides SQLite-backed durable storage for collection
// documents.
//
// The store is a flat mapping from string keys to serialized JSON
// documents. Each higher-level collection (users, categories, products,
// action history) is stored whole under one fixed key; the store itself
// has no knowledge of collections, entities, or the audit log.
//
// # Contract
//
//   - Get returns the stored bytes or reports absence; absence is not
//     an error.
//   - Set replaces the whole document under a key. Write failures
//     propagate to the caller so a failed save is never silent.
//   - Remove deletes a key; removing an absent key is a no-op.
//
// No multi-key transactions are provided: every higher-level operation
// touches exactly one key.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
