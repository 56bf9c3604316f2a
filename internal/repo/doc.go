// Package repo implements typed collection repositories over the
// document store.
//
// A Collection reads the whole stored sequence, applies one in-memory
// change, and writes the whole sequence back. That read-modify-write
// cycle is the only mutation protocol; it is serialized per collection
// key by a mutex held inside DB, so two interleaved mutations can never
// lose each other's writes. The lock is never exposed to callers.
//
// # Error policy
//
//   - Storage IO failures propagate (the change was not saved).
//   - A corrupt stored document degrades to an empty collection plus a
//     BAD_COLLECTION_DATA warning; it never crashes a read.
//   - Update/Delete of a missing id return NOT_FOUND, not a panic.
package repo
