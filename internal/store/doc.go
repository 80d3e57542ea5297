// Package store provides SQLite-backed durable storage for inspection
// sessions and their answers.
//
// Each module kind writes to its own answer table:
//   - amenity_answers: AMENITY and COMMISSIONARY, keyed by compartment and activity type
//   - sickline_answers: SICKLINE, one row per (session, question), legacy YES/NO vocabulary
//   - cai_answers: CAI, keyed by activity type
//
// The tables differ in key columns and in how they spell status and the
// resolved flag. Rows are normalized into model.Answer when read, so
// callers never see a table's raw shape.
//
// # Write rules
//
//   - Answers are upserted by key: resubmission overwrites the row and
//     clears any resolution.
//   - A defect is resolved with a single conditional UPDATE guarded by
//     "is a deficiency and not yet resolved". A second resolution affects
//     no rows and is reported as INVALID_STATE.
//   - A COMPLETED session rejects every answer write.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Timestamps are stored as unix milliseconds.
package store
