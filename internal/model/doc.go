// Package model provides the domain types for coach inspections.
//
// This package contains type definitions and value normalization only. All
// other internal packages import model; model imports nothing internal except
// the error taxonomy.
//
// Key design constraints:
//   - Answer outcomes are a sealed union (OK, Deficiency, NA, Measured). Every
//     storage schema normalizes its raw columns into this union before a value
//     reaches the engine.
//   - Deficiency reasons are a set, never a list: duplicates collapse after
//     Unicode NFC normalization and case folding.
//   - Progress snapshots are derived values; nothing in this package persists.
package model
