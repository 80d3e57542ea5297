// Package engine evaluates inspection sessions.
//
// It answers four questions from the checklist catalog and the answer store:
//   - how complete is an area (ComputeAreaProgress) or a whole session
//     (ComputeSessionProgress)
//   - which defects are still open (ListPendingDefects)
//   - how to close one (ResolveDefect)
//   - how compliant an answer set is (ScoreCompliance)
//
// COMPLETION RULES:
//
// An item is required when at least one question of the same area verifies
// it. A required item is completed only when every one of its questions has
// an answer in the session; there is no partial credit.
//
// Area status, evaluated in order:
//   - completed = 0                                   -> PENDING
//   - 0 < completed < totalRequired                   -> IN_PROGRESS
//   - completed = totalRequired, no open defects      -> COMPLETED
//   - completed = totalRequired, open defects remain  -> IN_PROGRESS
//
// An answered deficiency therefore completes its item but holds the area at
// IN_PROGRESS until it is resolved. Completed does not mean compliant.
//
// DEFECT LIFECYCLE:
//
// OPEN (DEFICIENCY, unresolved) -> RESOLVED (after photo, remark, timestamp).
// There is no transition back. A fresh submission of the same question
// replaces the answer and, if it is a deficiency, opens a new defect.
//
// The engine holds no mutable state of its own. The catalog is injected at
// construction and every read goes to the store, so each call sees the
// current state.
package engine
