// Package harness runs inspection scenarios against the completion engine.
//
// A scenario carries its own catalog, opens one session and drives it
// through a list of steps. Each step calls the real engine over an
// in-memory store, so scenarios exercise the same validation, progress
// and defect rules as the CLI.
//
// # Scenario Format
//
//	name: lavatory_lifecycle
//	description: "A defect blocks completion until it is resolved"
//	catalog:
//	  areas:
//	    - id: lavatory
//	      name: Lavatory
//	      items:
//	        - id: tap
//	          name: Tap
//	          questions:
//	            - {id: Q3, text: "Tap works?"}
//	session:
//	  coach: COACH-1
//	  module: AMENITY
//	steps:
//	  - op: submit
//	    question: Q3
//	    status: DEFICIENCY
//	    reasons: [Dripping]
//	    before_photo: q3.jpg
//	  - op: progress
//	    area: lavatory
//	    expect: {status: IN_PROGRESS, pending_defects: 1}
//	  - op: complete
//	    expect: {error: INVALID_STATE}
//	assertions:
//	  - type: session_status
//	    expect: {status: IN_PROGRESS}
//
// # Operations
//
//   - submit: SubmitAnswer with the step's key and outcome fields
//   - resolve: ResolveDefect with after_photo and remark
//   - progress: ComputeAreaProgress for area
//   - session_progress: ComputeSessionProgress
//   - defects: ListPendingDefects, optionally scoped to area
//   - score: SessionCompliance, optionally scoped to area
//   - complete: CompleteSession
//
// A step without expect.error must succeed. The remaining expect fields
// are a subset match on the step's result.
//
// # Assertion Types
//
//   - session_status: the stored session status
//   - area_progress: a fresh progress snapshot of area
//   - pending_defects: the number of open defects, optionally in area
//   - score: the compliance score, optionally of area
//
// # Deterministic Testing
//
// Every run uses a fresh memstore, a testutil.DeterministicClock and
// testutil.SequentialIDs with prefix "s", so the session is always s-1 and
// the trace of a scenario is byte-stable for golden comparison.
package harness
