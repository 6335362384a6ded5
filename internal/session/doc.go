// Package session owns the lifecycle of a single user-triggered analysis request.
//
// # Overview
//
// State is the single source of truth for one client session: the input buffer
// and the current Phase. Dispatcher is the only writer of the phase; the UI (or the
// headless command) is the only writer of the buffer.
//
//	         Begin()               Run() resolves
//	Idle ───────────────→ Submitting ───────────────→ Completed(outcome)
//	 ↑                        │  ↑                         │
//	 │                        │  └─ Begin() rejected       │
//	 │                        │     (ErrAlreadyInFlight)   │
//	 └── session start        └── SetInput() allowed       └── Begin() again
//
// # Preconditions
//
// Begin accepts a submission iff the buffer is non-blank after trimming and no
// attempt is in flight. Rejections return ErrEmptyInput or ErrAlreadyInFlight and
// leave the state untouched; callers treat them as silent no-ops. A new submission
// never aborts the pending one.
//
// # Splitting Begin and Run
//
// Bubble Tea runs commands on their own goroutines. The UI calls Begin inside
// Update, so the phase flips before the next key press is processed, and hands the
// Ticket to a command that calls Run. Submit combines both for blocking callers.
//
// # Concurrency Model
//
// State uses a sync.RWMutex the way the rest of the client shares data between the
// UI goroutine and command goroutines. Locks are held only while copying fields,
// never across the network call. Every outcome carries the attempt number it
// belongs to and complete drops anything that does not match the pending attempt,
// so the applied outcome is always the one of the most recent dispatch.
//
// # Result Store
//
// Outcome exposes the Completed outcome read-only. Begin clears it, so a stale
// result never overlays a new attempt.
package session
