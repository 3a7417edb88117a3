// Package live pushes document change records to remote consumers over
// WebSocket.
//
// Each connection gets a Session bound to exactly one Document. The
// session sends one full "sync" message after the initial render, then
// forwards every change record the document emits as "changes" batches.
// All mutations of a session's document go through Dispatch, which runs
// them one at a time on the session's own goroutine; this is what upholds
// the single-actor rule the dom package requires.
package live
