// Package combinator is a small backtracking parser-combinator runtime.
//
// A Cursor holds an immutable input string, a mutable offset and a read-only
// context value that is handed to every handler. Grammars are written as plain
// functions of type Rule that call the five primitives on the cursor:
//
//   - Match: a terminal (literal or regular expression), anchored at the
//     current offset after optional leading whitespace.
//   - Sequence: every term in order, all or nothing.
//   - Option: ordered choice, the first term that succeeds wins.
//   - Repetition: zero or more applications of a term; never fails.
//   - End: end of input, trailing whitespace allowed.
//
// Failure is an ordinary return value (the bool in (V, bool)), never a panic
// or an error. Every failing combinator restores the offset it saw on entry,
// so alternatives can be retried from the same position. There is no
// memoization; inputs are expected to be short.
package combinator
