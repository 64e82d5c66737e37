//go:build boarddebug

package board

// debug enables invariant checks that panic on programmer errors.
const debug = true
