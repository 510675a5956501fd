// Package diagnostic collects per-type problems found while discovering,
// validating and rendering wrappers, and prints them for the user.
//
// A problem with one type never stops the others: drivers record a
// Diagnostic and move on, and the command exits non-zero at the end if any
// error was recorded.
package diagnostic
