// Package errs defines the application's error taxonomy: a sentinel error
// per failure class plus a struct type carrying the offending parameter and
// an optional cause.
//
// Each class follows the same pattern:
//   - a sentinel (e.g. ErrValueIsRequired) matched with errors.Is
//   - a struct with ParamName and Cause fields
//   - constructors with and without cause
//   - Error() for the formatted message and Unwrap() back to the sentinel
//
// Callers branch on the sentinel, never on the message text. The HTTP
// adapter maps sentinels to status codes and the transition handler maps
// them to metric outcome labels.
package errs
