package assessment

import "errors"

// ErrNotFound marks a keyed record that does not exist. Absence is a
// normal state for self and manager assessments (nothing submitted yet);
// callers decide whether it is fatal.
var ErrNotFound = errors.New("assessment record not found")
