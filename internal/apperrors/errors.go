package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates a journal entry whose debits and credits do not
// balance within the allowed tolerance.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrImmutableEntry indicates an attempt to modify or delete a journal entry
// that has left the DRAFT state.
var ErrImmutableEntry = errors.New("journal entry is no longer editable")

// ErrStateConflict indicates a state transition that the journal entry state
// machine does not allow from the entry's current status.
var ErrStateConflict = errors.New("invalid state transition")

// ErrAlreadyPosted indicates an attempt to post an entry that already has
// ledger rows. Posting is never silently repeated.
var ErrAlreadyPosted = errors.New("journal entry is already posted")

// ErrAlreadyReversed indicates an attempt to reverse an entry twice.
var ErrAlreadyReversed = errors.New("journal entry is already reversed")

// ErrNotPosted indicates an operation that requires a posted entry
// (e.g. reversal) was invoked on an entry in another state.
var ErrNotPosted = errors.New("journal entry is not posted")

// ErrNotRecurring indicates that recurring generation was requested for an
// entry that is not a recurring template.
var ErrNotRecurring = errors.New("journal entry is not a recurring template")

// ErrPeriodClosed indicates the target financial period does not accept
// postings. Recoverable by operator action (reopening the period).
var ErrPeriodClosed = errors.New("financial period is not open for posting")

// ErrAccountNotPostable indicates a referenced account is inactive or does
// not accept direct postings.
var ErrAccountNotPostable = errors.New("account does not accept postings")
