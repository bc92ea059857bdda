package sentinel

import "errors"

// Sentinel errors for ledger-level facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: no record committed at the key
// - ErrConflict: a record already occupies the key
//
// For validation errors (bad input, status preconditions), use
// pkg/domain-errors directly.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
