package core

import "errors"

// ErrInvalidPair assets in a pair must be different
var ErrInvalidPair = errors.New("assets in pair must be different")

// ErrTooManyActiveKeys more than one active market key stored for one pair;
// the registry invariant is broken and the read must not be silently resolved
var ErrTooManyActiveKeys = errors.New("multiple active market keys for one pair")

// ParsingError structural rejection of one ledger account record.
// Always recoverable: the record is logged and skipped, the run continues.
type ParsingError struct {
	Reason string
}

func (e *ParsingError) Error() string {
	return "parse market key: " + e.Reason
}

var (
	// ErrInvalidSignerCount the record's signer list length is not 2
	ErrInvalidSignerCount = &ParsingError{Reason: "invalid signers count"}
	// ErrMarkerNotFound no signer key equals the configured marker key
	ErrMarkerNotFound = &ParsingError{Reason: "market key marker not found"}
	// ErrInvalidSignerWeight a signer's weight differs from the required weight
	ErrInvalidSignerWeight = &ParsingError{Reason: "invalid signer weight"}
	// ErrInvalidThresholds low/med/high thresholds are not all the required value
	ErrInvalidThresholds = &ParsingError{Reason: "invalid thresholds"}
	// ErrInvalidAssetCount the record's balance list length is not 2 or 3
	ErrInvalidAssetCount = &ParsingError{Reason: "invalid assets count"}
	// ErrInvalidLockTime the record's last modified time is not a valid timestamp
	ErrInvalidLockTime = &ParsingError{Reason: "invalid last modified time"}
	// ErrPairNotDistinct the two locked balances resolve to the same asset
	ErrPairNotDistinct = &ParsingError{Reason: ErrInvalidPair.Error()}
)

// IsParsingError check if err is a structural parse failure
func IsParsingError(err error) bool {
	var pe *ParsingError
	return errors.As(err, &pe)
}
