package domain

// Sequence type names used when drawing numbers.
const (
	SequenceTransaction = "TRANSACTION"
	SequenceJournal     = "JOURNAL"
)

// TransactionSequence is the year-scoped counter behind transaction and
// journal numbering. The (SequenceType, Year) row is locked exclusively for
// the duration of the posting unit-of-work.
type TransactionSequence struct {
	SequenceType string `json:"sequenceType"` // TRANSACTION or JOURNAL
	Prefix       string `json:"prefix"`       // TRX or JE
	Year         int    `json:"year"`
	LastNumber   int64  `json:"lastNumber"`
}
