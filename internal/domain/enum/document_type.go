package enum

// DocumentType distinguishes a binding bill from a non-binding estimate
// when an invoice is submitted or rendered.
type DocumentType string

const (
	DocumentTypeEstimate DocumentType = "estimate"
	DocumentTypeBill     DocumentType = "bill"
)

func (d DocumentType) IsValid() bool {
	return d == DocumentTypeEstimate || d == DocumentTypeBill
}

func (d DocumentType) String() string {
	return string(d)
}
