package domain

// Customer is a directory record. The ledger core only reads it to check
// that an account owner exists; identity verification lives elsewhere.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"`
	AuditFields
}
