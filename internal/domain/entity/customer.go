package entity

// CustomerAddress is the structured address the customer directory stores.
type CustomerAddress struct {
	Text  string `json:"text"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// CustomerRecord is a customer as known to the customer directory service.
// Lookup is by exact phone string.
type CustomerRecord struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email,omitempty"`
	Address CustomerAddress `json:"address"`
}

// CustomerUpsert is the create/update payload sent to the customer directory.
type CustomerUpsert struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email,omitempty"`
	Address CustomerAddress `json:"address"`
}
