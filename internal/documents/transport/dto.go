package transport

import "time"

// DocumentResponse is the read model for a sales document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	CustomerID  string    `json:"customerId"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amountCents"`
	Deactivated bool      `json:"deactivated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DocumentListResponse is the response for listing documents of a kind.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}

// DeactivatedIDsResponse lists the ids of a kind's deactivated documents.
type DeactivatedIDsResponse struct {
	Kind string   `json:"kind"`
	IDs  []string `json:"ids"`
}
