package models

// OrderDraft is an order pre-fill extracted from an AI assistant reply. The
// assistant's output is untrusted input: a draft only populates the order form
// for the customer to review, it is never submitted automatically.
type OrderDraft struct {
	CustomerName  string `json:"customerName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Service       string `json:"service"`
	Details       string `json:"details"`
}

// HasContent reports whether the draft carries at least one populated field.
func (d *OrderDraft) HasContent() bool {
	return d.CustomerName != "" || d.ContactNumber != "" || d.Email != "" ||
		d.Service != "" || d.Details != ""
}
