package models

type Account struct {
	ID       int64
	Name     string
	Email    string
	PassHash []byte
}

// PendingRegistration is never stored as a row. It travels as the signed
// payload of an activation token until the Activation Flow commits it.
type PendingRegistration struct {
	Name     string
	Email    string
	PassHash []byte
}

type Message struct {
	Email   string `json:"to"`
	Link    string `json:"link"`
	Subject string `json:"subject"`
}
