package dto

// ConsentResponse reports the privacy notice state for the caller.
type ConsentResponse struct {
	Accepted bool `json:"accepted"`
}
