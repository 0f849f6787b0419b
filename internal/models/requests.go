package models

// LookupRequest is the property-lookup payload: a free-text hotel name
// and/or address.
type LookupRequest struct {
	Query string `json:"query"`
}

// RatingRequest wraps the property being rated.
type RatingRequest struct {
	Property *Property `json:"property"`
}

// LookupResponse is the property-lookup response body.
type LookupResponse struct {
	Property *Property `json:"property"`
}

// RatingResponse wraps one rating calculation.
type RatingResponse struct {
	Rating *RatingResult `json:"rating"`
}
