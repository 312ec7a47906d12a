package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// JoinSessionRequest is the request body for joining a session
type JoinSessionRequest struct {
	RestaurantName string `json:"restaurant_name"`
}

// SetReadyRequest is the request body for setting the ready flag
type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

// UpdateScoreRequest is the request body for submitting a mini-game score
type UpdateScoreRequest struct {
	Increment int `json:"increment"`
}
