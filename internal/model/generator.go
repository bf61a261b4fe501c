package model

// GenerateRequest represents a password generation request.
// Nil fields fall back to the configured defaults.
type GenerateRequest struct {
	Length    *int  `json:"length"`
	Digits    *bool `json:"digits"`
	Symbols   *bool `json:"symbols"`
	Uppercase *bool `json:"uppercase"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string   `json:"password"`
	Length   int      `json:"length"`
	Classes  []string `json:"classes"`
}
