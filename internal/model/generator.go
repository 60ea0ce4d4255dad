package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Strength string `json:"strength"`
}

// StrengthRequest asks for the rating of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse carries the rating and the inputs it was derived from.
type StrengthResponse struct {
	Strength string `json:"strength"`
	Length   int    `json:"length"`
	Variety  int    `json:"variety"`
}
