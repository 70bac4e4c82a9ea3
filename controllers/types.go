package controllers

// PaginatedResponse wraps every list result.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

type TokenObtainRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenPairResponse struct {
	TokenType string `json:"token_type"`
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
}
