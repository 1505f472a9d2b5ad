package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Domain-specific errors
	ErrRecipeNotFound     = "RECIPE_NOT_FOUND"
	ErrRecipeInvalidData  = "RECIPE_INVALID_DATA"
	ErrAlreadyFavorited   = "ALREADY_FAVORITED"
	ErrAlreadyInCart      = "ALREADY_IN_SHOPPING_CART"
	ErrAlreadySubscribed  = "ALREADY_SUBSCRIBED"
	ErrSelfSubscription   = "SELF_SUBSCRIPTION"
	ErrUserAlreadyExists  = "USER_ALREADY_EXISTS"
	ErrInvalidUsername    = "INVALID_USERNAME"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrInvalidRequest       = "invalid_request"
	ErrInvalidClient        = "invalid_client"
	ErrInvalidGrant         = "invalid_grant"
	ErrUnsupportedGrantType = "unsupported_grant_type"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
