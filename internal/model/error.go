package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeMissingImage     = "MISSING_IMAGE"
	ErrCodeInvalidCategory  = "INVALID_CATEGORY"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeInvalidStock     = "INVALID_STOCK"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidSort      = "INVALID_SORT"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeImageUploadError = "IMAGE_UPLOAD_FAILED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrMissingImage    = NewDomainError(ErrCodeMissingImage, "An image is required to create a product")
	ErrInvalidCategory = NewDomainError(ErrCodeInvalidCategory, "Category must be clothing, footwear or appliances")
	ErrInvalidPrice    = NewDomainError(ErrCodeInvalidPrice, "Price must be zero or greater")
	ErrInvalidStock    = NewDomainError(ErrCodeInvalidStock, "Stock must be zero or greater")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)
