package dto

// LookupReceiptRequest carries the raw QR payload scanned from a
// fiscal receipt. The payload is an HTTP-query-like string with &
// separators, so it travels in a JSON body rather than the URL.
type LookupReceiptRequest struct {
	QR string `json:"qr" binding:"required" validate:"required"`
}
