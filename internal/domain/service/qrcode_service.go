// Package service defines the contracts for domain services.
package service

// QRCodeService generates and parses QR codes for sharing a plan with
// another device or user.
type QRCodeService interface {
	// GeneratePlanShareQR renders a PNG QR code encoding a plan share payload.
	GeneratePlanShareQR(userID, planType string) ([]byte, error)

	// ParsePlanShareQR decodes a scanned payload back into its owner and
	// plan type.
	ParsePlanShareQR(qrData string) (userID, planType string, err error)
}
