package qrcode

import (
	"encoding/json"
	"fmt"

	"primeform/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	UserID   string `json:"user_id"`
	PlanType string `json:"plan_type"`
	Type     string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePlanShareQR generates a QR code for sharing a plan with another device
func (s *qrcodeService) GeneratePlanShareQR(userID, planType string) ([]byte, error) {
	if planType != "diet" && planType != "workout" {
		return nil, fmt.Errorf("invalid plan type: %s", planType)
	}

	data := QRCodeData{
		UserID:   userID,
		PlanType: planType,
		Type:     "plan_share",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParsePlanShareQR parses QR code data and returns the owner and plan type
func (s *qrcodeService) ParsePlanShareQR(qrData string) (string, string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "plan_share" {
		return "", "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.UserID == "" {
		return "", "", fmt.Errorf("QR code carries no user id")
	}

	return data.UserID, data.PlanType, nil
}
