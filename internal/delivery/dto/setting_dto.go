package dto

import "encoding/json"

// Request DTOs

type CreateSettingRequest struct {
	SettingKey   string          `json:"setting_key" validate:"required,max=100"`
	SettingValue json.RawMessage `json:"setting_value" validate:"required"`
	Category     string          `json:"category" validate:"required,max=100"`
}

type UpdateSettingRequest struct {
	SettingValue json.RawMessage `json:"setting_value,omitempty"`
	Category     *string         `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
}

type CreateDoctorSignatureRequest struct {
	DoctorName     string `json:"doctor_name" validate:"required"`
	SignatureImage string `json:"signature_image" validate:"required,startswith=data:image/"`
}

type UpdateDoctorSignatureRequest struct {
	DoctorName     *string `json:"doctor_name,omitempty" validate:"omitempty,min=1"`
	SignatureImage *string `json:"signature_image,omitempty" validate:"omitempty,startswith=data:image/"`
}

// Response DTOs

type SettingResponse struct {
	ID           int             `json:"id"`
	SettingKey   string          `json:"setting_key"`
	SettingValue json.RawMessage `json:"setting_value"`
	Category     string          `json:"category"`
}

type DoctorSignatureResponse struct {
	ID             int    `json:"id"`
	DoctorName     string `json:"doctor_name"`
	SignatureImage string `json:"signature_image"`
}
