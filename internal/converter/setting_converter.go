package converter

import (
	"encoding/json"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func SettingToResponse(setting *entity.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		ID:           setting.ID,
		SettingKey:   setting.SettingKey,
		SettingValue: json.RawMessage(setting.SettingValue),
		Category:     setting.Category,
	}
}

func SettingsToResponses(settings []entity.Setting) []dto.SettingResponse {
	return toResponses(settings, SettingToResponse)
}

func DoctorSignatureToResponse(signature *entity.DoctorSignature) *dto.DoctorSignatureResponse {
	return &dto.DoctorSignatureResponse{
		ID:             signature.ID,
		DoctorName:     signature.DoctorName,
		SignatureImage: signature.SignatureImage,
	}
}

func DoctorSignaturesToResponses(signatures []entity.DoctorSignature) []dto.DoctorSignatureResponse {
	return toResponses(signatures, DoctorSignatureToResponse)
}
