package service

import (
	"context"
	"encoding/json"

	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultSettings is the initial settings set for an empty clinic.
func DefaultSettings() []entity.Setting {
	return []entity.Setting{
		newSetting(entity.SettingKeyDropdownOptions, "dropdown_options", map[string][]string{
			"medicalHistory":        {"Diabetes", "Hypertension", "Heart Disease", "Asthma", "None"},
			"drugAllergy":           {"Penicillin", "NSAIDs", "Sulfa Drugs", "Local Anesthetics", "None"},
			"previousDentalHistory": {"Extraction", "Root Canal Treatment", "Filling", "Crown", "Implant", "None"},
			"chiefComplaint":        {"Toothache", "Tooth Sensitivity", "Bleeding Gums", "Bad Breath", "Broken Tooth", "Jaw Pain"},
			"oralExamination":       {"Cavity", "Gingivitis", "Periodontitis", "Abscess", "Fractured Tooth"},
			"investigation":         {"X-Ray", "CBCT", "Pulp Testing", "Blood Test", "None"},
			"treatmentPlan":         {"Filling", "Extraction", "Root Canal", "Scaling", "Crown", "Implant"},
			"prescription":          {"Antibiotics", "Painkillers", "Anti-inflammatory", "Mouthwash", "None"},
			"treatmentDone":         {"Filling", "Extraction", "Root Canal", "Scaling", "Crown", "Consultation Only"},
			"advice":                {"Soft Diet", "Maintain Oral Hygiene", "Avoid Hot Food/Beverage", "Follow-up Required", "None"},
			"labTechnicians":        {"Dr. Smith", "Dr. Johnson", "Dr. Patel"},
			"workTypes":             {"Crown", "Bridge", "Denture", "Implant", "Veneer", "Retainer", "Night Guard", "Other"},
			"crownShades":           {"A1", "A2", "A3", "A3.5", "A4", "B1", "B2", "B3", "B4", "C1", "C2", "C3", "C4", "D2", "D3", "D4"},
		}),
		newSetting(entity.SettingKeyToothFindingOptions, "dental_examination", map[string][]string{
			"options": {
				"Caries", "Deep Caries", "Filling", "Root Canal Treated", "Extraction",
				"Crown", "Bridge", "Implant", "Denture", "Mobility",
				"Sensitivity", "Abscess", "Missing", "Impacted", "Malaligned",
			},
		}),
		newSetting(entity.SettingKeyInvestigationTypes, "dental_examination", map[string][]string{
			"options": {
				"X-Ray", "CBCT", "IOPA", "OPG", "Blood Test",
				"Vitality Test", "Culture Sensitivity", "Biopsy",
			},
		}),
		newSetting(entity.SettingKeyClinicInfo, "clinic_info", map[string]string{
			"name":    "Dental Clinic",
			"logo":    "",
			"address": "",
			"phone":   "",
			"email":   "",
		}),
		newSetting(entity.SettingKeyPatientIDFormat, "patient_id_format", entity.DefaultPatientIDFormat),
	}
}

func newSetting(key, category string, value interface{}) entity.Setting {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	return entity.Setting{
		SettingKey:   key,
		SettingValue: datatypes.JSON(raw),
		Category:     category,
	}
}

// SeedDefaultSettings inserts DefaultSettings when the settings table is
// empty. It reports whether anything was written.
func SeedDefaultSettings(ctx context.Context, db *gorm.DB, repo repository.SettingRepository, log *logrus.Logger) (bool, error) {
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := repo.Count(tx)
	if err != nil {
		log.Warnf("Failed to count settings: %+v", err)
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	for _, setting := range DefaultSettings() {
		setting := setting
		if err := repo.Create(tx, &setting); err != nil {
			log.Warnf("Failed to seed setting %s: %+v", setting.SettingKey, err)
			return false, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Warnf("Failed commit transaction: %+v", err)
		return false, err
	}

	log.Info("Default settings created")
	return true, nil
}
