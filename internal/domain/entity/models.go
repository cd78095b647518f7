package entity

// Models lists every persisted entity in dependency order, for schema
// creation with GORM AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Patient{},
		&PatientVisit{},
		&Appointment{},
		&LabWork{},
		&LabWorkCost{},
		&LabInventoryItem{},
		&Staff{},
		&StaffAttendance{},
		&StaffSalary{},
		&Invoice{},
		&InvoiceItem{},
		&Medication{},
		&Prescription{},
		&ToothFinding{},
		&GeneralizedFinding{},
		&Investigation{},
		&FollowUp{},
		&Setting{},
		&DoctorSignature{},
		&AuditLog{},
	}
}
