package http

import (
	"net/http"

	"dental-clinic/internal/delivery/http/handler"
	"dental-clinic/internal/delivery/http/middleware"
	"dental-clinic/internal/infrastructure/storage"

	"github.com/gorilla/mux"
)

// Handlers groups every resource handler mounted by the router.
type Handlers struct {
	Auth            *handler.AuthHandler
	Patient         *handler.PatientHandler
	Visit           *handler.VisitHandler
	Appointment     *handler.AppointmentHandler
	Invoice         *handler.InvoiceHandler
	LabWork         *handler.LabWorkHandler
	LabWorkCost     *handler.LabWorkCostHandler
	LabInventory    *handler.LabInventoryHandler
	Staff           *handler.StaffHandler
	Medication      *handler.MedicationHandler
	Examination     *handler.ExaminationHandler
	Setting         *handler.SettingHandler
	DoctorSignature *handler.DoctorSignatureHandler
	Upload          *handler.UploadHandler
	Report          *handler.ReportHandler
	AuditLog        *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	uploadDir         string
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	uploadDir string,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		uploadDir:         uploadDir,
	}
}

// Setup registers every route and returns the router wrapped in the
// global middleware. CORS sits outside mux so preflight requests are
// answered even though no route matches OPTIONS.
func (r *Router) Setup() http.Handler {
	h := r.handlers
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)
	api.Handle("/register", r.authMiddleware.OptionalAuthenticate(http.HandlerFunc(h.Auth.Register))).Methods(http.MethodPost)

	// Everything below needs a live session
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/user", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Patients
	protected.HandleFunc("/patients", h.Patient.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/patients", h.Patient.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patients/next-id", h.Patient.NextCode).Methods(http.MethodGet)
	protected.HandleFunc("/patients/patientId/{patientId}", h.Patient.GetByCode).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/visits", h.Patient.GetVisits).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/appointments", h.Patient.GetAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/invoices", h.Patient.GetInvoices).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId}/lab-works", h.Patient.GetLabWorks).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", h.Patient.GetByIdentifier).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id:[0-9]+}", h.Patient.Update).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{patientId}", h.Patient.UpdateByCode).Methods(http.MethodPatch)
	protected.HandleFunc("/patients/{id:[0-9]+}", h.Patient.Delete).Methods(http.MethodDelete)

	// Visits
	protected.HandleFunc("/visits", h.Visit.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/visits", h.Visit.Create).Methods(http.MethodPost)
	protected.HandleFunc("/visits/{id:[0-9]+}", h.Visit.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{id:[0-9]+}", h.Visit.Update).Methods(http.MethodPut)
	protected.HandleFunc("/visits/{id:[0-9]+}", h.Visit.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/follow-up", h.Visit.CreateFollowUpVisit).Methods(http.MethodPost)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/follow-up-visits", h.Visit.GetFollowUpVisits).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/media/{fileId}", h.Visit.DeleteAttachment).Methods(http.MethodDelete)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/attachments/{index:[0-9]+}", h.Visit.DeleteAttachmentAt).Methods(http.MethodDelete)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/consent-forms/{index:[0-9]+}", h.Visit.DeleteConsentFormAt).Methods(http.MethodDelete)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/tooth-findings", h.Visit.GetToothFindings).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/generalized-findings", h.Visit.GetGeneralizedFindings).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/investigations", h.Visit.GetInvestigations).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/prescriptions", h.Visit.GetPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/follow-ups", h.Visit.GetFollowUps).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{visitId:[0-9]+}/invoices", h.Visit.GetInvoices).Methods(http.MethodGet)

	// Examination rows
	protected.HandleFunc("/tooth-findings", h.Examination.CreateToothFinding).Methods(http.MethodPost)
	protected.HandleFunc("/tooth-findings/{id:[0-9]+}", h.Examination.UpdateToothFinding).Methods(http.MethodPut)
	protected.HandleFunc("/tooth-findings/{id:[0-9]+}", h.Examination.DeleteToothFinding).Methods(http.MethodDelete)
	protected.HandleFunc("/generalized-findings", h.Examination.CreateGeneralizedFinding).Methods(http.MethodPost)
	protected.HandleFunc("/generalized-findings/{id:[0-9]+}", h.Examination.UpdateGeneralizedFinding).Methods(http.MethodPut)
	protected.HandleFunc("/generalized-findings/{id:[0-9]+}", h.Examination.DeleteGeneralizedFinding).Methods(http.MethodDelete)
	protected.HandleFunc("/investigations", h.Examination.CreateInvestigation).Methods(http.MethodPost)
	protected.HandleFunc("/investigations/{id:[0-9]+}", h.Examination.UpdateInvestigation).Methods(http.MethodPut)
	protected.HandleFunc("/investigations/{id:[0-9]+}", h.Examination.DeleteInvestigation).Methods(http.MethodDelete)
	protected.HandleFunc("/follow-ups", h.Examination.CreateFollowUp).Methods(http.MethodPost)
	protected.HandleFunc("/follow-ups/{id:[0-9]+}", h.Examination.GetFollowUp).Methods(http.MethodGet)
	protected.HandleFunc("/follow-ups/{id:[0-9]+}", h.Examination.UpdateFollowUp).Methods(http.MethodPut)
	protected.HandleFunc("/follow-ups/{id:[0-9]+}", h.Examination.DeleteFollowUp).Methods(http.MethodDelete)

	// Medications and prescriptions
	protected.HandleFunc("/medications", h.Medication.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/medications", h.Medication.Create).Methods(http.MethodPost)
	protected.HandleFunc("/medications/{id:[0-9]+}", h.Medication.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/medications/{id:[0-9]+}", h.Medication.Update).Methods(http.MethodPut)
	protected.HandleFunc("/medications/{id:[0-9]+}", h.Medication.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/prescriptions", h.Medication.CreatePrescription).Methods(http.MethodPost)
	protected.HandleFunc("/prescriptions/{id:[0-9]+}", h.Medication.GetPrescription).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id:[0-9]+}", h.Medication.UpdatePrescription).Methods(http.MethodPut)
	protected.HandleFunc("/prescriptions/{id:[0-9]+}", h.Medication.DeletePrescription).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", h.Appointment.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", h.Appointment.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id:[0-9]+}", h.Appointment.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}", h.Appointment.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id:[0-9]+}", h.Appointment.Delete).Methods(http.MethodDelete)

	// Invoices
	protected.HandleFunc("/invoices", h.Invoice.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/invoices", h.Invoice.Create).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{id:[0-9]+}", h.Invoice.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{id:[0-9]+}", h.Invoice.Update).Methods(http.MethodPut)
	protected.HandleFunc("/invoices/{id:[0-9]+}", h.Invoice.PatchStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/invoices/{id:[0-9]+}", h.Invoice.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/invoices/{invoiceId:[0-9]+}/items", h.Invoice.GetItems).Methods(http.MethodGet)
	protected.HandleFunc("/invoice-items", h.Invoice.CreateItem).Methods(http.MethodPost)
	protected.HandleFunc("/invoice-items/{id:[0-9]+}", h.Invoice.GetItem).Methods(http.MethodGet)
	protected.HandleFunc("/invoice-items/{id:[0-9]+}", h.Invoice.UpdateItem).Methods(http.MethodPut)
	protected.HandleFunc("/invoice-items/{id:[0-9]+}", h.Invoice.DeleteItem).Methods(http.MethodDelete)

	// Lab
	protected.HandleFunc("/lab-works", h.LabWork.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/lab-works", h.LabWork.Create).Methods(http.MethodPost)
	protected.HandleFunc("/lab-works/{id:[0-9]+}", h.LabWork.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/lab-works/{id:[0-9]+}", h.LabWork.Update).Methods(http.MethodPut)
	protected.HandleFunc("/lab-works/{id:[0-9]+}", h.LabWork.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/lab-work-costs", h.LabWorkCost.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/lab-work-costs", h.LabWorkCost.Create).Methods(http.MethodPost)
	protected.HandleFunc("/lab-work-costs/lookup", h.LabWorkCost.Lookup).Methods(http.MethodGet)
	protected.HandleFunc("/lab-work-costs/{id:[0-9]+}", h.LabWorkCost.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/lab-work-costs/{id:[0-9]+}", h.LabWorkCost.Update).Methods(http.MethodPut)
	protected.HandleFunc("/lab-work-costs/{id:[0-9]+}", h.LabWorkCost.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/lab-inventory", h.LabInventory.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/lab-inventory", h.LabInventory.Create).Methods(http.MethodPost)
	protected.HandleFunc("/lab-inventory/{id:[0-9]+}", h.LabInventory.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/lab-inventory/{id:[0-9]+}", h.LabInventory.Update).Methods(http.MethodPut)
	protected.HandleFunc("/lab-inventory/{id:[0-9]+}", h.LabInventory.Delete).Methods(http.MethodDelete)

	// Staff and attendance
	protected.HandleFunc("/staff", h.Staff.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/staff", h.Staff.Create).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{id:[0-9]+}", h.Staff.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{id:[0-9]+}", h.Staff.Update).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{id:[0-9]+}", h.Staff.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/staff/{staffId:[0-9]+}/attendance", h.Staff.GetAttendance).Methods(http.MethodGet)
	protected.HandleFunc("/attendance", h.Staff.GetAllAttendance).Methods(http.MethodGet)
	protected.HandleFunc("/attendance", h.Staff.CreateAttendance).Methods(http.MethodPost)
	protected.HandleFunc("/attendance/{id:[0-9]+}", h.Staff.UpdateAttendance).Methods(http.MethodPut)
	protected.HandleFunc("/attendance/{id:[0-9]+}", h.Staff.DeleteAttendance).Methods(http.MethodDelete)

	// Salary (admin or doctor)
	salary := protected.NewRoute().Subrouter()
	salary.Use(middleware.RequireAdminOrDoctor)
	salary.HandleFunc("/staff/{staffId:[0-9]+}/salary", h.Staff.GetSalaries).Methods(http.MethodGet)
	salary.HandleFunc("/salary", h.Staff.GetAllSalaries).Methods(http.MethodGet)
	salary.HandleFunc("/salary", h.Staff.CreateSalary).Methods(http.MethodPost)
	salary.HandleFunc("/salary/{id:[0-9]+}", h.Staff.UpdateSalary).Methods(http.MethodPut)
	salary.HandleFunc("/salary/{id:[0-9]+}", h.Staff.DeleteSalary).Methods(http.MethodDelete)

	// Settings
	protected.HandleFunc("/settings", h.Setting.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/settings", h.Setting.Create).Methods(http.MethodPost)
	protected.HandleFunc("/settings/key/{key}", h.Setting.GetByKey).Methods(http.MethodGet)
	protected.HandleFunc("/settings/key/{key}", h.Setting.UpdateByKey).Methods(http.MethodPut)
	protected.HandleFunc("/settings/category/{category}", h.Setting.GetByCategory).Methods(http.MethodGet)
	protected.HandleFunc("/settings/{id:[0-9]+}", h.Setting.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/settings/{id:[0-9]+}", h.Setting.Update).Methods(http.MethodPut)
	protected.HandleFunc("/settings/{id:[0-9]+}", h.Setting.Delete).Methods(http.MethodDelete)

	// Doctor signatures
	protected.HandleFunc("/doctor-signatures", h.DoctorSignature.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/doctor-signatures", h.DoctorSignature.Save).Methods(http.MethodPost)
	protected.HandleFunc("/doctor-signatures/{id:[0-9]+}", h.DoctorSignature.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/doctor-signatures/{id:[0-9]+}", h.DoctorSignature.Update).Methods(http.MethodPut)
	protected.HandleFunc("/doctor-signatures/{id:[0-9]+}", h.DoctorSignature.Delete).Methods(http.MethodDelete)

	// Uploads
	protected.HandleFunc("/upload/patient-attachment", h.Upload.PatientAttachment).Methods(http.MethodPost)
	protected.HandleFunc("/upload/media", h.Upload.Media).Methods(http.MethodPost)
	protected.HandleFunc("/upload/logo", h.Upload.Logo).Methods(http.MethodPost)

	// Dashboard and reports
	protected.HandleFunc("/dashboard/summary", h.Report.DashboardSummary).Methods(http.MethodGet)
	protected.HandleFunc("/reports/revenue", h.Report.Revenue).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/reset-invoice-sequence", h.Invoice.ResetSequence).Methods(http.MethodPost)

	// Uploaded files
	r.router.PathPrefix(storage.URLPrefix).Handler(
		http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(r.uploadDir))),
	).Methods(http.MethodGet, http.MethodHead)

	var root http.Handler = r.router
	root = r.loggingMiddleware.Recover(root)
	root = r.loggingMiddleware.Handle(root)
	root = r.corsMiddleware.Handle(root)
	return root
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
