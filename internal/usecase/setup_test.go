package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/service"
	"dental-clinic/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	log   *logrus.Logger
	audit service.AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := testutil.NewLogger()
	return &testEnv{
		db:    testutil.NewDB(t),
		log:   log,
		audit: service.NewAuditService(log, repository.NewAuditLogRepository()),
	}
}

// freezeTime pins today() to the given date for the rest of the test.
func freezeTime(t *testing.T, date string) {
	t.Helper()
	day, err := time.Parse(dateLayout, date)
	require.NoError(t, err)

	prev := nowFunc
	nowFunc = func() time.Time { return day.Add(10 * time.Hour) }
	t.Cleanup(func() { nowFunc = prev })
}

func (e *testEnv) patients() PatientUsecase {
	return NewPatientUsecase(e.db, e.log, repository.NewPatientRepository(), repository.NewSettingRepository(), e.audit)
}

func (e *testEnv) invoices(allowReset bool) InvoiceUsecase {
	return NewInvoiceUsecase(e.db, e.log,
		repository.NewInvoiceRepository(),
		repository.NewInvoiceItemRepository(),
		repository.NewAppointmentRepository(),
		repository.NewPatientRepository(),
		e.audit, allowReset)
}

func (e *testEnv) appointments() AppointmentUsecase {
	return NewAppointmentUsecase(e.db, e.log,
		repository.NewAppointmentRepository(),
		repository.NewPatientRepository(),
		repository.NewInvoiceRepository(),
		e.audit)
}

func (e *testEnv) visits(files FileStore) VisitUsecase {
	return NewVisitUsecase(e.db, e.log, repository.NewPatientVisitRepository(), repository.NewPatientRepository(), files, e.audit)
}

func (e *testEnv) createPatient(t *testing.T, code string) *dto.PatientResponse {
	t.Helper()
	patient, err := e.patients().Create(context.Background(), &dto.CreatePatientRequest{
		PatientID:   code,
		Name:        "Jane Doe",
		Age:         34,
		Sex:         "female",
		Address:     "12 Main Street",
		PhoneNumber: "5551234",
	})
	require.NoError(t, err)
	return patient
}

func (e *testEnv) createVisit(t *testing.T, patientCode, date string) *dto.VisitResponse {
	t.Helper()
	visit, err := e.visits(nil).Create(context.Background(), &dto.CreateVisitRequest{
		PatientID:      patientCode,
		Date:           date,
		ChiefComplaint: "Toothache",
	})
	require.NoError(t, err)
	return visit
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
