package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) staff() StaffUsecase {
	return NewStaffUsecase(e.db, e.log,
		repository.NewStaffRepository(),
		repository.NewStaffAttendanceRepository(),
		repository.NewStaffSalaryRepository(),
		e.audit)
}

func createStaff(t *testing.T, uc StaffUsecase) *dto.StaffResponse {
	t.Helper()
	staff, err := uc.Create(context.Background(), &dto.CreateStaffRequest{
		Name:        "Maria Lopez",
		Role:        "Assistant",
		ContactInfo: "maria@example.com",
		JoinDate:    "2025-01-06",
		Salary:      decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	return staff
}

func TestStaffCreate_DefaultsActive(t *testing.T) {
	env := newTestEnv(t)
	staff := createStaff(t, env.staff())
	assert.True(t, staff.IsActive)
	assert.Equal(t, "2025-01-06", staff.JoinDate)
}

func TestStaffSalary_NetAmount(t *testing.T) {
	env := newTestEnv(t)
	uc := env.staff()
	ctx := context.Background()
	staff := createStaff(t, uc)

	bonus := decimal.NewFromInt(300)
	deduction := decimal.RequireFromString("120.50")
	salary, err := uc.CreateSalary(ctx, &dto.CreateSalaryRequest{
		StaffID:       staff.ID,
		Month:         "March",
		Year:          2026,
		BaseSalary:    decimal.NewFromInt(2500),
		Bonus:         &bonus,
		Deduction:     &deduction,
		PaymentStatus: "pending",
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2679.50").Equal(salary.NetAmount), salary.NetAmount.String())

	zero := decimal.Zero
	updated, err := uc.UpdateSalary(ctx, salary.ID, &dto.UpdateSalaryRequest{Deduction: &zero, PaymentStatus: strPtr("paid")})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2800).Equal(updated.NetAmount), updated.NetAmount.String())
	assert.Equal(t, "paid", updated.PaymentStatus)

	_, err = uc.UpdateSalary(ctx, salary.ID, &dto.UpdateSalaryRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = uc.CreateSalary(ctx, &dto.CreateSalaryRequest{StaffID: 99, Month: "March", Year: 2026, PaymentStatus: "pending"})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestStaffAttendance_OnePerDay(t *testing.T) {
	env := newTestEnv(t)
	uc := env.staff()
	ctx := context.Background()
	staff := createStaff(t, uc)

	present := true
	req := &dto.CreateAttendanceRequest{StaffID: staff.ID, Date: "2026-03-16", Present: &present}

	_, err := uc.CreateAttendance(ctx, req)
	require.NoError(t, err)

	_, err = uc.CreateAttendance(ctx, req)
	assert.ErrorIs(t, err, ErrAttendanceExists)

	rows, err := uc.GetAttendance(ctx, staff.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	all, err := uc.GetAttendance(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
