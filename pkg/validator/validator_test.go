package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string          `json:"name" validate:"required"`
	Status string          `json:"status" validate:"required,oneof=pending paid"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Note   *string         `json:"note,omitempty" validate:"omitempty,max=5"`
}

func TestValidate_EmptySubmission(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "name is required", errs["name"])
	assert.Equal(t, "status is required", errs["status"])
	assert.Equal(t, "date is required", errs["date"])
	assert.NotContains(t, errs, "amount")
}

func TestValidate_FieldRules(t *testing.T) {
	v := NewValidator()
	note := "far too long"

	err := v.Validate(&sampleRequest{
		Name:   "x",
		Status: "unknown",
		Date:   "19/10/2026",
		Amount: decimal.NewFromInt(-1),
		Note:   &note,
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "status must be one of: pending, paid", errs["status"])
	assert.Equal(t, "date must be a date in YYYY-MM-DD format", errs["date"])
	assert.Equal(t, "amount must be greater than or equal to 0", errs["amount"])
	assert.Equal(t, "note must be at most 5 characters", errs["note"])
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{
		Name:   "Scaling",
		Status: "paid",
		Date:   "2026-10-19",
		Amount: decimal.RequireFromString("150.50"),
	})
	assert.NoError(t, err)
}
