package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabWorkCreate_StampsCompletion(t *testing.T) {
	freezeTime(t, "2026-04-02")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := NewLabWorkUsecase(env.db, env.log, repository.NewLabWorkRepository(), repository.NewPatientRepository(), env.audit)

	labWork, err := uc.Create(context.Background(), &dto.CreateLabWorkRequest{
		PatientID: "PT2026-0001",
		WorkType:  "Bridge",
		Status:    entity.LabWorkStatusCompleted,
		StartDate: "2026-03-20",
		DueDate:   "2026-04-01",
	})
	require.NoError(t, err)
	require.NotNil(t, labWork.CompletedDate)
	assert.Equal(t, "2026-04-02", *labWork.CompletedDate)
	assert.False(t, labWork.Cost.Valid)
}

func TestLabWorkCostLookup(t *testing.T) {
	env := newTestEnv(t)
	uc := NewLabWorkCostUsecase(env.db, env.log, repository.NewLabWorkCostRepository(), env.audit)
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateLabWorkCostRequest{WorkType: "Crown", LabTechnician: "Acme Lab", Cost: decimal.NewFromInt(300)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, &dto.CreateLabWorkCostRequest{WorkType: "Crown", LabTechnician: "Smile Lab", Cost: decimal.NewFromInt(280)})
	require.NoError(t, err)

	_, err = uc.Create(ctx, &dto.CreateLabWorkCostRequest{WorkType: "Crown", LabTechnician: "Acme Lab", Cost: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrLabWorkCostExists)

	cost, err := uc.Lookup(ctx, "Crown", "Smile Lab")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(280).Equal(cost.Cost))

	first, err := uc.Lookup(ctx, "Crown", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme Lab", first.LabTechnician)

	_, err = uc.Lookup(ctx, "Veneer", "")
	assert.ErrorIs(t, err, ErrLabWorkCostNotFound)
}

func TestLabInventory_CRUD(t *testing.T) {
	env := newTestEnv(t)
	uc := NewLabInventoryUsecase(env.db, env.log, repository.NewLabInventoryRepository(), env.audit)
	ctx := context.Background()

	cost := decimal.RequireFromString("12.50")
	created, err := uc.Create(ctx, &dto.CreateLabInventoryItemRequest{
		ItemName:    "Alginate",
		Quantity:    8,
		Threshold:   intPtr(5),
		UnitCost:    &cost,
		Supplier:    "DentSupply",
		LastRestock: strPtr("2026-03-01"),
	})
	require.NoError(t, err)
	assert.False(t, created.LowStock)

	fetched, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alginate", fetched.ItemName)
	assert.Equal(t, 8, fetched.Quantity)
	require.True(t, fetched.UnitCost.Valid)
	assert.True(t, fetched.UnitCost.Decimal.Equal(cost))
	require.NotNil(t, fetched.LastRestock)
	assert.Equal(t, "2026-03-01", *fetched.LastRestock)

	updated, err := uc.Update(ctx, created.ID, &dto.UpdateLabInventoryItemRequest{Quantity: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.True(t, updated.LowStock)
	assert.Equal(t, "DentSupply", updated.Supplier)

	require.NoError(t, uc.Delete(ctx, created.ID))
	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), ErrInventoryItemNotFound)
}

func TestLabInventory_QuantityNotNegative(t *testing.T) {
	env := newTestEnv(t)
	uc := NewLabInventoryUsecase(env.db, env.log, repository.NewLabInventoryRepository(), env.audit)
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateLabInventoryItemRequest{ItemName: "Gloves", Quantity: -1})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	created, err := uc.Create(ctx, &dto.CreateLabInventoryItemRequest{ItemName: "Gloves", Quantity: 0})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, &dto.UpdateLabInventoryItemRequest{Quantity: intPtr(-3)})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	fetched, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Quantity)

	_, err = uc.Update(ctx, created.ID, &dto.UpdateLabInventoryItemRequest{LastRestock: strPtr("03/01/2026")})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
