package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sakado_back_end/internal/models"
)

func TestTotalReceived_OnlyCompleted(t *testing.T) {
	payments := []models.Payment{
		{Amount: 120.50, Status: "completed"},
		{Amount: 80, Status: "pending"},
		{Amount: 30.25, Status: "completed"},
		{Amount: 999, Status: "failed"},
	}
	require.InDelta(t, 150.75, TotalReceived(payments), 1e-9)
}

func TestTotalReceived_Empty(t *testing.T) {
	require.Zero(t, TotalReceived(nil))
	require.Zero(t, TotalReceived([]models.Payment{{Amount: 10, Status: "pending"}}))
}

func TestSortPaymentsByPaidAt_Descending(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		{TransactionID: "ancien", PaidAt: base.Add(-48 * time.Hour)},
		{TransactionID: "recent", PaidAt: base},
		{TransactionID: "milieu", PaidAt: base.Add(-24 * time.Hour)},
	}

	SortPaymentsByPaidAt(payments)

	require.Equal(t, "recent", payments[0].TransactionID)
	require.Equal(t, "milieu", payments[1].TransactionID)
	require.Equal(t, "ancien", payments[2].TransactionID)
}
