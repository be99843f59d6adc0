package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		orderID, courierID := kernel.NewUUID(), kernel.NewUUID()

		cmd, err := commands.NewClaimOrderCommand(orderID, courierID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.CourierID().IsEqual(courierID))
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewClaimOrderCommand(zero, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewClaimOrderCommand(kernel.NewUUID(), zero)
		require.Error(t, err)
	})

	t.Run("zero command fails validation", func(t *testing.T) {
		var cmd commands.ClaimOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
	})
}
