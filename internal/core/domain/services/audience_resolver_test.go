package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, status order.Status, courierID *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		status, order.PaymentConfirmed, courierID,
		"", nil, nil, nil, nil,
	)
	require.NoError(t, err)
	return o
}

func TestAudienceResolver_NewOrder(t *testing.T) {
	resolver := services.NewAudienceResolver()
	o := restoredOrder(t, order.Confirmed, nil)

	audience := resolver.NewOrder(o)

	assert.Equal(t, []session.Role{session.RoleAdmin}, audience.Roles)
	assert.Equal(t, []session.Key{
		{Role: session.RoleChef, Scope: o.ChefID().String()},
	}, audience.Keys)
}

func TestAudienceResolver_OrderUpdate(t *testing.T) {
	resolver := services.NewAudienceResolver()

	t.Run("unassigned order targets chef and customer but no courier", func(t *testing.T) {
		o := restoredOrder(t, order.Preparing, nil)

		audience := resolver.OrderUpdate(o)

		assert.Equal(t, []session.Role{session.RoleAdmin}, audience.Roles)
		assert.Contains(t, audience.Keys, session.Key{Role: session.RoleChef, Scope: o.ChefID().String()})
		assert.Contains(t, audience.Keys, session.Key{Role: session.RoleCustomer, Scope: o.ID().String()})
		assert.Contains(t, audience.Keys, session.Key{Role: session.RoleBrowser, Scope: o.ID().String()})
		for _, key := range audience.Keys {
			assert.NotEqual(t, session.RoleDelivery, key.Role)
		}
	})

	t.Run("assigned order additionally targets the bound courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		o := restoredOrder(t, order.Preparing, &courierID)

		audience := resolver.OrderUpdate(o)

		assert.Contains(t, audience.Keys, session.Key{Role: session.RoleDelivery, Scope: courierID.String()})
	})
}

func TestAudienceResolver_PreparedOrder(t *testing.T) {
	resolver := services.NewAudienceResolver()
	o := restoredOrder(t, order.Prepared, nil)

	audience := resolver.PreparedOrder(o)

	assert.Equal(t, []session.Role{session.RoleDelivery}, audience.Roles)
	assert.Empty(t, audience.Keys)
}

func TestAudienceResolver_ManualAssignmentRequired(t *testing.T) {
	resolver := services.NewAudienceResolver()
	o := restoredOrder(t, order.Prepared, nil)

	audience := resolver.ManualAssignmentRequired(o)

	assert.Equal(t, []session.Role{session.RoleAdmin}, audience.Roles)
	assert.Empty(t, audience.Keys)
}

func TestAudienceResolver_EntityStatus(t *testing.T) {
	resolver := services.NewAudienceResolver()

	audience := resolver.EntityStatus("chef-7")

	assert.ElementsMatch(t,
		[]session.Role{session.RoleAdmin, session.RoleCustomer, session.RoleBrowser},
		audience.Roles,
	)
	assert.Equal(t, []session.Key{{Role: session.RoleChef, Scope: "chef-7"}}, audience.Keys)
}

func TestAudienceResolver_WalletUpdate(t *testing.T) {
	resolver := services.NewAudienceResolver()

	audience := resolver.WalletUpdate("user-42")

	assert.Empty(t, audience.Roles)
	assert.ElementsMatch(t, []session.Key{
		{Role: session.RoleCustomer, Scope: "user-42"},
		{Role: session.RoleBrowser, Scope: "user-42"},
	}, audience.Keys)
}
