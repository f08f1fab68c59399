package commands_test

import (
	"testing"

	"falcon/internal/core/application/usecases/commands"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestTransitionCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	cmd, err := commands.NewRequestTransitionCommand(
		orderID, order.StatusInProgress, order.StatusInReview,
		actorID, actor.RoleAppraiser, "report attached",
	)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.True(t, cmd.HasFromStatus())
	assert.Equal(t, order.StatusInProgress, cmd.FromStatus())
	assert.Equal(t, order.StatusInReview, cmd.ToStatus())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, actor.RoleAppraiser, cmd.ActorRole())
	assert.Equal(t, "report attached", cmd.Note())
}

func TestNewRequestTransitionCommand_FromStatusIsOptional(t *testing.T) {
	cmd, err := commands.NewRequestTransitionCommand(
		kernel.NewUUID(), order.StatusUnknown, order.StatusInReview,
		kernel.NewUUID(), actor.RoleReviewer, "",
	)
	require.NoError(t, err)
	assert.False(t, cmd.HasFromStatus())
}

func TestNewRequestTransitionCommand_UnknownToStatus(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(
		kernel.NewUUID(), order.StatusUnknown, order.Status(42),
		kernel.NewUUID(), actor.RoleAdmin, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestNewRequestTransitionCommand_UnknownToStatusZero(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(
		kernel.NewUUID(), order.StatusUnknown, order.StatusUnknown,
		kernel.NewUUID(), actor.RoleAdmin, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestNewRequestTransitionCommand_UnknownFromStatus(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(
		kernel.NewUUID(), order.Status(42), order.StatusInReview,
		kernel.NewUUID(), actor.RoleAdmin, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestNewRequestTransitionCommand_InvalidActorRole(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(
		kernel.NewUUID(), order.StatusUnknown, order.StatusInReview,
		kernel.NewUUID(), actor.RoleUnknown, "",
	)
	require.Error(t, err)
}

func TestNewRequestTransitionCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(
		kernel.UUID{}, order.StatusUnknown, order.StatusInReview,
		kernel.NewUUID(), actor.RoleAdmin, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestRequestTransitionCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.RequestTransitionCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrRequestTransitionCommandIsNotConstructed)
}
