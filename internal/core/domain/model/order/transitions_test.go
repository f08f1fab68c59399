package order_test

import (
	"fmt"
	"testing"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triple struct {
	from order.Status
	to   order.Status
	role actor.Role
}

// allowedEdges enumerates the complete rule table for the non-admin roles.
// Admin holds every edge (superset plus any-to-any override), so the
// exhaustive disallowed-triple check below only applies to lower roles.
func allowedEdges() map[triple]bool {
	appraiser := actor.RoleAppraiser
	reviewer := actor.RoleReviewer

	return map[triple]bool{
		{order.StatusInProgress, order.StatusInReview, appraiser}:     true,
		{order.StatusNeedsRevisions, order.StatusInProgress, appraiser}: true,
		{order.StatusInReview, order.StatusNeedsRevisions, reviewer}:  true,
		{order.StatusInReview, order.StatusReadyForClient, reviewer}:  true,
	}
}

func TestCanTransition_AppraiserEdges(t *testing.T) {
	t.Run("appraiser may submit for review", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusInProgress, order.StatusInReview, actor.RoleAppraiser))
	})

	t.Run("appraiser may resume after rejection", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusNeedsRevisions, order.StatusInProgress, actor.RoleAppraiser))
	})

	t.Run("appraiser may not approve", func(t *testing.T) {
		err := order.CanTransition(order.StatusInReview, order.StatusReadyForClient, actor.RoleAppraiser)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbiddenTransition)
	})

	t.Run("appraiser may not skip states", func(t *testing.T) {
		err := order.CanTransition(order.StatusInProgress, order.StatusReadyForClient, actor.RoleAppraiser)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbiddenTransition)
	})

	t.Run("appraiser may not move backward", func(t *testing.T) {
		err := order.CanTransition(order.StatusInReview, order.StatusInProgress, actor.RoleAppraiser)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbiddenTransition)
	})
}

func TestCanTransition_ReviewerEdges(t *testing.T) {
	t.Run("reviewer may reject", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusInReview, order.StatusNeedsRevisions, actor.RoleReviewer))
	})

	t.Run("reviewer may approve", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusInReview, order.StatusReadyForClient, actor.RoleReviewer))
	})

	t.Run("reviewer may not submit on behalf of the appraiser", func(t *testing.T) {
		err := order.CanTransition(order.StatusInProgress, order.StatusInReview, actor.RoleReviewer)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbiddenTransition)
	})

	t.Run("reviewer may not deliver to client", func(t *testing.T) {
		err := order.CanTransition(order.StatusReadyForClient, order.StatusSentToClient, actor.RoleReviewer)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrForbiddenTransition)
	})
}

func TestCanTransition_AdminEdges(t *testing.T) {
	t.Run("admin holds every lower-role edge", func(t *testing.T) {
		for edge := range allowedEdges() {
			require.NoError(t, order.CanTransition(edge.from, edge.to, actor.RoleAdmin),
				"admin must be allowed %s -> %s", edge.from, edge.to)
		}
	})

	t.Run("admin delivery and closing edges", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusReadyForClient, order.StatusSentToClient, actor.RoleAdmin))
		require.NoError(t, order.CanTransition(
			order.StatusSentToClient, order.StatusComplete, actor.RoleAdmin))
	})

	t.Run("admin may force any edge", func(t *testing.T) {
		require.NoError(t, order.CanTransition(
			order.StatusComplete, order.StatusNew, actor.RoleAdmin))
		require.NoError(t, order.CanTransition(
			order.StatusNew, order.StatusSentToClient, actor.RoleAdmin))
	})
}

// TestCanTransition_DisallowedTriplesAreRejected exhaustively checks that
// every (from, to, role) triple not in the rule table is rejected for the
// non-admin roles.
func TestCanTransition_DisallowedTriplesAreRejected(t *testing.T) {
	allowed := allowedEdges()

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			if from == to {
				continue // self-transitions are idempotent no-ops
			}
			for _, role := range []actor.Role{actor.RoleAppraiser, actor.RoleReviewer} {
				if allowed[triple{from, to, role}] {
					continue
				}
				t.Run(fmt.Sprintf("%s_%s_to_%s", role, from, to), func(t *testing.T) {
					err := order.CanTransition(from, to, role)

					require.Error(t, err)
					assert.ErrorIs(t, err, order.ErrForbiddenTransition)
				})
			}
		}
	}
}

func TestCanTransition_SelfTransition(t *testing.T) {
	for _, role := range []actor.Role{actor.RoleAppraiser, actor.RoleReviewer, actor.RoleAdmin} {
		for _, s := range order.AllStatuses() {
			require.NoError(t, order.CanTransition(s, s, role),
				"%s self-transition must succeed for %s", s, role)
		}
	}
}

func TestCanTransition_InvalidInputs(t *testing.T) {
	t.Run("unknown target status", func(t *testing.T) {
		err := order.CanTransition(order.StatusInProgress, order.Status(99), actor.RoleAdmin)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrUnknownStatus)
	})

	t.Run("unknown source status", func(t *testing.T) {
		err := order.CanTransition(order.StatusUnknown, order.StatusInReview, actor.RoleAdmin)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrUnknownStatus)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := order.CanTransition(order.StatusInProgress, order.StatusInReview, actor.RoleUnknown)

		require.Error(t, err)
	})
}

func TestIsManualOverride(t *testing.T) {
	t.Run("admin forcing an off-table edge is an override", func(t *testing.T) {
		assert.True(t, order.IsManualOverride(
			order.StatusComplete, order.StatusInProgress, actor.RoleAdmin))
		assert.True(t, order.IsManualOverride(
			order.StatusNew, order.StatusComplete, actor.RoleAdmin))
	})

	t.Run("admin on a table edge is not an override", func(t *testing.T) {
		assert.False(t, order.IsManualOverride(
			order.StatusInProgress, order.StatusInReview, actor.RoleAdmin))
		assert.False(t, order.IsManualOverride(
			order.StatusReadyForClient, order.StatusSentToClient, actor.RoleAdmin))
	})

	t.Run("lower roles never override", func(t *testing.T) {
		assert.False(t, order.IsManualOverride(
			order.StatusComplete, order.StatusInProgress, actor.RoleAppraiser))
		assert.False(t, order.IsManualOverride(
			order.StatusComplete, order.StatusInProgress, actor.RoleReviewer))
	})

	t.Run("self-transition is never an override", func(t *testing.T) {
		assert.False(t, order.IsManualOverride(
			order.StatusInReview, order.StatusInReview, actor.RoleAdmin))
	})
}

func TestStatus_RequiresAppraiser(t *testing.T) {
	assert.True(t, order.StatusInProgress.RequiresAppraiser())
	assert.True(t, order.StatusInReview.RequiresAppraiser())
	assert.True(t, order.StatusNeedsRevisions.RequiresAppraiser())

	assert.False(t, order.StatusNew.RequiresAppraiser())
	assert.False(t, order.StatusAssigned.RequiresAppraiser())
	assert.False(t, order.StatusReadyForClient.RequiresAppraiser())
	assert.False(t, order.StatusSentToClient.RequiresAppraiser())
	assert.False(t, order.StatusComplete.RequiresAppraiser())
}
