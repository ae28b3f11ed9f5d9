package statemachine

import (
	"testing"

	"food-delivery-app/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		wantErr bool
	}{
		{"restaurant confirms", models.StatusPending, models.StatusConfirmed, ActorRestaurant, false},
		{"driver cannot confirm", models.StatusPending, models.StatusConfirmed, ActorDriver, true},
		{"driver picks up ready order", models.StatusReady, models.StatusPickedUp, ActorDriver, false},
		{"driver cannot skip on the way", models.StatusPickedUp, models.StatusDelivered, ActorDriver, true},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, ActorCustomer, false},
		{"customer cannot cancel while preparing", models.StatusPreparing, models.StatusCancelled, ActorCustomer, true},
		{"nothing leaves delivered", models.StatusDelivered, models.StatusCancelled, ActorRestaurant, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanTransitionErrorListsNextStates(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusDelivered, ActorDriver)
	assert.ErrorContains(t, err, "confirmed, cancelled")

	err = CanTransition(models.StatusCancelled, models.StatusPending, ActorAdmin)
	assert.ErrorContains(t, err, "terminal state")
}

func TestCanForce(t *testing.T) {
	assert.NoError(t, CanForce(models.StatusPending, models.StatusReady))
	assert.NoError(t, CanForce(models.StatusOnTheWay, models.StatusCancelled))
	assert.Error(t, CanForce(models.StatusReady, models.StatusConfirmed))
	assert.Error(t, CanForce(models.StatusDelivered, models.StatusCancelled))
	assert.Error(t, CanForce(models.StatusCancelled, models.StatusDelivered))
	assert.Error(t, CanForce(models.StatusPending, models.OrderStatus("lost")))
}

func TestForwardTransitionsFollowSequence(t *testing.T) {
	for _, tr := range GetAllTransitions() {
		if tr.To == models.StatusCancelled {
			assert.False(t, tr.From.IsTerminal(), "cancel from terminal %s", tr.From)
			continue
		}
		assert.Equal(t, tr.From.Rank()+1, tr.To.Rank(), "%s → %s", tr.From, tr.To)
	}
}
