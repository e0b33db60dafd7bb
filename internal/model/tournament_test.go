package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tournament-service/internal/model"
)

func TestTournamentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.TournamentStatus
		to   model.TournamentStatus
		want bool
	}{
		{model.StatusUpcoming, model.StatusRegistrationOpen, true},
		{model.StatusRegistrationOpen, model.StatusRegistrationClosed, true},
		{model.StatusRegistrationClosed, model.StatusLive, true},
		{model.StatusLive, model.StatusCompleted, true},
		{model.StatusUpcoming, model.StatusLive, true},
		{model.StatusLive, model.StatusRegistrationOpen, false},
		{model.StatusRegistrationOpen, model.StatusRegistrationOpen, false},
		{model.StatusUpcoming, model.StatusCancelled, true},
		{model.StatusLive, model.StatusCancelled, true},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusUpcoming, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTeamType_Capacity(t *testing.T) {
	assert.Equal(t, 2, model.TeamTypeDuo.Capacity())
	assert.Equal(t, 4, model.TeamTypeSquad.Capacity())
	assert.Equal(t, 0, model.TeamType("trio").Capacity())
	assert.Equal(t, model.TeamTypeSquad, model.TournamentSquad.TeamType())
	assert.Equal(t, model.TeamType(""), model.TournamentSolo.TeamType())
}
