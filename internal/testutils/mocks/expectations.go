// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
	rostermock "github.com/KirkDiggler/rpg-tracker/internal/repositories/roster/mock"
)

// ExpectRosterLoad sets up a mock expectation for loading a stored roster
func ExpectRosterLoad(ctx context.Context, mockRepo *rostermock.MockRepository, r *dnd5e.Roster) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, roster.LoadInput{}).
		Return(&roster.LoadOutput{Roster: r}, nil)
}

// ExpectRosterEmpty sets up a mock expectation for a store with nothing saved yet
func ExpectRosterEmpty(ctx context.Context, mockRepo *rostermock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, roster.LoadInput{}).
		Return(nil, errors.NotFound("no roster stored"))
}

// ExpectRosterSave sets up a mock expectation for saving the roster. Each
// saved roster is deep-copied into *saved when saved is not nil.
func ExpectRosterSave(ctx context.Context, mockRepo *rostermock.MockRepository, saved **dnd5e.Roster) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input roster.SaveInput) (*roster.SaveOutput, error) {
			if saved != nil {
				*saved = input.Roster.Clone()
			}
			return &roster.SaveOutput{}, nil
		})
}

// ExpectRosterSaveError sets up a mock expectation for a failing save
func ExpectRosterSaveError(ctx context.Context, mockRepo *rostermock.MockRepository, err error) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		Return(nil, err)
}
