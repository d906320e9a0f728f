package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("Schedule", 7)))
	assert.Equal(t, KindSchedule, KindOf(ErrAlreadyInCrew))
	assert.Equal(t, KindDatabase, KindOf(Database("save", errors.New("conn reset"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWrap_PreservesKindAndCause(t *testing.T) {
	err := Wrap("failed to add crew member", ErrAlreadyInCrew)
	assert.Equal(t, KindSchedule, KindOf(err))
	assert.ErrorIs(t, err, ErrAlreadyInCrew)
	assert.Equal(t, "failed to add crew member: User is already in crew", err.Error())

	// Wrapping twice keeps the chain intact.
	outer := Wrap("handler", err)
	assert.ErrorIs(t, outer, ErrAlreadyInCrew)
	assert.Equal(t, KindSchedule, KindOf(outer))
}

func TestWrap_Nil(t *testing.T) {
	require.Nil(t, Wrap("op", nil))
}

func TestWrap_UnclassifiedError(t *testing.T) {
	err := Wrap("failed to save", errors.New("disk full"))
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "failed to save: disk full", err.Error())
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Schedule", 42)
	assert.Equal(t, "Schedule with identifier '42' not found", err.Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "User is already in crew", UserMessage(Wrap("op", ErrAlreadyInCrew)))
	assert.Equal(t, "Guild ID is required", UserMessage(Validation("Guild ID is required")))
	assert.Equal(t, "Schedule with identifier '7' not found", UserMessage(NotFound("Schedule", 7)))

	// Internal detail never reaches the user.
	masked := UserMessage(Database("save", errors.New("pq: connection refused")))
	assert.NotContains(t, masked, "connection refused")
	assert.Equal(t, masked, UserMessage(errors.New("panic in handler")))
}
