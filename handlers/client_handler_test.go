package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixelarena/server/services"
)

func TestErrorCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{services.ErrPlayerNotFound, "not-found"},
		{services.ErrRoomNotFound, "not-found"},
		{services.ErrMonsterNotFound, "not-found"},
		{services.ErrItemGone, "not-found"},
		{services.ErrNoPendingFriend, "not-found"},
		{services.ErrOutOfRange, "precondition-failed"},
		{services.ErrNoWeapon, "precondition-failed"},
		{services.ErrNoAmmo, "precondition-failed"},
		{services.ErrPVPConsent, "precondition-failed"},
		{services.ErrTargetDead, "precondition-failed"},
		{services.ErrPlayerDead, "precondition-failed"},
		{services.ErrNotDead, "precondition-failed"},
		{services.ErrBadRoomID, "precondition-failed"},
		{services.ErrBadSettings, "precondition-failed"},
		{services.ErrNotAdmin, "unauthorized"},
		{assert.AnError, "bad-request"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, errorCode(tc.err), tc.err.Error())
	}
}
