package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunicationRequest_Validate(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults date to now", func(t *testing.T) {
		l, err := (&CreateCommunicationRequest{CustomerID: userA, Type: CommunicationPhone, Subject: "Oppfølging"}).Validate(userB, now)
		require.NoError(t, err)
		assert.Equal(t, now, l.CommunicationDate)
		assert.Equal(t, userB, l.LoggedBy)
	})

	t.Run("future date rejected", func(t *testing.T) {
		future := now.Add(time.Second)
		_, err := (&CreateCommunicationRequest{CustomerID: userA, Type: CommunicationMeeting, Subject: "Møte", CommunicationDate: &future}).Validate(userB, now)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, ErrCodeValidation, appErr.Code)
		assert.Equal(t, "communication_date", appErr.Field)
	})

	t.Run("exactly now accepted", func(t *testing.T) {
		_, err := (&CreateCommunicationRequest{CustomerID: userA, Type: CommunicationEmail, Subject: "Tilbud", CommunicationDate: &now}).Validate(userB, now)
		assert.NoError(t, err)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := (&CreateCommunicationRequest{CustomerID: userA, Type: "fax", Subject: "x"}).Validate(userB, now)
		assert.True(t, IsCode(err, ErrCodeValidation))
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := (&CreateCommunicationRequest{CustomerID: userA, Type: CommunicationOther}).Validate(userB, now)
		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "subject", appErr.Field)
	})
}

func TestCommunicationPatch_Apply(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	l := &CommunicationLog{CustomerID: userA, Type: CommunicationPhone, CommunicationDate: now.Add(-time.Hour), Subject: "Ring", LoggedBy: userB}

	require.NoError(t, (&CommunicationPatch{Subject: Some("Ringte tilbake")}).Apply(l, now))
	assert.Equal(t, "Ringte tilbake", l.Subject)
	assert.Equal(t, userA, l.CustomerID)

	err := (&CommunicationPatch{CommunicationDate: Some(now.Add(time.Minute))}).Apply(l, now)
	assert.True(t, IsCode(err, ErrCodeValidation))
}

func TestNormalizeSearchTerm(t *testing.T) {
	term, ok := NormalizeSearchTerm("  a ")
	assert.False(t, ok)
	assert.Equal(t, "a", term)

	term, ok = NormalizeSearchTerm(" ac ")
	assert.True(t, ok)
	assert.Equal(t, "ac", term)

	_, ok = NormalizeSearchTerm("æ")
	assert.False(t, ok)
}
