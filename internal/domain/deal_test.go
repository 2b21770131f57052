package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeal_TransitionStage(t *testing.T) {
	today := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	later := today.AddDate(0, 0, 3)
	wantStamp := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("non-terminal to won stamps today", func(t *testing.T) {
		d := &Deal{Stage: DealStageNegotiation}
		d.TransitionStage(DealStageWon, today)
		assert.Equal(t, DealStageWon, d.Stage)
		require.NotNil(t, d.ActualCloseDate)
		assert.Equal(t, wantStamp, *d.ActualCloseDate)
	})

	t.Run("re-saving terminal stage keeps the date", func(t *testing.T) {
		d := &Deal{Stage: DealStageNegotiation}
		d.TransitionStage(DealStageLost, today)
		d.TransitionStage(DealStageLost, later)
		assert.Equal(t, wantStamp, *d.ActualCloseDate)
	})

	t.Run("won to lost keeps the date", func(t *testing.T) {
		d := &Deal{Stage: DealStageWon, ActualCloseDate: &wantStamp}
		d.TransitionStage(DealStageLost, later)
		assert.Equal(t, wantStamp, *d.ActualCloseDate)
	})

	t.Run("non-terminal moves leave it empty", func(t *testing.T) {
		d := &Deal{Stage: DealStageLead}
		d.TransitionStage(DealStageProposal, today)
		assert.Nil(t, d.ActualCloseDate)
	})
}

func TestCreateDealRequest_Validate(t *testing.T) {
	today := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	d, err := (&CreateDealRequest{CustomerID: userA, Name: "Lisens", Value: 1000, Currency: "eur"}).Validate(userB, today)
	require.NoError(t, err)
	assert.Equal(t, "EUR", d.Currency)
	assert.Equal(t, DealStageLead, d.Stage)
	assert.Equal(t, 10, d.Probability)
	assert.Nil(t, d.ActualCloseDate)

	won, err := (&CreateDealRequest{CustomerID: userA, Name: "Lisens", Stage: DealStageWon}).Validate(userB, today)
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, won.Currency)
	require.NotNil(t, won.ActualCloseDate)

	zero := 0
	tests := []struct {
		name  string
		req   CreateDealRequest
		field string
	}{
		{"negative value", CreateDealRequest{CustomerID: userA, Name: "x", Value: -5}, "value"},
		{"bad currency", CreateDealRequest{CustomerID: userA, Name: "x", Currency: "KRONER"}, "currency"},
		{"bad stage", CreateDealRequest{CustomerID: userA, Name: "x", Stage: "closed"}, "stage"},
		{"probability over", CreateDealRequest{CustomerID: userA, Name: "x", Probability: func() *int { v := 101; return &v }()}, "probability"},
		{"missing customer", CreateDealRequest{Name: "x", Probability: &zero}, "customer_id"},
		{"bad contact", CreateDealRequest{CustomerID: userA, Name: "x", ContactID: strPtr("nope")}, "contact_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Validate(userB, today)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestDealPatch_Apply_StampsAgainstStoredStage(t *testing.T) {
	today := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	d := &Deal{Name: "Lisens", Currency: "NOK", Stage: DealStageProposal, Probability: 50}

	require.NoError(t, (&DealPatch{Stage: Some(DealStageWon), Probability: Some(100)}).Apply(d, today))
	assert.Equal(t, DealStageWon, d.Stage)
	assert.Equal(t, DateOf(today), *d.ActualCloseDate)

	require.NoError(t, (&DealPatch{Stage: Some(DealStageWon)}).Apply(d, today.AddDate(0, 1, 0)))
	assert.Equal(t, DateOf(today), *d.ActualCloseDate)

	assert.True(t, IsCode((&DealPatch{Stage: Some(DealStage("paused"))}).Apply(d, today), ErrCodeValidation))
}
