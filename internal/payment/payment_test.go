package payment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/payment"
)

func TestSandbox_Outcome(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		autoSucceed bool
		settle      payment.Outcome
		want        payment.Outcome
	}{
		{name: "auto succeed", autoSucceed: true, want: payment.OutcomeSucceeded},
		{name: "pending until settled", want: payment.OutcomePending},
		{name: "settled failed", autoSucceed: true, settle: payment.OutcomeFailed, want: payment.OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := payment.NewSandbox(tt.autoSucceed)
			in, err := sb.CreateIntent(ctx, "u1", decimal.NewFromInt(100))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(in.Reference, "pi_"))

			if tt.settle != "" {
				require.NoError(t, sb.Settle(in.Reference, tt.settle))
			}

			got, err := sb.GetOutcome(ctx, in.Reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSandbox_Errors(t *testing.T) {
	ctx := context.Background()
	sb := payment.NewSandbox(true)

	_, err := sb.CreateIntent(ctx, "u1", decimal.Zero)
	assert.Error(t, err)

	_, err = sb.GetOutcome(ctx, "pi_missing")
	assert.ErrorIs(t, err, payment.ErrUnknownReference)
	assert.ErrorIs(t, sb.Settle("pi_missing", payment.OutcomeFailed), payment.ErrUnknownReference)
}
