package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumentix/internal/status"
)

// fundedEvent creates a published event with one sale so its escrow
// holds the given amount.
func fundedEvent(t *testing.T, env *testEnv, organizer string, amount int64) uint64 {
	t.Helper()

	eventID := createPublishedEvent(t, env, organizer, amount, 5)
	_, err := env.tickets.PurchaseTicket(context.Background(), "buyer-1", eventID, amount)
	require.NoError(t, err)
	return eventID
}

func TestMultisigService_SetSigners_Validation(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := createPublishedEvent(t, env, "org-1", 100, 5)

	err := env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 0)
	assert.ErrorIs(t, err, status.ErrInvalidThreshold)

	err = env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 3)
	assert.ErrorIs(t, err, status.ErrInvalidThreshold)

	err = env.multisig.SetSigners(ctx, "org-1", eventID, nil, 1)
	assert.ErrorIs(t, err, status.ErrInvalidThreshold)

	err = env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", " "}, 1)
	assert.ErrorIs(t, err, status.ErrEmptyField)

	err = env.multisig.SetSigners(ctx, "intruder", eventID, []string{"s1", "s2"}, 2)
	assert.ErrorIs(t, err, status.ErrUnauthorized)

	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 2))

	config, err := env.multisig.GetConfig(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, config.Signers)
	assert.Equal(t, uint32(2), config.Threshold)
}

func TestMultisigService_ApproveRelease_SignersOnly(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := createPublishedEvent(t, env, "org-1", 100, 5)

	// No config yet.
	err := env.multisig.ApproveRelease(ctx, eventID, "s1")
	assert.ErrorIs(t, err, status.ErrEscrowNotConfigured)

	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 2))

	err = env.multisig.ApproveRelease(ctx, eventID, "outsider")
	assert.ErrorIs(t, err, status.ErrUnauthorized)

	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))
	// Idempotent: approving twice still counts once.
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))

	count, err := env.multisig.ApprovalCount(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)
}

func TestMultisigService_ThresholdFlow(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	// Scenario: signers {S1,S2}, threshold 2; S1 alone cannot release,
	// with S2 the distribution succeeds and approvals reset.
	eventID := fundedEvent(t, env, "org-1", 100)
	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 2))

	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))

	_, err := env.multisig.DistributeEscrow(ctx, eventID, "treasury")
	assert.ErrorIs(t, err, status.ErrThresholdNotMet)
	assert.Equal(t, int64(100), escrowBalance(t, env, eventID))

	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s2"))

	amount, err := env.multisig.DistributeEscrow(ctx, eventID, "treasury")
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount)
	assert.Equal(t, int64(0), escrowBalance(t, env, eventID))

	// A new round starts from zero approvals.
	count, err := env.multisig.ApprovalCount(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	// And the drained balance cannot be distributed again.
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s2"))
	_, err = env.multisig.DistributeEscrow(ctx, eventID, "treasury")
	assert.ErrorIs(t, err, status.ErrEscrowAlreadyReleased)

	require.Len(t, env.sink.payouts, 1)
	assert.Equal(t, "treasury", env.sink.payouts[0].Destination)
}

func TestMultisigService_RevokeApproval(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := fundedEvent(t, env, "org-1", 100)
	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 2))

	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s2"))

	require.NoError(t, env.multisig.RevokeApproval(ctx, eventID, "s2"))

	_, err := env.multisig.DistributeEscrow(ctx, eventID, "treasury")
	assert.ErrorIs(t, err, status.ErrThresholdNotMet)

	// Revoking an approval that was never given is a no-op.
	require.NoError(t, env.multisig.RevokeApproval(ctx, eventID, "s2"))
}

func TestMultisigService_SignerRotationInvalidatesStaleApprovals(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := fundedEvent(t, env, "org-1", 100)
	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1", "s2"}, 1))
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))

	// Rotate s1 out: its recorded approval no longer counts.
	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s2", "s3"}, 1))

	count, err := env.multisig.ApprovalCount(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	_, err = env.multisig.DistributeEscrow(ctx, eventID, "treasury")
	assert.ErrorIs(t, err, status.ErrThresholdNotMet)
}

func TestMultisigService_DistributeRequiresDestination(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := fundedEvent(t, env, "org-1", 100)
	require.NoError(t, env.multisig.SetSigners(ctx, "org-1", eventID, []string{"s1"}, 1))
	require.NoError(t, env.multisig.ApproveRelease(ctx, eventID, "s1"))

	_, err := env.multisig.DistributeEscrow(ctx, eventID, "  ")
	assert.ErrorIs(t, err, status.ErrEmptyField)
}
