package enum_test

import (
	"testing"

	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStatus_IsValid(t *testing.T) {
	assert.True(t, enum.SessionStatusOpen.IsValid())
	assert.True(t, enum.SessionStatusVoid.IsValid())
	assert.False(t, enum.SessionStatus("paused").IsValid())
	assert.False(t, enum.SessionStatus("").IsValid())
}

func TestDiscountTarget_ScanAndValue(t *testing.T) {
	var target enum.DiscountTarget
	require.NoError(t, target.Scan([]byte("service")))
	assert.Equal(t, enum.DiscountTargetService, target)

	require.NoError(t, target.Scan("bill"))
	v, err := target.Value()
	require.NoError(t, err)
	assert.Equal(t, "bill", v)

	require.NoError(t, target.Scan(nil))
	assert.Equal(t, enum.DiscountTarget(""), target)

	assert.Error(t, target.Scan(42))
}

func TestPaymentMethod_String(t *testing.T) {
	assert.Equal(t, "transfer", enum.PaymentMethodTransfer.String())
	assert.True(t, enum.PaymentMethodOther.IsValid())
}
