package partner

import (
	"testing"

	"github.com/platebooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("valid customer", func(t *testing.T) {
		c, err := NewCustomer("宏达五金厂", "王经理", "13800000001", "工业园区3号", valueobject.NewMoneyCNYFromFloat(50000))
		require.NoError(t, err)
		assert.Equal(t, "宏达五金厂", c.Name)
		assert.True(t, c.CreditLimit.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, 1, c.GetVersion())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewCustomer("", "", "", "", valueobject.ZeroCNY())
		assert.Error(t, err)
	})

	t.Run("negative credit limit rejected", func(t *testing.T) {
		_, err := NewCustomer("客户", "", "", "", valueobject.NewMoneyCNYFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestCustomer_UpdateContact(t *testing.T) {
	c, err := NewCustomer("客户A", "old", "1", "addr", valueobject.ZeroCNY())
	require.NoError(t, err)

	c.UpdateContact("new", "2", "new addr")
	assert.Equal(t, "new", c.ContactPerson)
	assert.Equal(t, "2", c.Phone)
}

func TestCustomer_WithinCreditLimit(t *testing.T) {
	unlimited, err := NewCustomer("无限额客户", "", "", "", valueobject.ZeroCNY())
	require.NoError(t, err)
	assert.True(t, unlimited.WithinCreditLimit(decimal.NewFromInt(1000000)))

	limited, err := NewCustomer("限额客户", "", "", "", valueobject.NewMoneyCNYFromFloat(10000))
	require.NoError(t, err)
	assert.True(t, limited.WithinCreditLimit(decimal.NewFromInt(10000)))
	assert.False(t, limited.WithinCreditLimit(decimal.NewFromFloat(10000.01)))
}

func TestNewSupplier(t *testing.T) {
	s, err := NewSupplier("诚信化工", "李老板", "13900000002", "化工市场12号", "化工原料")
	require.NoError(t, err)
	assert.Equal(t, "化工原料", s.BusinessType)

	_, err = NewSupplier("", "", "", "", "")
	assert.Error(t, err)
}
