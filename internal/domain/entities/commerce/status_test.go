package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusNext(t *testing.T) {
	tests := []struct {
		name    string
		current OrderStatus
		want    OrderStatus
	}{
		{"processing ships", StatusProcessing, StatusShipped},
		{"shipped delivers", StatusShipped, StatusDelivered},
		{"delivered stays delivered", StatusDelivered, StatusDelivered},
		{"unknown falls through to delivered", OrderStatus("Lost"), StatusDelivered},
		{"empty falls through to delivered", OrderStatus(""), StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.current.Next())
		})
	}
}

func TestOrderStatusFullLifecycle(t *testing.T) {
	s := StatusProcessing

	s = s.Next()
	assert.Equal(t, StatusShipped, s)
	assert.False(t, s.Terminal())

	s = s.Next()
	assert.Equal(t, StatusDelivered, s)
	assert.True(t, s.Terminal())

	// Additional processing requests stay at the terminal state.
	s = s.Next()
	assert.Equal(t, StatusDelivered, s)
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusProcessing.Valid())
	assert.True(t, StatusShipped.Valid())
	assert.True(t, StatusDelivered.Valid())
	assert.False(t, OrderStatus("Pending").Valid())
}
