package buyandhold

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frictionlabs/backtester/signal"
)

func TestOnData(t *testing.T) {
	t.Parallel()
	s := New()
	assert.Equal(t, "buyandhold", s.Name())
	assert.NotEmpty(t, s.Description())
	assert.Equal(t, signal.Buy, s.OnData(nil))
}
