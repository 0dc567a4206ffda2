package gateway

import (
	"testing"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsAdapter(t *testing.T) {
	cfg := &config.Config{PaymentGateway: KindHosted, StoreID: "s", StorePassword: "p", ServerURL: "http://api.test"}
	g, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, KindHosted, g.Kind())

	cfg = &config.Config{PaymentGateway: KindDirect, StripeSecretKey: "sk_test_123"}
	g, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, KindDirect, g.Kind())
}

func TestNew_NotConfigured(t *testing.T) {
	for _, cfg := range []*config.Config{
		{PaymentGateway: KindHosted},
		{PaymentGateway: KindDirect},
		{PaymentGateway: "carrier-pigeon"},
	} {
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrNotConfigured)
	}
}
