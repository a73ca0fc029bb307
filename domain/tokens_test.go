package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/migaloo-labs/bqs/domain"
)

func TestNewFallbackToken(t *testing.T) {
	token := domain.NewFallbackToken("ibc/EA459CE57199098BA5FFDBD3AF637C0A7BD8A97544B56A6AD0F5F6A038155250")

	require.Equal(t, "ibc/EA459CE57199098BA5FFDBD3AF637C0A7BD8A97544B56A6AD0F5F6A038155250", token.HumanDenom)
	require.Equal(t, domain.FallbackPrecision, token.Precision)
}
