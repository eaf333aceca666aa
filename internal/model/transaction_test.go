package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"credit", KindCredit},
		{"Credit", KindCredit},
		{" DEBIT ", KindDebit},
		{"Alacak", KindCredit},
		{"Borç", KindDebit},
		{"borc", KindDebit},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, "ParseKind(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseKind(%q)", tt.in)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, in := range []string{"", "refund", "cred"} {
		_, err := ParseKind(in)
		assert.Error(t, err, "ParseKind(%q)", in)
	}
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Credit", KindCredit.Label())
	assert.Equal(t, "Debit", KindDebit.Label())
	assert.True(t, KindDebit.Valid())
	assert.False(t, Kind("other").Valid())
}
