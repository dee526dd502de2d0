package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := NewID()

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	upper, err := ParseID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	require.NoError(t, err)
	assert.Equal(t, ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), upper)

	for _, bad := range []string{"", "123", "not-a-uuid", "65f1c2d3e4b5a69788990011"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIDScan(t *testing.T) {
	var id ID
	require.NoError(t, id.Scan("abc"))
	assert.Equal(t, ID("abc"), id)

	require.NoError(t, id.Scan([]byte("def")))
	assert.Equal(t, ID("def"), id)

	require.NoError(t, id.Scan(nil))
	assert.True(t, id.IsZero())

	assert.Error(t, id.Scan(42))
}

func TestDebtPatchFields(t *testing.T) {
	assert.True(t, DebtPatch{}.IsEmpty())

	patch := DebtPatch{CurrentBalance: Some(900.0), Name: Some("Visa")}

	assert.False(t, patch.IsEmpty())
	assert.Equal(t, map[string]any{
		"current_balance": 900.0,
		"name":            "Visa",
	}, patch.Fields())

	cleared := DebtPatch{Name: Null[string]()}
	assert.False(t, cleared.IsEmpty())
	assert.Equal(t, map[string]any{"name": nil}, cleared.Fields())
}

func TestDebtPatchUnmarshalTracksPresence(t *testing.T) {
	var patch DebtPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"currentBalance":0}`), &patch))

	assert.True(t, patch.Name.Set)
	assert.True(t, patch.Name.Null)
	assert.True(t, patch.CurrentBalance.HasValue())
	assert.Equal(t, 0.0, patch.CurrentBalance.Value)
	assert.False(t, patch.DebtType.Set)
	assert.False(t, patch.MinimumPayment.Set)
	assert.NoError(t, patch.Validate())

	assert.Equal(t, map[string]any{"name": nil, "current_balance": 0.0}, patch.Fields())
}

func TestDebtPatchValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"null debt type", `{"debtType":null}`, ErrNullField},
		{"null balance", `{"currentBalance":null}`, ErrNullField},
		{"null rate", `{"annualPercentageRate":null}`, ErrNullField},
		{"null minimum payment", `{"minimumPayment":null}`, ErrNullField},
		{"empty debt type", `{"debtType":""}`, ErrInvalidField},
		{"null name", `{"name":null}`, nil},
		{"empty", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch DebtPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))

			err := patch.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDebtPatchRejectsWrongType(t *testing.T) {
	var patch DebtPatch
	assert.Error(t, json.Unmarshal([]byte(`{"currentBalance":"lots"}`), &patch))
}
