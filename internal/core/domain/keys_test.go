package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentKey(t *testing.T) {
	assert.Equal(t, "NUTANIX", EquipmentKey("  NUTANIX \t"))
	assert.Equal(t, "Nutanix", EquipmentKey("Nutanix"), "case is preserved")
	assert.Equal(t, "", EquipmentKey("   "))
}

func TestParseCompositeID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []CompositeID
		wantErr bool
	}{
		{
			name: "simple",
			in:   "test1@mesa.kr_NUTANIX_2025-01-21_3",
			want: []CompositeID{{ClientID: "test1@mesa.kr", Equipment: "NUTANIX", Date: "2025-01-21", Index: 3}},
		},
		{
			name: "underscores are ambiguous",
			in:   "test2@mesa.kr_equipment_1_2024-11-22_0",
			want: []CompositeID{
				{ClientID: "test2@mesa.kr", Equipment: "equipment_1", Date: "2024-11-22", Index: 0},
				{ClientID: "test2@mesa.kr_equipment", Equipment: "1", Date: "2024-11-22", Index: 0},
			},
		},
		{
			name: "non-ascii equipment with space",
			in:   "test1@mesa.kr_스토리지 서버_2025-02-01_0",
			want: []CompositeID{{ClientID: "test1@mesa.kr", Equipment: "스토리지 서버", Date: "2025-02-01", Index: 0}},
		},
		{name: "too few segments", in: "a_b_1", wantErr: true},
		{name: "bad index", in: "a_b_2025-01-01_x", wantErr: true},
		{name: "negative index", in: "a_b_2025-01-01_-1", wantErr: true},
		{name: "bad date", in: "a_b_20250101_1", wantErr: true},
		{name: "empty equipment", in: "a__2025-01-01_1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompositeID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, id := range got {
				assert.Equal(t, tt.in, id.String())
			}
		})
	}
}

func TestValidator(t *testing.T) {
	var v Validator
	err := v.Require("manager", "").
		Require("client", "  ").
		Require("date", "2025-01-01").
		Check("date", ValidDate("2025-13-01")).
		Err()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []string{"manager", "client"}, verr.Missing)
	assert.Equal(t, []string{"manager", "client", "date"}, verr.Fields())

	var ok Validator
	assert.NoError(t, ok.Require("x", "y").Err())
}

func TestToMaintenanceDataKeepsEmptyEquipment(t *testing.T) {
	data := ToMaintenanceData([]Equipment{{Name: "CIDER"}})
	records, ok := data["CIDER"]
	require.True(t, ok)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestEffectiveStatus(t *testing.T) {
	registered := StatusRegistered
	assert.Equal(t, StatusApproved, (&MaintenanceRecord{}).EffectiveStatus())
	assert.Equal(t, StatusRegistered, (&MaintenanceRecord{Status: &registered}).EffectiveStatus())
}
