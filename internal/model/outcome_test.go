package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"OK", StatusOK},
		{"ok", StatusOK},
		{"YES", StatusOK},
		{" yes ", StatusOK},
		{"DEFICIENCY", StatusDeficiency},
		{"deficiency", StatusDeficiency},
		{"NO", StatusDeficiency},
		{"NA", StatusNA},
		{"n/a", StatusNA},
		{"MEASURED", StatusMeasured},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeStatus_Unknown(t *testing.T) {
	for _, raw := range []string{"", "MAYBE", "1"} {
		_, err := NormalizeStatus(raw)
		require.Error(t, err, "raw=%q", raw)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestNewOutcome(t *testing.T) {
	value := 41.5
	reasons := MustParseReasons("Cracked")

	o, err := NewOutcome(StatusOK, ReasonSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, OK{}, o)

	o, err = NewOutcome(StatusNA, ReasonSet{}, nil)
	require.NoError(t, err)
	assert.Equal(t, NA{}, o)

	o, err = NewOutcome(StatusDeficiency, reasons, nil)
	require.NoError(t, err)
	assert.True(t, IsDeficiency(o))
	assert.Equal(t, []string{"Cracked"}, ReasonsOf(o).Values())

	o, err = NewOutcome(StatusMeasured, ReasonSet{}, &value)
	require.NoError(t, err)
	got, ok := ValueOf(o)
	assert.True(t, ok)
	assert.Equal(t, 41.5, got)
}

func TestNewOutcome_Rejections(t *testing.T) {
	value := 3.0
	reasons := MustParseReasons("Cracked")

	tests := []struct {
		name    string
		status  Status
		reasons ReasonSet
		value   *float64
	}{
		{"reasons on OK", StatusOK, reasons, nil},
		{"reasons on NA", StatusNA, reasons, nil},
		{"reasons on measured", StatusMeasured, reasons, &value},
		{"value on OK", StatusOK, ReasonSet{}, &value},
		{"value on deficiency", StatusDeficiency, reasons, &value},
		{"measured without value", StatusMeasured, ReasonSet{}, nil},
		{"unknown status", Status("BROKEN"), ReasonSet{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOutcome(tt.status, tt.reasons, tt.value)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestOutcomeHelpers_NonMatchingKinds(t *testing.T) {
	assert.False(t, IsDeficiency(OK{}))
	assert.Equal(t, 0, ReasonsOf(NA{}).Len())
	_, ok := ValueOf(Deficiency{})
	assert.False(t, ok)
}
