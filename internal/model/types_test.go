package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

func TestParseModuleKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ModuleKind
		wantErr bool
	}{
		{in: "AMENITY", want: ModuleAmenity},
		{in: " sickline ", want: ModuleSickline},
		{in: "Cai", want: ModuleCAI},
		{in: "commissionary", want: ModuleCommissionary},
		{in: "ROOF", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModuleKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDimensions_CheckKey(t *testing.T) {
	full := AnswerKey{SessionID: "s", QuestionID: "q", CompartmentID: "C1", ActivityType: "Daily"}
	activityOnly := AnswerKey{SessionID: "s", QuestionID: "q", ActivityType: "Daily"}
	bare := AnswerKey{SessionID: "s", QuestionID: "q"}

	tests := []struct {
		module  ModuleKind
		key     AnswerKey
		wantErr bool
	}{
		{ModuleAmenity, full, false},
		{ModuleCommissionary, full, false},
		{ModuleCAI, activityOnly, false},
		{ModuleCAI, full, true},
		{ModuleSickline, bare, false},
		{ModuleSickline, activityOnly, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.module)+"/"+tt.key.String(), func(t *testing.T) {
			err := tt.module.Dimensions().CheckKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestArea_EnabledFor(t *testing.T) {
	all := Area{ID: "a"}
	cai := Area{ID: "b", Modules: []ModuleKind{ModuleCAI}}

	assert.True(t, all.EnabledFor(ModuleSickline))
	assert.True(t, cai.EnabledFor(ModuleCAI))
	assert.False(t, cai.EnabledFor(ModuleAmenity))
}

func TestSession_Locked(t *testing.T) {
	assert.False(t, Session{Status: SessionInProgress}.Locked())
	assert.True(t, Session{Status: SessionCompleted}.Locked())
}
