package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// LavatoryCatalog returns the fixture catalog used across engine and CLI
// tests:
//
//	lavatory (all modules)
//	  basin  -> Q1, Q2   (Q2 allows Cracked, Leaking)
//	  tap    -> Q3
//	  mirror -> (no questions, never required)
//	berth (SICKLINE, CAI)
//	  ladder -> Q10, Q11 (Q11 measured, mm)
//	vestibule (AMENITY)
//	  (no items, always PENDING)
func LavatoryCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]model.Area{
			{ID: "lavatory", Name: "Lavatory"},
			{ID: "berth", Name: "Berth", Modules: []model.ModuleKind{model.ModuleSickline, model.ModuleCAI}},
			{ID: "vestibule", Name: "Vestibule", Modules: []model.ModuleKind{model.ModuleAmenity}},
		},
		[]model.Item{
			{ID: "basin", AreaID: "lavatory", Name: "Wash basin"},
			{ID: "tap", AreaID: "lavatory", Name: "Tap"},
			{ID: "mirror", AreaID: "lavatory", Name: "Mirror"},
			{ID: "ladder", AreaID: "berth", Name: "Ladder"},
		},
		[]model.Question{
			{ID: "Q1", ItemID: "basin", Text: "Basin intact?"},
			{ID: "Q2", ItemID: "basin", Text: "Basin drains?", Reasons: []string{"Cracked", "Leaking"}},
			{ID: "Q3", ItemID: "tap", Text: "Tap works?"},
			{ID: "Q10", ItemID: "ladder", Text: "Ladder secure?"},
			{ID: "Q11", ItemID: "ladder", Text: "Rung spacing", Type: model.AnswerTypeMeasured, Unit: "mm"},
		},
	)
	require.NoError(t, err)
	return c
}
