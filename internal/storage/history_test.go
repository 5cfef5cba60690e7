package storage_test

import (
	"context"
	"testing"

	"github.com/Veraticus/billscout/internal/classification"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/scoring"
	"github.com/Veraticus/billscout/internal/service"
	"github.com/Veraticus/billscout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ClassifyAndStore(t *testing.T) {
	ctx := context.Background()
	var store service.Storage = testutil.SetupTestDB(t)

	classifier := classification.NewClassifier(classification.DefaultRules())
	inputs := []model.BillInput{
		{Text: "Monthly bill", CompanyName: "Comcast", Description: "internet service"},
		{Text: "Whole Foods groceries"},
		{Text: "mystery charge"},
	}

	matches, err := classifier.ClassifyBatch(ctx, inputs)
	require.NoError(t, err)

	for i, m := range matches {
		require.NoError(t, store.SaveBill(ctx, &model.BillRecord{
			BillInput: inputs[i],
			Match:     m,
			Tags:      classifier.SuggestTags(m.Category, m.Subcategory),
		}))
	}

	counts, err := store.CountBillsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Internet/Telecom": 1, "Groceries": 1, model.CategoryOther: 1}, counts)

	bills, err := store.ListBills(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "mystery charge", bills[0].Text)
	assert.Equal(t, []string{"other"}, bills[0].Tags)
}

func TestHistory_ScoreAndStore(t *testing.T) {
	ctx := context.Background()
	var store service.Storage = testutil.SetupTestDB(t)

	candidates := []model.PlaceCandidate{
		{ID: "a", Name: "A", Location: model.Location{Lat: 40, Lon: -75}},
		{ID: "b", Name: "B", Location: model.Location{Lat: 40.5, Lon: -75}},
	}
	places := scoring.ScoreCandidates(candidates, 40, -75)

	snapshot := &model.PlaceSnapshot{Query: "grocers", RefLat: 40, RefLon: -75, Places: places}
	require.NoError(t, store.SavePlaceSnapshot(ctx, snapshot))

	got, err := store.GetPlaceSnapshot(ctx, snapshot.ID)
	require.NoError(t, err)
	require.Len(t, got.Places, 2)
	for i := range places {
		assert.Equal(t, places[i].ID, got.Places[i].ID)
		assert.InDelta(t, places[i].DistanceKm, got.Places[i].DistanceKm, 1e-9)
		assert.Equal(t, places[i].PriceScore, got.Places[i].PriceScore)
	}
}
