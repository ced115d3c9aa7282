package discovery

import (
	"context"
	"testing"

	"stayline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetRows() []models.PricingRow {
	row := func(name, cluster string, price float64) models.PricingRow {
		return models.PricingRow{
			PropertyName: name, Cluster: cluster, Price: price,
			Lat: 13.0, Long: 80.25, Location: "Chennai",
		}
	}
	return []models.PricingRow{
		row("Cheap", "ECR", 6000),
		row("Mid", "OMR", 7000),
		row("Mid", "OMR", 8000), // second config of the same property
		row("Edge", "OMR", 8000),
		row("Pricey", "OMR", 11000),
	}
}

func TestFindWithinBudgetFiltersAndSortsAscending(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	svc.Cache.Set("u1", qualifiedContext())

	result, err := svc.FindWithinBudget(context.Background(), "u1", "my budget is 8,000")
	require.NoError(t, err)
	require.Empty(t, result.MissingPrereq)
	assert.Equal(t, 8000, result.Budget)

	names := make([]string, 0, len(result.Properties))
	for _, prop := range result.Properties {
		names = append(names, prop.PropertyName)
	}
	assert.Equal(t, []string{"Cheap", "Mid", "Edge"}, names)
	assert.Equal(t, 6000, result.Properties[0].MinPrice)
}

func TestFindWithinBudgetNothingUnderBudget(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	svc.Cache.Set("u1", qualifiedContext())

	result, err := svc.FindWithinBudget(context.Background(), "u1", "under 3000")
	require.NoError(t, err)
	assert.Equal(t, 3000, result.Budget)
	assert.Empty(t, result.Properties)
}

func TestFindWithinBudgetPrefersKnownCluster(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	contextData := qualifiedContext()
	contextData[models.FieldCluster] = "OMR"
	svc.Cache.Set("u1", contextData)

	result, err := svc.FindWithinBudget(context.Background(), "u1", "around 8000")
	require.NoError(t, err)

	// "Cheap" fits the budget but sits in another cluster.
	names := make([]string, 0, len(result.Properties))
	for _, prop := range result.Properties {
		names = append(names, prop.PropertyName)
	}
	assert.Equal(t, []string{"Mid", "Edge"}, names)
}

func TestFindWithinBudgetClusterWithoutMatchesIsIgnored(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	contextData := qualifiedContext()
	contextData[models.FieldCluster] = "OMR"
	svc.Cache.Set("u1", contextData)

	// Only "Cheap" (ECR) fits; the empty cluster intersection must not
	// produce an empty result.
	result, err := svc.FindWithinBudget(context.Background(), "u1", "6000 max")
	require.NoError(t, err)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, "Cheap", result.Properties[0].PropertyName)
}

func TestFindWithinBudgetCapsAtFive(t *testing.T) {
	rows := budgetRows()
	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		rows = append(rows, models.PricingRow{
			PropertyName: name, Cluster: "ECR", Price: 5000, Lat: 13, Long: 80,
		})
	}
	svc := newTestService(&fakeSheet{rows: rows}, &fakePMS{}, &fakeGeocoder{})
	svc.Cache.Set("u1", qualifiedContext())

	result, err := svc.FindWithinBudget(context.Background(), "u1", "10000")
	require.NoError(t, err)
	assert.Len(t, result.Properties, 5)
	// Cheap, Mid, Edge and P1-P4 fit; Pricey at 11000 does not.
	assert.Equal(t, 7, result.TotalMatches)
}

func TestFindWithinBudgetNoAmount(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	svc.Cache.Set("u1", qualifiedContext())

	_, err := svc.FindWithinBudget(context.Background(), "u1", "something affordable")
	assert.ErrorIs(t, err, ErrNoBudgetAmount)
}

func TestFindWithinBudgetPrereqFirst(t *testing.T) {
	svc := newTestService(&fakeSheet{rows: budgetRows()}, &fakePMS{}, &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	result, err := svc.FindWithinBudget(context.Background(), "u1", "8000")
	require.NoError(t, err)
	assert.Equal(t, PrereqProfession, result.MissingPrereq)
}

func TestParseBudget(t *testing.T) {
	cases := []struct {
		query  string
		amount int
		ok     bool
	}{
		{"my budget is 8,000", 8000, true},
		{"between 7000 to 9000", 7000, true},
		{"I can spend max 12000 rupees", 12000, true},
		{"10000", 10000, true},
		{"no number here", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		amount, ok := ParseBudget(tc.query)
		assert.Equal(t, tc.ok, ok, tc.query)
		assert.Equal(t, tc.amount, amount, tc.query)
	}
}
