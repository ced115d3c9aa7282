package discovery

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"stayline/models"
	"stayline/services/catalog"
	"stayline/utils"

	"go.uber.org/zap"
)

// maxBudgetResults caps the shortlist returned by a budget search.
const maxBudgetResults = 5

// ErrNoBudgetAmount means the budget sentence carried no number.
var ErrNoBudgetAmount = errors.New("no amount in budget query")

// BudgetResult is the outcome of a budget search. When MissingPrereq is set,
// the search did not run. An empty Properties with a non-zero Budget means
// nothing fits under that amount.
type BudgetResult struct {
	MissingPrereq Prereq
	Budget        int
	Properties    []models.PropertySummary
	TotalMatches  int
}

// FindWithinBudget extracts the amount from the spoken budget sentence and
// returns up to five properties whose cheapest config fits, sorted by price
// ascending. When the caller already has a cluster and it contains matches,
// results narrow to that cluster; otherwise the cluster is ignored rather
// than returning nothing.
func (s *Service) FindWithinBudget(ctx context.Context, userID, budgetQuery string) (*BudgetResult, error) {
	logger := utils.GetLogger()

	contextData, err := s.loadContext(userID)
	if err != nil {
		return nil, err
	}
	if missing := CheckPrereqs(contextData); missing != "" {
		logger.Warn("Budget search blocked on prerequisite",
			zap.String("userID", userID),
			zap.String("missing", string(missing)))
		return &BudgetResult{MissingPrereq: missing}, nil
	}

	budget, ok := ParseBudget(budgetQuery)
	if !ok {
		return nil, ErrNoBudgetAmount
	}
	logger.Info("Extracted budget", zap.Int("budget", budget), zap.String("query", budgetQuery))

	rows, err := s.Catalog.LoadPricingCatalogOnce(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []models.PricingRow
	for _, row := range rows {
		if row.Price <= float64(budget) {
			filtered = append(filtered, row)
		}
	}
	if len(filtered) == 0 {
		return &BudgetResult{Budget: budget}, nil
	}

	if cluster := stringField(contextData, models.FieldCluster); cluster != "" {
		var clusterRows []models.PricingRow
		for _, row := range filtered {
			if row.Cluster == cluster {
				clusterRows = append(clusterRows, row)
			}
		}
		if len(clusterRows) > 0 {
			logger.Info("Prioritizing cluster for budget search", zap.String("cluster", cluster))
			filtered = clusterRows
		}
	}

	unique := catalog.CollapseUnique(filtered, nil)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].MinPrice < unique[j].MinPrice
	})

	top := unique
	if len(top) > maxBudgetResults {
		top = top[:maxBudgetResults]
	}

	return &BudgetResult{
		Budget:       budget,
		Properties:   top,
		TotalMatches: len(unique),
	}, nil
}

// ParseBudget pulls the first run of digits from the sentence, after
// stripping thousands separators so "8,000" reads as one number.
func ParseBudget(query string) (int, bool) {
	cleaned := strings.ReplaceAll(query, ",", "")

	start := -1
	for i, r := range cleaned {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(cleaned[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(cleaned[start:])
		return n, err == nil
	}
	return 0, false
}
