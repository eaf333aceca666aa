package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cemilcan0/debt-tracking-app/internal/model"
)

// Aggregate totals credits and debits over rows. It has no side effects and
// works the same for one person's rows and for the whole ledger. An empty
// input yields all zeros.
func Aggregate(rows []model.Row) model.Totals {
	credit := decimal.Zero
	debit := decimal.Zero
	for _, r := range rows {
		switch r.Kind {
		case model.KindCredit:
			credit = credit.Add(r.Amount)
		case model.KindDebit:
			debit = debit.Add(r.Amount)
		}
	}
	return model.Totals{
		Credit:  credit,
		Debit:   debit,
		Balance: credit.Sub(debit),
	}
}

// Summarize groups rows by person, in order of first appearance, and
// aggregates each group.
func Summarize(rows []model.Row) []model.PersonSummary {
	groups := make(map[int64][]model.Row)
	var order []int64
	names := make(map[int64]string)
	for _, r := range rows {
		if _, seen := groups[r.PersonID]; !seen {
			order = append(order, r.PersonID)
			names[r.PersonID] = r.PersonName
		}
		groups[r.PersonID] = append(groups[r.PersonID], r)
	}

	summaries := make([]model.PersonSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, model.PersonSummary{
			Name:   names[id],
			Totals: Aggregate(groups[id]),
		})
	}
	return summaries
}
