package domain

import "sort"

// Transfer is one proposed settlement payment: the debtor pays the creditor.
type Transfer struct {
	DebtorID   string `json:"debtorID"`
	CreditorID string `json:"creditorID"`
	Amount     Money  `json:"amount"`
}

// SimplifyDebts proposes a minimal set of transfers that would drive all
// non-zero nets to zero. It greedily matches the largest debtor against the
// largest creditor until both lists are exhausted; ties break on ascending
// member id so the proposal is deterministic. The output is advisory only;
// settlements are recorded individually through the ledger.
func SimplifyDebts(balances []Balance) []Transfer {
	type position struct {
		userID string
		amount Money // magnitude of the net
	}
	var debtors, creditors []position
	for _, b := range balances {
		switch {
		case b.Net.IsNegative():
			debtors = append(debtors, position{b.UserID, b.Net.Neg()})
		case b.Net.IsPositive():
			creditors = append(creditors, position{b.UserID, b.Net})
		}
	}
	byMagnitude := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].amount != ps[j].amount {
				return ps[i].amount > ps[j].amount
			}
			return ps[i].userID < ps[j].userID
		}
	}

	var transfers []Transfer
	for len(debtors) > 0 && len(creditors) > 0 {
		sort.Slice(debtors, byMagnitude(debtors))
		sort.Slice(creditors, byMagnitude(creditors))
		d, c := &debtors[0], &creditors[0]

		amount := d.amount
		if c.amount < amount {
			amount = c.amount
		}
		transfers = append(transfers, Transfer{DebtorID: d.userID, CreditorID: c.userID, Amount: amount})

		d.amount = d.amount.Sub(amount)
		c.amount = c.amount.Sub(amount)
		if d.amount.IsZero() {
			debtors = debtors[1:]
		}
		if c.amount.IsZero() {
			creditors = creditors[1:]
		}
	}
	return transfers
}
