package domain

// Balance is a member's derived position within one group. It is computed
// fresh from expense and split history and never persisted, so it cannot
// drift from the ledger.
type Balance struct {
	UserID    string `json:"userID"`
	UserName  string `json:"userName"`
	TotalPaid Money  `json:"totalPaid"`
	TotalOwed Money  `json:"totalOwed"`
	Net       Money  `json:"net"` // paid minus owed; positive is owed money, negative owes
}

// GroupBreakdown is the full balance picture of a group.
// For any group, the member nets sum to zero: every minor unit paid is owed
// by someone.
type GroupBreakdown struct {
	GroupID       string    `json:"groupID"`
	GroupName     string    `json:"groupName"`
	TotalExpenses Money     `json:"totalExpenses"`
	Balances      []Balance `json:"balances"`
}

// ComputeBalances aggregates expenses into per-member balances for the given
// member ids. Members with no activity appear with zero balances. The result
// is ordered by the memberIDs slice.
func ComputeBalances(memberIDs []string, expenses []Expense) []Balance {
	byID := make(map[string]*Balance, len(memberIDs))
	out := make([]Balance, len(memberIDs))
	for i, id := range memberIDs {
		out[i] = Balance{UserID: id}
		byID[id] = &out[i]
	}
	for _, exp := range expenses {
		if b, ok := byID[exp.PaidBy]; ok {
			b.TotalPaid = b.TotalPaid.Add(exp.Amount)
		}
		for _, split := range exp.Splits {
			if b, ok := byID[split.UserID]; ok {
				b.TotalOwed = b.TotalOwed.Add(split.Amount)
			}
		}
	}
	for i := range out {
		out[i].Net = out[i].TotalPaid.Sub(out[i].TotalOwed)
	}
	return out
}
