package domain

import (
	"errors"
	"fmt"
	"sort"
)

// SplitMethod identifies how an expense total is divided among members.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "EQUAL"
	SplitRatio      SplitMethod = "RATIO"
	SplitPercentage SplitMethod = "PERCENTAGE"
	SplitExact      SplitMethod = "EXACT"
	SplitLend       SplitMethod = "LEND"
)

var (
	ErrUnknownMember   = errors.New("member is not part of the group")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrSplitMismatch   = errors.New("split amounts do not sum to the expense total")
	ErrEmptyPlan       = errors.New("split plan resolves to no participants")
	ErrDuplicateMember = errors.New("member appears more than once in the plan")
)

// RatioEntry assigns a member a num/den share of the total.
type RatioEntry struct {
	UserID string
	Num    int64
	Den    int64
}

// PercentageEntry assigns a member a whole-percent share of the total.
type PercentageEntry struct {
	UserID  string
	Percent int64
}

// ExactEntry assigns a member an explicitly asserted amount.
type ExactEntry struct {
	UserID string
	Amount Money
}

// SplitPlan is the tagged variant describing one splitting rule. Exactly the
// field matching Method is consulted; the others stay zero.
type SplitPlan struct {
	Method      SplitMethod
	Members     []string          // EQUAL: participants
	Ratios      []RatioEntry      // RATIO
	Percentages []PercentageEntry // PERCENTAGE
	Exacts      []ExactEntry      // EXACT
	LendTo      string            // LEND: the borrower; the payer bears nothing
}

// SplitShare is one member's resolved owed amount.
type SplitShare struct {
	UserID string
	Amount Money
}

// EqualPlan builds an EQUAL plan over the given members.
func EqualPlan(members []string) SplitPlan {
	return SplitPlan{Method: SplitEqual, Members: members}
}

// ExactPlan builds an EXACT plan from explicit per-member amounts.
func ExactPlan(entries []ExactEntry) SplitPlan {
	return SplitPlan{Method: SplitExact, Exacts: entries}
}

// LendPlan builds a LEND plan: the full amount is owed by the borrower.
func LendPlan(borrowerID string) SplitPlan {
	return SplitPlan{Method: SplitLend, LendTo: borrowerID}
}

// Resolve turns the plan and a positive total into an ordered list of
// (member, owed amount) shares whose amounts sum to the total exactly.
// groupMembers is the set of member ids allowed to appear in the plan.
func (p SplitPlan) Resolve(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: expense total %s must be positive", ErrInvalidAmount, total)
	}

	switch p.Method {
	case SplitEqual:
		return p.resolveEqual(total, groupMembers)
	case SplitRatio:
		return p.resolveRatio(total, groupMembers)
	case SplitPercentage:
		return p.resolvePercentage(total, groupMembers)
	case SplitExact:
		return p.resolveExact(total, groupMembers)
	case SplitLend:
		return p.resolveLend(total, groupMembers)
	default:
		return nil, fmt.Errorf("%w: unknown split method %q", ErrEmptyPlan, p.Method)
	}
}

func (p SplitPlan) resolveEqual(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if len(p.Members) == 0 {
		return nil, ErrEmptyPlan
	}
	seen := make(map[string]struct{}, len(p.Members))
	ids := make([]string, 0, len(p.Members))
	for _, id := range p.Members {
		if err := requireMember(id, groupMembers); err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	// Ascending member id fixes who absorbs the remainder units, so every
	// implementation allocates identically.
	sort.Strings(ids)

	shares, err := total.SplitEven(len(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	out := make([]SplitShare, len(ids))
	for i, id := range ids {
		out[i] = SplitShare{UserID: id, Amount: shares[i]}
	}
	return out, nil
}

func (p SplitPlan) resolveRatio(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if len(p.Ratios) == 0 {
		return nil, ErrEmptyPlan
	}
	if err := checkDistinct(ratioIDs(p.Ratios)); err != nil {
		return nil, err
	}
	out := make([]SplitShare, 0, len(p.Ratios))
	allocated := Money(0)
	for _, e := range p.Ratios {
		if err := requireMember(e.UserID, groupMembers); err != nil {
			return nil, err
		}
		share, err := total.MulRat(e.Num, e.Den)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		out = append(out, SplitShare{UserID: e.UserID, Amount: share})
		allocated = allocated.Add(share)
	}
	leftover := total.Sub(allocated)
	if leftover.IsNegative() {
		return nil, fmt.Errorf("%w: ratio shares sum to %s, more than the total %s", ErrSplitMismatch, allocated, total)
	}
	distributeLeftover(out, leftover)
	return out, nil
}

func (p SplitPlan) resolvePercentage(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if len(p.Percentages) == 0 {
		return nil, ErrEmptyPlan
	}
	if err := checkDistinct(percentageIDs(p.Percentages)); err != nil {
		return nil, err
	}
	var pctSum int64
	for _, e := range p.Percentages {
		if e.Percent < 0 {
			return nil, fmt.Errorf("%w: percentage %d for member %s is negative", ErrInvalidAmount, e.Percent, e.UserID)
		}
		pctSum += e.Percent
	}
	if pctSum != 100 {
		return nil, fmt.Errorf("%w: percentages sum to %d, expected exactly 100", ErrSplitMismatch, pctSum)
	}
	out := make([]SplitShare, 0, len(p.Percentages))
	allocated := Money(0)
	for _, e := range p.Percentages {
		if err := requireMember(e.UserID, groupMembers); err != nil {
			return nil, err
		}
		share, err := total.MulRat(e.Percent, 100)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		out = append(out, SplitShare{UserID: e.UserID, Amount: share})
		allocated = allocated.Add(share)
	}
	distributeLeftover(out, total.Sub(allocated))
	return out, nil
}

func (p SplitPlan) resolveExact(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if len(p.Exacts) == 0 {
		return nil, ErrEmptyPlan
	}
	if err := checkDistinct(exactIDs(p.Exacts)); err != nil {
		return nil, err
	}
	out := make([]SplitShare, 0, len(p.Exacts))
	sum := Money(0)
	for _, e := range p.Exacts {
		if err := requireMember(e.UserID, groupMembers); err != nil {
			return nil, err
		}
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: member %s owes negative amount %s", ErrInvalidAmount, e.UserID, e.Amount)
		}
		out = append(out, SplitShare{UserID: e.UserID, Amount: e.Amount})
		sum = sum.Add(e.Amount)
	}
	// Exact amounts were asserted by the caller; no silent correction.
	if sum != total {
		return nil, fmt.Errorf("%w: splits summed to %s but expense total is %s", ErrSplitMismatch, sum, total)
	}
	return out, nil
}

func (p SplitPlan) resolveLend(total Money, groupMembers map[string]struct{}) ([]SplitShare, error) {
	if p.LendTo == "" {
		return nil, ErrEmptyPlan
	}
	if err := requireMember(p.LendTo, groupMembers); err != nil {
		return nil, err
	}
	return []SplitShare{{UserID: p.LendTo, Amount: total}}, nil
}

// distributeLeftover assigns the rounded-away minor units to the shares in
// the order given, one unit at a time, cycling until exhausted.
func distributeLeftover(shares []SplitShare, leftover Money) {
	for i := 0; leftover.IsPositive(); i = (i + 1) % len(shares) {
		shares[i].Amount++
		leftover--
	}
}

func requireMember(id string, groupMembers map[string]struct{}) error {
	if _, ok := groupMembers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMember, id)
	}
	return nil
}

func checkDistinct(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func ratioIDs(entries []RatioEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}

func percentageIDs(entries []PercentageEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}

func exactIDs(entries []ExactEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}
