package workflow

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/domains/loan"
	"biblioteca-console/internal/domains/member"
	"biblioteca-console/pkg/cache"
	"biblioteca-console/pkg/logger"
)

const (
	// BaselineMemberNumber is assigned when the member collection is empty.
	BaselineMemberNumber int64 = 1000

	// memberNumberKey is the atomic allocator counter.
	memberNumberKey = "socios:proximo-numero"
)

// OverdueRatePerDay is the fixed suggestion rate: 10 currency units per
// overdue day. It suggests, never enforces, a fine amount.
var OverdueRatePerDay = decimal.NewFromInt(10)

// QuickPickDays are the loan form's end-date shortcuts.
var QuickPickDays = []int{7, 15, 30}

// Coordinator ties the loan and fine lifecycles together: loan creation
// with due-date defaults, graded returns, derived fine suggestions, fine
// issuance and settlement, and member numbering. Every mutation is followed
// by a full collection re-fetch; the console never updates optimistically.
type Coordinator struct {
	books   book.Service
	members member.Service
	loans   loan.Service
	fines   fine.Service
	cache   cache.Cache
	now     func() time.Time
}

func NewCoordinator(
	books book.Service,
	members member.Service,
	loans loan.Service,
	fines fine.Service,
	kv cache.Cache,
) *Coordinator {
	return &Coordinator{
		books:   books,
		members: members,
		loans:   loans,
		fines:   fines,
		cache:   kv,
		now:     time.Now,
	}
}

// ============================================================
// LOANS
// ============================================================

// LoanMutationResp carries the mutation result plus the re-fetched
// collections the page renders from.
type LoanMutationResp struct {
	Loan  *loan.Loan  `json:"prestamo"`
	Loans []loan.Loan `json:"prestamos"`
	Books []book.Book `json:"libros"`
}

// EndDateAfter computes a quick-pick end date: start plus one of the fixed
// day counts.
func EndDateAfter(start string, days int) (string, error) {
	allowed := false
	for _, d := range QuickPickDays {
		if days == d {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("quick pick must be one of %v, got %d", QuickPickDays, days)
	}

	startDate, err := time.Parse(loan.DateLayout, start)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", start, err)
	}
	return startDate.AddDate(0, 0, days).Format(loan.DateLayout), nil
}

// CreateLoan validates the form, defaults the start date to today, checks
// date ordering, submits, and re-fetches loans and books. The book's flip
// to PRESTADO is a backend side effect visible only through the re-fetch.
func (w *Coordinator) CreateLoan(ctx context.Context, req loan.CreateLoanReq) (*LoanMutationResp, error) {
	if req.StartDate == "" {
		req.StartDate = w.now().Format(loan.DateLayout)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate, err := time.Parse(loan.DateLayout, req.StartDate)
	if err != nil {
		return nil, validation.Errors{"fechaInicio": validation.NewError("loan_start", "fecha de inicio inválida")}
	}
	endDate, err := time.Parse(loan.DateLayout, req.EndDate)
	if err != nil {
		return nil, validation.Errors{"fechaFin": validation.NewError("loan_end", "fecha de devolución inválida")}
	}
	if endDate.Before(startDate) {
		return nil, validation.Errors{"fechaFin": validation.NewError("loan_end", "la fecha de devolución debe ser posterior a la de inicio")}
	}

	created, err := w.loans.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return w.loanMutationResp(ctx, created)
}

// ReturnLoan closes a loan through the graded devolution form. The grade is
// mandatory; the grade-to-amount mapping is the backend's job, the console
// only records intent. A lost or damaged grade does NOT create a fine here;
// fine issuance stays a separate operator action.
func (w *Coordinator) ReturnLoan(ctx context.Context, loanID int64, req loan.ReturnLoanReq) (*LoanMutationResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	returned, err := w.loans.Return(ctx, loanID, req)
	if err != nil {
		return nil, err
	}

	return w.loanMutationResp(ctx, returned)
}

// RenewLoan extends an active loan's end date.
func (w *Coordinator) RenewLoan(ctx context.Context, loanID int64, req loan.RenewLoanReq) (*LoanMutationResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	renewed, err := w.loans.Renew(ctx, loanID, req)
	if err != nil {
		return nil, err
	}

	return w.loanMutationResp(ctx, renewed)
}

func (w *Coordinator) loanMutationResp(ctx context.Context, mutated *loan.Loan) (*LoanMutationResp, error) {
	loans, err := w.loans.List(ctx)
	if err != nil {
		return nil, err
	}
	books, err := w.books.List(ctx)
	if err != nil {
		return nil, err
	}

	return &LoanMutationResp{Loan: mutated, Loans: loans, Books: books}, nil
}

// ============================================================
// FINES
// ============================================================

type FineMutationResp struct {
	Fine  *fine.Fine  `json:"multa"`
	Fines []fine.Fine `json:"multas"`
}

// SuggestedAmount derives the late-return proposal for a loan: overdue
// days times the per-day rate. Zero for loans not overdue.
func SuggestedAmount(overdueDays int) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(overdueDays)).Mul(OverdueRatePerDay)
}

// SuggestFines loads the member's active loans and proposes a late-return
// fine for each overdue one. The operator may pick any of the member's
// active loans instead, or override the amount; the suggestion carries no
// authority.
func (w *Coordinator) SuggestFines(ctx context.Context, memberID int64) ([]fine.Suggestion, []loan.Loan, error) {
	activeLoans, err := w.loans.ActiveByMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	suggestions := make([]fine.Suggestion, 0, len(activeLoans))
	for _, l := range activeLoans {
		if l.OverdueDays <= 0 {
			continue
		}
		suggestions = append(suggestions, fine.Suggestion{
			Loan:            l,
			SuggestedAmount: SuggestedAmount(l.OverdueDays),
			Reason:          fine.ReasonLateReturn,
		})
	}
	return suggestions, activeLoans, nil
}

// CreateFine issues a manual (or accepted-suggestion) fine after the form's
// ordered validation, then re-fetches the collection.
func (w *Coordinator) CreateFine(ctx context.Context, req fine.CreateFineReq) (*FineMutationResp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := w.fines.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return w.fineMutationResp(ctx, created)
}

// GenerateFine asks the backend to derive a fine for an overdue loan.
func (w *Coordinator) GenerateFine(ctx context.Context, loanID int64) (*FineMutationResp, error) {
	generated, err := w.fines.GenerateForLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return w.fineMutationResp(ctx, generated)
}

// PayFine settles a fine. One operation, full amount, no way back from the
// console.
func (w *Coordinator) PayFine(ctx context.Context, fineID int64) (*FineMutationResp, error) {
	paid, err := w.fines.Pay(ctx, fineID)
	if err != nil {
		return nil, err
	}
	return w.fineMutationResp(ctx, paid)
}

func (w *Coordinator) fineMutationResp(ctx context.Context, mutated *fine.Fine) (*FineMutationResp, error) {
	fines, err := w.fines.List(ctx)
	if err != nil {
		return nil, err
	}
	return &FineMutationResp{Fine: mutated, Fines: fines}, nil
}

// ============================================================
// MEMBERS
// ============================================================

type MemberMutationResp struct {
	Member  *member.Member  `json:"socio"`
	Members []member.Member `json:"socios"`
}

// RegisterMember sanitizes and validates the form, allocates the next
// member number and creates the member, then re-fetches the collection.
func (w *Coordinator) RegisterMember(ctx context.Context, req member.SaveMemberReq) (*MemberMutationResp, error) {
	req.Sanitize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	number, err := w.NextMemberNumber(ctx)
	if err != nil {
		return nil, err
	}

	created, err := w.members.Create(ctx, member.CreateMemberReq{
		Name:   req.Name,
		DNI:    req.DNI,
		Number: number,
	})
	if err != nil {
		return nil, err
	}

	return w.memberMutationResp(ctx, created)
}

// UpdateMember edits name and DNI; the member number never changes.
func (w *Coordinator) UpdateMember(ctx context.Context, id int64, req member.SaveMemberReq) (*MemberMutationResp, error) {
	req.Sanitize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := w.members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := w.members.Update(ctx, id, member.UpdateMemberReq{
		Name:   req.Name,
		DNI:    req.DNI,
		Number: existing.Number,
	})
	if err != nil {
		return nil, err
	}

	return w.memberMutationResp(ctx, updated)
}

// DeleteMember runs the active-loans pre-check before any DELETE is
// issued; a member with active loans is never deletable from here.
func (w *Coordinator) DeleteMember(ctx context.Context, id int64) ([]member.Member, error) {
	hasLoans, err := w.members.HasActiveLoans(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasLoans {
		return nil, member.ErrHasActiveLoans
	}

	if err := w.members.Delete(ctx, id); err != nil {
		return nil, err
	}

	return w.members.List(ctx)
}

// NextMemberNumber allocates a member number. The naive derivation (read
// the collection, take max+1) loses the race between two concurrent
// creations, so the counter lives in the shared cache and is bumped
// atomically; the read-then-write path survives only as a degraded
// fallback when the cache is down. An empty collection starts at the
// 1000 baseline.
func (w *Coordinator) NextMemberNumber(ctx context.Context) (int64, error) {
	members, err := w.members.List(ctx)
	if err != nil {
		return 0, err
	}

	var maxNumber int64
	for _, m := range members {
		if m.Number > maxNumber {
			maxNumber = m.Number
		}
	}

	if w.cache == nil {
		return derivedNumber(maxNumber), nil
	}

	seed := maxNumber
	if seed == 0 {
		// Seed one below the baseline so the first Increment lands on it.
		seed = BaselineMemberNumber - 1
	}
	if _, err := w.cache.SetNX(ctx, memberNumberKey, seed, 0); err != nil {
		logger.Warn("member number allocator unavailable, using read-then-write fallback", err)
		return derivedNumber(maxNumber), nil
	}

	next, err := w.cache.Increment(ctx, memberNumberKey)
	if err != nil {
		logger.Warn("member number allocator unavailable, using read-then-write fallback", err)
		return derivedNumber(maxNumber), nil
	}

	// Members created out-of-band can leave the counter behind the
	// collection; re-seed from the observed maximum and bump again.
	if next <= maxNumber {
		if err := w.cache.Set(ctx, memberNumberKey, maxNumber, 0); err != nil {
			return derivedNumber(maxNumber), nil
		}
		next, err = w.cache.Increment(ctx, memberNumberKey)
		if err != nil {
			return derivedNumber(maxNumber), nil
		}
	}

	return next, nil
}

func (w *Coordinator) memberMutationResp(ctx context.Context, mutated *member.Member) (*MemberMutationResp, error) {
	members, err := w.members.List(ctx)
	if err != nil {
		return nil, err
	}
	return &MemberMutationResp{Member: mutated, Members: members}, nil
}

// derivedNumber is the original read-then-write rule: 1000 for an empty
// collection, max+1 otherwise.
func derivedNumber(maxNumber int64) int64 {
	if maxNumber == 0 {
		return BaselineMemberNumber
	}
	return maxNumber + 1
}
