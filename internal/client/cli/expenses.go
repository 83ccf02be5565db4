package cli

import (
	"context"
	"fmt"

	"github.com/finmate-app/finmate/internal/client/api"
)

// expenseCategories mirrors the categories the backend accepts; validated
// client-side so an obvious typo never costs a round-trip.
var expenseCategories = []string{
	"housing", "food", "transportation", "utilities", "healthcare",
	"entertainment", "savings", "debt", "other",
}

func (a *App) ListExpenses(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	expenses, err := a.api.ListExpenses(ctx, "", "")
	if err != nil {
		fmt.Fprintln(a.out, "Could not load expenses:", err)
		return err
	}
	if len(expenses) == 0 {
		fmt.Fprintln(a.out, "No expenses recorded yet.")
		return nil
	}
	for _, e := range expenses {
		fmt.Fprintf(a.out, "%s  %s  %-15s  $%.2f  %s\n", e.ID, e.Date, e.Category, e.Amount, e.Description)
	}
	return nil
}

func (a *App) AddExpense(ctx context.Context) error {
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	category, err := GetChoice(a.reader, "Category", expenseCategories, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	date, err := GetDate(a.reader, "Date", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	created, err := a.api.AddExpense(ctx, api.Expense{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Could not add expense:", err)
		return err
	}
	fmt.Fprintf(a.out, "Added expense %s.\n", created.ID)
	return nil
}

func (a *App) DeleteExpense(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delexpense <id>")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := a.api.DeleteExpense(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not delete expense:", err)
		return err
	}
	fmt.Fprintln(a.out, "Expense deleted.")
	return nil
}

func (a *App) Summary(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	summary, err := a.api.ExpenseSummary(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load summary:", err)
		return err
	}

	fmt.Fprintf(a.out, "Total spent: $%.2f\n", summary.TotalExpenses)
	for _, ct := range summary.TopCategories {
		fmt.Fprintf(a.out, "  %-15s $%.2f\n", ct.Category, ct.Total)
	}
	return nil
}
