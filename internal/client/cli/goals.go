package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/finmate-app/finmate/internal/client/api"
)

func (a *App) ListGoals(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	goals, err := a.api.ListGoals(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load goals:", err)
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(a.out, "No savings goals yet.")
		return nil
	}
	for _, g := range goals {
		progress := 0.0
		if g.TargetAmount > 0 {
			progress = g.CurrentAmount / g.TargetAmount * 100
		}
		fmt.Fprintf(a.out, "%s  %-20s  $%.2f / $%.2f (%.0f%%)  by %s  priority %d\n",
			g.ID, g.Name, g.CurrentAmount, g.TargetAmount, progress, g.TargetDate, g.Priority)
	}
	return nil
}

func (a *App) AddGoal(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Goal name", a.out)
	if err != nil {
		return err
	}
	target, err := GetAmount(a.reader, "Target amount", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	date, err := GetDate(a.reader, "Target date", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	priorityText, err := GetChoice(a.reader, "Priority", []string{"1", "2", "3", "4", "5"}, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	priority, _ := strconv.Atoi(priorityText)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	created, err := a.api.AddGoal(ctx, api.Goal{
		Name:         name,
		TargetAmount: target,
		TargetDate:   date,
		Priority:     priority,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Could not create goal:", err)
		return err
	}
	fmt.Fprintf(a.out, "Created goal %s.\n", created.ID)
	return nil
}

func (a *App) FundGoal(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: fund <id> <current-amount>")
		return nil
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount < 0 {
		fmt.Fprintln(a.out, "Amount must be a non-negative number.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	updated, err := a.api.UpdateGoalAmount(ctx, args[0], amount)
	if err != nil {
		fmt.Fprintln(a.out, "Could not update goal:", err)
		return err
	}
	fmt.Fprintf(a.out, "%s is now at $%.2f of $%.2f.\n", updated.Name, updated.CurrentAmount, updated.TargetAmount)
	return nil
}

func (a *App) DeleteGoal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delgoal <id>")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := a.api.DeleteGoal(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Could not delete goal:", err)
		return err
	}
	fmt.Fprintln(a.out, "Goal deleted.")
	return nil
}

func (a *App) MonthlyTarget(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: target <id>")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	target, err := a.api.MonthlyTarget(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Could not compute monthly target:", err)
		return err
	}
	fmt.Fprintf(a.out, "Save $%.2f per month for the next %d months.\n", target.MonthlyAmount, target.MonthsRemaining)
	return nil
}
