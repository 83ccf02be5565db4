package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/finmate-app/finmate/internal/client/gate"
)

// executor defines the command surface the REPL dispatches to. The App
// type satisfies it; tests can provide a lightweight stub.
type executor interface {
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	ListExpenses(ctx context.Context) error
	AddExpense(ctx context.Context) error
	DeleteExpense(ctx context.Context, args []string) error
	Summary(ctx context.Context) error

	ListGoals(ctx context.Context) error
	AddGoal(ctx context.Context) error
	FundGoal(ctx context.Context, args []string) error
	DeleteGoal(ctx context.Context, args []string) error
	MonthlyTarget(ctx context.Context, args []string) error

	Coach(ctx context.Context, args []string) error
	Insights(ctx context.Context) error
}

// dispatch routes one command line to the matching handler. Commands
// outside the current tree report as unhandled, so "expenses" does not
// exist while logged out. Handler errors are not propagated: handlers
// print their own failures, which keeps the loop resilient and focused
// on I/O.
func dispatch(ctx context.Context, a executor, authenticated bool, cmd string, args []string) bool {
	if !authenticated {
		switch cmd {
		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		default:
			return false
		}
		return true
	}

	switch cmd {
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "expenses":
		_ = a.ListExpenses(ctx)
	case "addexpense":
		_ = a.AddExpense(ctx)
	case "delexpense":
		_ = a.DeleteExpense(ctx, args)
	case "summary":
		_ = a.Summary(ctx)
	case "goals":
		_ = a.ListGoals(ctx)
	case "addgoal":
		_ = a.AddGoal(ctx)
	case "fund":
		_ = a.FundGoal(ctx, args)
	case "delgoal":
		_ = a.DeleteGoal(ctx, args)
	case "target":
		_ = a.MonthlyTarget(ctx, args)
	case "coach":
		_ = a.Coach(ctx, args)
	case "insights":
		_ = a.Insights(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		return false
	}
	return true
}

func (a *App) repl(ctx context.Context, state gate.State) {
	for {
		state = a.drainTransitions(state)

		fmt.Fprintf(a.out, "finmate %s> ", a.prompt(state))
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		case "help":
			a.printHelp(state)
		default:
			if !dispatch(ctx, a, state == gate.StateAuthenticated, cmd, args) {
				fmt.Fprintln(a.out, "Unknown command:", cmd)
			}
		}
	}
}

// drainTransitions consumes pending gate switches before the next prompt.
// A switch tears the previous tree down and announces the new one.
func (a *App) drainTransitions(current gate.State) gate.State {
	for {
		select {
		case next := <-a.gate.Transitions():
			if next == current {
				continue
			}
			current = next
			a.resetView()
			if next == gate.StateAuthenticated {
				fmt.Fprintln(a.out, "Session active.")
			} else {
				fmt.Fprintln(a.out, "Session ended, please log in.")
			}
		default:
			return current
		}
	}
}

func (a *App) prompt(state gate.State) string {
	if state != gate.StateAuthenticated {
		return "(guest)"
	}
	if p := a.store.Profile(); p != nil && p.Username != "" {
		return "(" + p.Username + ")"
	}
	return "(signed in)"
}

func (a *App) printHelp(state gate.State) {
	if state == gate.StateAuthenticated {
		fmt.Fprintln(a.out, "Available commands: whoami, expenses, addexpense, delexpense, summary, goals, addgoal, fund, delgoal, target, coach, insights, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, register, exit")
	}
}
