package cli

import (
	"context"
	"fmt"
	"strings"
)

// Coach sends one message to the AI coach. The transcript lives only in
// the authenticated tree and is dropped when the tree unmounts.
func (a *App) Coach(ctx context.Context, args []string) error {
	message := strings.Join(args, " ")
	if message == "" {
		var err error
		message, err = getSimpleText(a.reader, "Ask the coach", a.out)
		if err != nil {
			return err
		}
	}
	if message == "" {
		fmt.Fprintln(a.out, "Usage: coach <question>")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply, err := a.api.Chat(ctx, message)
	if err != nil {
		fmt.Fprintln(a.out, "The coach is unavailable:", err)
		return err
	}

	a.chatHistory = append(a.chatHistory, "you: "+message, "coach: "+reply)
	fmt.Fprintln(a.out, "coach:", reply)
	return nil
}

func (a *App) Insights(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	insights, err := a.api.Insights(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load insights:", err)
		return err
	}
	if len(insights) == 0 {
		fmt.Fprintln(a.out, "Nothing noteworthy yet. Add some expenses first.")
		return nil
	}
	for _, in := range insights {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", in.Severity, in.Title, in.Message)
	}
	return nil
}
