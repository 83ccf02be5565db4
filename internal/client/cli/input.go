package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. The returned byte slice should be wiped by
// the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetAmount prompts for a positive dollar amount.
func GetAmount(reader *bufio.Reader, prompt string, w io.Writer) (float64, error) {
	text, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("amount must be a positive number, got %q", text)
	}
	return amount, nil
}

// GetDate prompts for a YYYY-MM-DD date. An empty answer means today.
func GetDate(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	text, err := GetSimpleText(reader, prompt+" (YYYY-MM-DD, empty for today)", w)
	if err != nil {
		return "", err
	}
	if text == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", text)
	}
	return text, nil
}

// GetChoice prompts until the answer is one of the allowed values.
func GetChoice(reader *bufio.Reader, prompt string, allowed []string, w io.Writer) (string, error) {
	text, err := GetSimpleText(reader, prompt+" ("+strings.Join(allowed, ", ")+")", w)
	if err != nil {
		return "", err
	}
	for _, v := range allowed {
		if text == v {
			return text, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q", text)
}
