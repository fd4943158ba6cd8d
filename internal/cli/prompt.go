// Package cli holds the interactive building blocks for the tracker commands:
// prompts with per-field re-validation, choices, confirms, and the result table.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/calebds/tracker/internal/schema"
)

type IO struct {
	in  *bufio.Reader
	out io.Writer
}

func NewIO(in io.Reader, out io.Writer) *IO {
	return &IO{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *IO) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *IO) Ask(question string) (string, error) {
	fmt.Fprintf(c.out, "%s ", question)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskValidated asks for one canonical product field and re-asks that field
// alone until its rule passes. A failed answer never aborts the flow.
func (c *IO) AskValidated(question, field string) (any, error) {
	for {
		raw, err := c.Ask(question)
		if err != nil {
			return nil, err
		}

		value, coerceIssue := coerceField(field, raw)
		if coerceIssue != nil {
			fmt.Fprintf(c.out, "%s\n", coerceIssue.Message)
			continue
		}

		res := schema.ValidateField(field, value)
		if !res.IsValid() {
			for _, issue := range res.Issues {
				fmt.Fprintf(c.out, "%s\n", issue.Message)
			}
			continue
		}

		return value, nil
	}
}

// Confirm asks a yes/no question; anything but y/yes is no.
func (c *IO) Confirm(question string) (bool, error) {
	answer, err := c.Ask(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose presents a numbered list and returns the chosen entry.
func (c *IO) Choose(question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices available")
	}

	fmt.Fprintf(c.out, "%s\n", question)
	for i, choice := range choices {
		fmt.Fprintf(c.out, "  [%d] %s\n", i, choice)
	}

	for {
		answer, err := c.Ask(">")
		if err != nil {
			return "", err
		}

		// Accept either the index or the name itself.
		if n, err := strconv.Atoi(answer); err == nil {
			if n >= 0 && n < len(choices) {
				return choices[n], nil
			}
			fmt.Fprintf(c.out, "choose a number between 0 and %d\n", len(choices)-1)
			continue
		}
		for _, choice := range choices {
			if choice == answer {
				return choice, nil
			}
		}
		fmt.Fprintf(c.out, "%q is not one of the choices\n", answer)
	}
}

func coerceField(field, raw string) (any, *schema.ValidationIssue) {
	switch field {
	case schema.FieldPrice:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &schema.ValidationIssue{
				Field:   field,
				Code:    "invalid_integer",
				Message: "price must be an integer (minor currency units)",
			}
		}
		return n, nil
	case schema.FieldInStock:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &schema.ValidationIssue{
				Field:   field,
				Code:    "invalid_bool",
				Message: "in_stock must be true or false",
			}
		}
		return b, nil
	default:
		return raw, nil
	}
}
