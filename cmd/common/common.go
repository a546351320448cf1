// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"expense-view/internal/apierror"
	"expense-view/internal/controller"
	"expense-view/internal/currencyutils"
	"expense-view/internal/dateutils"
	"expense-view/internal/models"

	"github.com/shopspring/decimal"
)

// ParseID parses a positive transaction, category or record id argument.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, &apierror.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a positive number", arg)}
	}
	return id, nil
}

// ParseIDs parses ids given as separate arguments or comma separated lists.
// Duplicates are dropped, order is kept.
func ParseIDs(args []string) ([]int, error) {
	seen := make(map[int]bool)
	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ParseAmount parses a user-entered amount such as "1,234.50" or "12,5".
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(s)
	if err != nil {
		return decimal.Zero, &apierror.ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return amount, nil
}

// ParseDate accepts any supported date layout and returns YYYY-MM-DD.
func ParseDate(s string) (string, error) {
	date, err := dateutils.NormalizeDate(s)
	if err != nil {
		return "", &apierror.ValidationError{Field: "date", Reason: err.Error()}
	}
	return date, nil
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ResolveCategory maps a category name to its id using the controller's
// snapshot. An empty name or "Uncategorized" resolves to nil.
func ResolveCategory(ctrl *controller.Controller, name string) (*int, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, models.Uncategorized) {
		return nil, nil
	}
	cat, ok := ctrl.CategoryByName(name)
	if !ok {
		return nil, &apierror.ValidationError{Field: "category", Reason: fmt.Sprintf("no category named %q", name)}
	}
	id := cat.ID
	return &id, nil
}

// Report prints the outcome of a controller operation: the error as the
// user should see it, or the status line on success.
func Report(w io.Writer, ctrl *controller.Controller, err error) error {
	if err != nil {
		return errors.New(apierror.UserMessage(err))
	}
	if status := ctrl.View().Status; status != "" {
		fmt.Fprintln(w, status)
	}
	return nil
}
