package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// parseFieldAssignments turns "6=Andre Harris" style flags into field values.
func parseFieldAssignments(assignments []string) (map[int]quickbase.FieldValue, error) {
	fields := make(map[int]quickbase.FieldValue, len(assignments))

	for _, assignment := range assignments {
		id, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldFormat, assignment)
		}

		fieldID, err := parseFieldID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldFormat, assignment)
		}

		fields[fieldID] = parseFieldValue(raw)
	}

	return fields, nil
}

// parseFieldValue infers the value type of a command-line literal. Numbers
// and true/false are typed; a double-quoted literal is always text; an empty
// literal clears the field.
func parseFieldValue(raw string) quickbase.FieldValue {
	if raw == "" {
		return quickbase.Null()
	}

	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return quickbase.String(raw[1 : len(raw)-1])
	}

	if raw == "true" || raw == "false" {
		return quickbase.Bool(raw == "true")
	}

	if f, err := cast.ToFloat64E(raw); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return quickbase.Number(f)
	}

	return quickbase.String(raw)
}

// parseSort parses "<fieldId>[:ASC|DESC]".
func parseSort(values []string) ([]quickbase.SortByItem, error) {
	items := make([]quickbase.SortByItem, 0, len(values))

	for _, value := range values {
		id, order, hasOrder := strings.Cut(value, ":")

		fieldID, err := parseFieldID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidSortFormat, value)
		}

		item := quickbase.SortByItem{FieldID: fieldID, Order: quickbase.SortAsc}

		if hasOrder {
			switch quickbase.SortOrder(strings.ToUpper(order)) {
			case quickbase.SortAsc:
			case quickbase.SortDesc:
				item.Order = quickbase.SortDesc
			default:
				return nil, fmt.Errorf("%w: %q", constants.ErrInvalidSortFormat, value)
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// parseGroupBy parses "<fieldId>[:<grouping>]". Grouping defaults to equal-values.
func parseGroupBy(values []string) ([]quickbase.GroupByItem, error) {
	items := make([]quickbase.GroupByItem, 0, len(values))

	for _, value := range values {
		id, grouping, hasGrouping := strings.Cut(value, ":")

		fieldID, err := parseFieldID(id)
		if err != nil || (hasGrouping && grouping == "") {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidGroupFormat, value)
		}

		if !hasGrouping {
			grouping = quickbase.GroupingEqualValues
		}

		items = append(items, quickbase.GroupByItem{FieldID: fieldID, Grouping: grouping})
	}

	return items, nil
}

func parseFieldID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parsing field id: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("parsing field id: %w", constants.ErrInvalidFieldFormat)
	}

	return id, nil
}
