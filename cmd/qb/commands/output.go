package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// renderStructured writes v as JSON or YAML. It reports false for any other format.
func renderStructured(w io.Writer, v interface{}, output string) (bool, error) {
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(v)
	case constants.FormatYAML:
		return true, yaml.NewEncoder(w).Encode(v)
	case constants.FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, output)
	}
}

func renderQueryResponse(w io.Writer, response quickbase.QueryResponse, output string) error {
	done, err := renderStructured(w, response, output)
	if done {
		return err
	}

	columns := recordColumns(response.Fields, response.Data)

	header := make([]any, 0, len(columns))
	for _, column := range columns {
		header = append(header, column.header)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	for _, record := range response.Data {
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			value, _ := record.Field(column.id)
			row = append(row, truncate(value.String()))
		}

		_ = table.Append(row)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, _ = fmt.Fprintf(w, "%d of %d records (skip %d)\n",
		response.Metadata.NumRecords, response.Metadata.TotalRecords, response.Metadata.Skip)

	return nil
}

func renderMutationResponse(w io.Writer, response quickbase.MutationResponse, output string) error {
	done, err := renderStructured(w, response, output)
	if done {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	metadata := response.Metadata
	_ = table.Append([]string{"Created", joinIDs(metadata.CreatedRecordIDs)})
	_ = table.Append([]string{"Updated", joinIDs(metadata.UpdatedRecordIDs)})
	_ = table.Append([]string{"Unchanged", joinIDs(metadata.UnchangedRecordIDs)})
	_ = table.Append([]string{"Processed", strconv.Itoa(metadata.TotalNumberRecordsProcessed)})

	if response.NumberDeleted > 0 {
		_ = table.Append([]string{"Deleted", strconv.Itoa(response.NumberDeleted)})
	}

	for _, line := range sortedKeys(metadata.LineErrors) {
		_ = table.Append([]string{"Line " + line + " errors", strings.Join(metadata.LineErrors[line], "; ")})
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if len(response.Data) > 0 {
		return renderQueryResponse(w, quickbase.QueryResponse{
			Data:     response.Data,
			Metadata: quickbase.Metadata{NumRecords: len(response.Data), TotalRecords: len(response.Data)},
		}, constants.FormatTable)
	}

	return nil
}

type column struct {
	id     int
	header string
}

// recordColumns uses the field descriptors when present and otherwise the
// field ids found in the records, in ascending order.
func recordColumns(fields []quickbase.FieldDescriptor, records []quickbase.Record) []column {
	if len(fields) > 0 {
		columns := make([]column, 0, len(fields))
		for _, field := range fields {
			columns = append(columns, column{id: field.ID, header: fmt.Sprintf("%s (%d)", field.Label, field.ID)})
		}

		return columns
	}

	seen := make(map[int]struct{})

	for _, record := range records {
		for key := range record {
			id, err := strconv.Atoi(key)
			if err == nil {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	columns := make([]column, 0, len(ids))
	for _, id := range ids {
		columns = append(columns, column{id: id, header: strconv.Itoa(id)})
	}

	return columns
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return constants.NotAvailable
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func truncate(s string) string {
	if len(s) <= constants.StringTruncationLength {
		return s
	}

	return s[:constants.StringTruncationLength-3] + "..."
}
