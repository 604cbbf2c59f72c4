package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		table     string
		selectIDs []int
		where     string
		sortSpecs []string
		groupBy   []string
		skip      int
		top       int
		localTime bool
	)

	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query records",
		Long: `Query records of a table.

Examples:
  qb query --table bck7gp3q2 --select 3,6,7 --where "{6.CT.'Andre'}"
  qb query --table bck7gp3q2 --sort 7:DESC --top 10 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return constants.ErrTableRequired
			}

			sortBy, err := parseSort(sortSpecs)
			if err != nil {
				return err
			}

			grouping, err := parseGroupBy(groupBy)
			if err != nil {
				return err
			}

			builder := quickbase.NewQueryBuilder().From(table).Where(where)
			if len(selectIDs) > 0 {
				builder.Select(selectIDs...)
			}

			for _, item := range sortBy {
				builder.SortBy(item.FieldID, item.Order)
			}

			for _, item := range grouping {
				builder.GroupBy(item.FieldID, item.Grouping)
			}

			if cmd.Flags().Changed("skip") {
				builder.Skip(skip)
			}

			if cmd.Flags().Changed("top") {
				builder.Top(top)
			}

			if localTime {
				builder.CompareWithAppLocalTime(true)
			}

			client, err := newClient(cmd, loadConfig())
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, constants.DefaultHTTPTimeout)
			defer cancel()

			result, err := client.QueryRecords(ctx, builder.Build())
			if err != nil {
				return fmt.Errorf("failed to query records: %w", err)
			}

			if result.IsNotFound() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No records found")

				return nil
			}

			if result.IsFailure() {
				return fmt.Errorf("query failed: %w", result.Error())
			}

			return renderQueryResponse(cmd.OutOrStdout(), result.MustValue(), viper.GetString("output"))
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table id (required)")
	cmd.Flags().IntSliceVar(&selectIDs, "select", nil, "field ids to return")
	cmd.Flags().StringVar(&where, "where", "", "filter, e.g. {6.EX.'value'}")
	cmd.Flags().StringSliceVar(&sortSpecs, "sort", nil, "sort as <fieldId>[:ASC|DESC], repeatable")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "group as <fieldId>[:<grouping>], repeatable")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of records to skip")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of records to return")
	cmd.Flags().BoolVar(&localTime, "app-local-time", false, "compare dates in the app's time zone")

	return cmd
}

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var (
		table        string
		fields       []string
		returnFields []int
	)

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a record",
		Long: `Insert one record into a table.

Values are typed from the literal: numbers and true/false are sent as such,
"quoted" values are always text, and an empty value clears the field.

Example:
  qb insert --table bck7gp3q2 --field "6=Andre Harris" --field 7=10 --return 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return constants.ErrTableRequired
			}

			if len(fields) == 0 {
				return constants.ErrFieldRequired
			}

			values, err := parseFieldAssignments(fields)
			if err != nil {
				return err
			}

			request := quickbase.NewCommandBuilder().
				ForTable(table).
				ReturnFields(returnFields...).
				AddNewRecord(func(r *quickbase.RecordBuilder) { r.AddFields(values) }).
				BuildInsertUpdateCommand()

			return runMutation(cmd, "insert", func(client quickbase.Client) (quickbase.Result[quickbase.MutationResponse], error) {
				ctx, cancel := commandContext(cmd, constants.DefaultHTTPTimeout)
				defer cancel()

				return client.InsertRecords(ctx, request)
			})
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table id (required)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field value as <fieldId>=<value>, repeatable")
	cmd.Flags().IntSliceVar(&returnFields, "return", nil, "field ids to return from the new record")

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		table        string
		recordID     int
		fields       []string
		returnFields []int
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a record",
		Long: `Update fields of one record, identified by its Record ID#.

Example:
  qb update --table bck7gp3q2 --record-id 17 --field 7=11`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return constants.ErrTableRequired
			}

			if recordID <= 0 {
				return constants.ErrRecordIDRequired
			}

			if len(fields) == 0 {
				return constants.ErrFieldRequired
			}

			values, err := parseFieldAssignments(fields)
			if err != nil {
				return err
			}

			request := quickbase.NewCommandBuilder().
				ForTable(table).
				ReturnFields(returnFields...).
				UpdateRecord(recordID, func(r *quickbase.RecordBuilder) { r.AddFields(values) }).
				BuildInsertUpdateCommand()

			return runMutation(cmd, "update", func(client quickbase.Client) (quickbase.Result[quickbase.MutationResponse], error) {
				ctx, cancel := commandContext(cmd, constants.DefaultHTTPTimeout)
				defer cancel()

				return client.UpdateRecords(ctx, request)
			})
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table id (required)")
	cmd.Flags().IntVar(&recordID, "record-id", 0, "Record ID# of the record to update (required)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field value as <fieldId>=<value>, repeatable")
	cmd.Flags().IntSliceVar(&returnFields, "return", nil, "field ids to return from the updated record")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var (
		table string
		where string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete records",
		Long: `Delete every record of a table that matches a filter.

Example:
  qb delete --table bck7gp3q2 --where "{6.EX.'Andre Harris'}" --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return constants.ErrTableRequired
			}

			if where == "" {
				return constants.ErrWhereRequired
			}

			if !force {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Would delete records of %s matching %s. Use --force to confirm.\n", table, where)

				return nil
			}

			request := quickbase.NewCommandBuilder().ForTable(table).WithDeletionCriteria(where).BuildDeleteCommand()

			return runMutation(cmd, "delete", func(client quickbase.Client) (quickbase.Result[quickbase.MutationResponse], error) {
				ctx, cancel := commandContext(cmd, constants.DefaultHTTPTimeout)
				defer cancel()

				return client.DeleteRecords(ctx, request)
			})
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table id (required)")
	cmd.Flags().StringVar(&where, "where", "", "filter selecting the records to delete (required)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without the dry-run notice")

	return cmd
}

func runMutation(
	cmd *cobra.Command,
	operation string,
	send func(quickbase.Client) (quickbase.Result[quickbase.MutationResponse], error),
) error {
	client, err := newClient(cmd, loadConfig())
	if err != nil {
		return err
	}

	result, err := send(client)
	if err != nil {
		return fmt.Errorf("failed to %s records: %w", operation, err)
	}

	if result.IsFailure() {
		return fmt.Errorf("%s failed: %w", operation, result.Error())
	}

	return renderMutationResponse(cmd.OutOrStdout(), result.MustValue(), viper.GetString("output"))
}
