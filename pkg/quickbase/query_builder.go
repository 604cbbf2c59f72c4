package quickbase

// QueryBuilder assembles a QueryRequest. It performs no validation; the
// service rejects malformed queries.
type QueryBuilder struct {
	from    string
	sel     []int
	where   string
	sortBy  []SortByItem
	groupBy []GroupByItem
	options *QueryOptions
}

// NewQueryBuilder creates an empty query builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// From sets the table id.
func (b *QueryBuilder) From(tableID string) *QueryBuilder {
	b.from = tableID

	return b
}

// Select replaces the list of returned field ids.
func (b *QueryBuilder) Select(fieldIDs ...int) *QueryBuilder {
	b.sel = append([]int{}, fieldIDs...)

	return b
}

// Where sets the filter expression, e.g. "{6.EX.'hello'}".
func (b *QueryBuilder) Where(expr string) *QueryBuilder {
	b.where = expr

	return b
}

// SortBy appends a sort clause.
func (b *QueryBuilder) SortBy(fieldID int, order SortOrder) *QueryBuilder {
	b.sortBy = append(b.sortBy, SortByItem{FieldID: fieldID, Order: order})

	return b
}

// GroupBy appends a grouping clause.
func (b *QueryBuilder) GroupBy(fieldID int, grouping string) *QueryBuilder {
	b.groupBy = append(b.groupBy, GroupByItem{FieldID: fieldID, Grouping: grouping})

	return b
}

// Skip sets the number of records to skip.
func (b *QueryBuilder) Skip(n int) *QueryBuilder {
	b.ensureOptions().Skip = n

	return b
}

// Top sets the maximum number of records to return.
func (b *QueryBuilder) Top(n int) *QueryBuilder {
	b.ensureOptions().Top = n

	return b
}

// CompareWithAppLocalTime makes date filters use the app's time zone.
func (b *QueryBuilder) CompareWithAppLocalTime(enabled bool) *QueryBuilder {
	b.ensureOptions().CompareWithAppLocalTime = enabled

	return b
}

// Build snapshots the current state. Later builder calls do not affect the
// returned request.
func (b *QueryBuilder) Build() QueryRequest {
	request := QueryRequest{
		From:    b.from,
		Select:  cloneSlice(b.sel),
		Where:   b.where,
		SortBy:  cloneSlice(b.sortBy),
		GroupBy: cloneSlice(b.groupBy),
	}

	if b.options != nil {
		options := *b.options
		request.Options = &options
	}

	return request
}

func (b *QueryBuilder) ensureOptions() *QueryOptions {
	if b.options == nil {
		b.options = &QueryOptions{}
	}

	return b.options
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}

	return append(make([]T, 0, len(s)), s...)
}
