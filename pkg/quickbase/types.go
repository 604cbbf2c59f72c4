package quickbase

import (
	"strconv"
)

// RecordIDFieldID is the built-in key field ("Record ID#") of every table.
const RecordIDFieldID = 3

// SortOrder is the direction of a sort clause.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// GroupingEqualValues groups records whose field values are equal.
const GroupingEqualValues = "equal-values"

// FieldKey returns the map key used for fieldID inside a Record.
func FieldKey(fieldID int) string {
	return strconv.Itoa(fieldID)
}

// Record is one row keyed by the string form of the field id.
type Record map[string]FieldValue

// Field looks up a value by numeric field id.
func (r Record) Field(fieldID int) (FieldValue, bool) {
	value, ok := r[FieldKey(fieldID)]

	return value, ok
}

// SortByItem is one sort clause of a query.
type SortByItem struct {
	FieldID int       `json:"fieldId" yaml:"fieldId"`
	Order   SortOrder `json:"order"   yaml:"order"`
}

// GroupByItem is one grouping clause of a query.
type GroupByItem struct {
	FieldID  int    `json:"fieldId"  yaml:"fieldId"`
	Grouping string `json:"grouping" yaml:"grouping"`
}

// QueryOptions controls paging and time comparison of a query.
type QueryOptions struct {
	Skip                    int  `json:"skip"                    yaml:"skip"`
	Top                     int  `json:"top"                     yaml:"top"`
	CompareWithAppLocalTime bool `json:"compareWithAppLocalTime" yaml:"compareWithAppLocalTime"`
}

// QueryRequest is the body of POST /v1/records/query.
type QueryRequest struct {
	From    string        `json:"from"              yaml:"from"`
	Select  []int         `json:"select,omitempty"  yaml:"select,omitempty"`
	Where   string        `json:"where,omitempty"   yaml:"where,omitempty"`
	SortBy  []SortByItem  `json:"sortBy,omitempty"  yaml:"sortBy,omitempty"`
	GroupBy []GroupByItem `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	Options *QueryOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// MutationRequest is the body of POST /v1/records (insert or update).
type MutationRequest struct {
	To             string   `json:"to"                       yaml:"to"`
	Data           []Record `json:"data"                     yaml:"data"`
	FieldsToReturn []int    `json:"fieldsToReturn,omitempty" yaml:"fieldsToReturn,omitempty"`
}

// DeleteRequest is the body of DELETE /v1/records.
type DeleteRequest struct {
	From  string `json:"from"  yaml:"from"`
	Where string `json:"where" yaml:"where"`
}

// FieldDescriptor describes a column returned by a query.
type FieldDescriptor struct {
	ID    int    `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type"  yaml:"type"`
}

// Metadata is the response envelope. Query responses fill the counters and
// skip; mutation responses fill the record id lists.
type Metadata struct {
	TotalRecords int `json:"totalRecords" yaml:"totalRecords"`
	NumRecords   int `json:"numRecords"   yaml:"numRecords"`
	NumFields    int `json:"numFields"    yaml:"numFields"`
	Skip         int `json:"skip"         yaml:"skip"`

	CreatedRecordIDs            []int               `json:"createdRecordIds,omitempty"            yaml:"createdRecordIds,omitempty"`
	UpdatedRecordIDs            []int               `json:"updatedRecordIds,omitempty"            yaml:"updatedRecordIds,omitempty"`
	UnchangedRecordIDs          []int               `json:"unchangedRecordIds,omitempty"          yaml:"unchangedRecordIds,omitempty"`
	LineErrors                  map[string][]string `json:"lineErrors,omitempty"                  yaml:"lineErrors,omitempty"`
	TotalNumberRecordsProcessed int                 `json:"totalNumberRecordsProcessed,omitempty" yaml:"totalNumberRecordsProcessed,omitempty"`
}

// QueryResponse is the success body of a query.
type QueryResponse struct {
	Data     []Record          `json:"data"     yaml:"data"`
	Fields   []FieldDescriptor `json:"fields"   yaml:"fields"`
	Metadata Metadata          `json:"metadata" yaml:"metadata"`
}

// Field returns the descriptor for fieldID.
func (r *QueryResponse) Field(fieldID int) (FieldDescriptor, bool) {
	for _, field := range r.Fields {
		if field.ID == fieldID {
			return field, true
		}
	}

	return FieldDescriptor{}, false
}

// MutationResponse is the success body of an insert, update or delete.
type MutationResponse struct {
	Data     []Record `json:"data,omitempty"     yaml:"data,omitempty"`
	Metadata Metadata `json:"metadata"           yaml:"metadata"`
	// NumberDeleted is only set by DELETE /v1/records.
	NumberDeleted int `json:"numberDeleted,omitempty" yaml:"numberDeleted,omitempty"`
}

// ErrorResponse is the body Quickbase sends with 4xx and 5xx statuses.
type ErrorResponse struct {
	Message     string `json:"message"     yaml:"message"`
	Description string `json:"description" yaml:"description"`
}
