package quickbase

import (
	"maps"
	"strconv"
)

// CommandBuilder assembles insert, update and delete requests for one table.
type CommandBuilder struct {
	tableID        string
	deleteCriteria string
	records        []Record
	fieldsToReturn []int
}

// NewCommandBuilder creates an empty command builder.
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{}
}

// ForTable sets the target table id.
func (b *CommandBuilder) ForTable(tableID string) *CommandBuilder {
	b.tableID = tableID

	return b
}

// ReturnFields sets the fields echoed back by an insert or update.
// Duplicate ids are dropped.
func (b *CommandBuilder) ReturnFields(fieldIDs ...int) *CommandBuilder {
	seen := make(map[int]struct{}, len(fieldIDs))
	b.fieldsToReturn = make([]int, 0, len(fieldIDs))

	for _, id := range fieldIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		b.fieldsToReturn = append(b.fieldsToReturn, id)
	}

	return b
}

// AddNewRecord appends a record populated by configure.
func (b *CommandBuilder) AddNewRecord(configure func(*RecordBuilder)) *CommandBuilder {
	record := NewRecordBuilder()
	if configure != nil {
		configure(record)
	}

	b.records = append(b.records, record.Build())

	return b
}

// UpdateRecord appends a record populated by configure and keyed by recordID.
// The key field is written after configure runs, so it always wins.
func (b *CommandBuilder) UpdateRecord(recordID int, configure func(*RecordBuilder)) *CommandBuilder {
	record := NewRecordBuilder()
	if configure != nil {
		configure(record)
	}

	record.AddField(RecordIDFieldID, String(strconv.Itoa(recordID)))
	b.records = append(b.records, record.Build())

	return b
}

// WithDeletionCriteria sets the filter selecting records to delete.
func (b *CommandBuilder) WithDeletionCriteria(expr string) *CommandBuilder {
	b.deleteCriteria = expr

	return b
}

// BuildInsertUpdateCommand snapshots the table, records and return fields.
func (b *CommandBuilder) BuildInsertUpdateCommand() MutationRequest {
	data := make([]Record, 0, len(b.records))
	for _, record := range b.records {
		data = append(data, maps.Clone(record))
	}

	return MutationRequest{
		To:             b.tableID,
		Data:           data,
		FieldsToReturn: cloneSlice(b.fieldsToReturn),
	}
}

// BuildDeleteCommand snapshots the table and deletion filter.
func (b *CommandBuilder) BuildDeleteCommand() DeleteRequest {
	return DeleteRequest{
		From:  b.tableID,
		Where: b.deleteCriteria,
	}
}

// RecordBuilder accumulates the fields of a single record.
type RecordBuilder struct {
	fields Record
}

// NewRecordBuilder creates an empty record builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{fields: make(Record)}
}

// AddField sets fieldID to value. A repeated fieldID overwrites the earlier value.
func (b *RecordBuilder) AddField(fieldID int, value FieldValue) *RecordBuilder {
	b.fields[FieldKey(fieldID)] = value

	return b
}

// AddFields sets several fields at once.
func (b *RecordBuilder) AddFields(fields map[int]FieldValue) *RecordBuilder {
	for fieldID, value := range fields {
		b.AddField(fieldID, value)
	}

	return b
}

// Build returns a copy of the accumulated fields.
func (b *RecordBuilder) Build() Record {
	return maps.Clone(b.fields)
}
