package quickbase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

func TestCommandBuilder_Insert(t *testing.T) {
	t.Parallel()

	request := quickbase.NewCommandBuilder().
		ForTable("bck7gp3q2").
		ReturnFields(6, 7, 8).
		AddNewRecord(func(r *quickbase.RecordBuilder) {
			r.AddField(6, quickbase.String("Andre Harris")).
				AddField(7, quickbase.Int(10)).
				AddField(8, quickbase.Bool(true))
		}).
		BuildInsertUpdateCommand()

	assert.Equal(t, "bck7gp3q2", request.To)
	assert.Equal(t, []int{6, 7, 8}, request.FieldsToReturn)
	require.Len(t, request.Data, 1)

	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"to": "bck7gp3q2",
		"data": [{"6": {"value": "Andre Harris"}, "7": {"value": 10}, "8": {"value": true}}],
		"fieldsToReturn": [6, 7, 8]
	}`, string(data))
}

func TestCommandBuilder_EmptyInsert(t *testing.T) {
	t.Parallel()

	request := quickbase.NewCommandBuilder().ForTable("t").BuildInsertUpdateCommand()

	assert.NotNil(t, request.Data)
	assert.Empty(t, request.Data)
	assert.Nil(t, request.FieldsToReturn)

	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"t","data":[]}`, string(data))
}

func TestCommandBuilder_UpdateRecordSetsKey(t *testing.T) {
	t.Parallel()

	request := quickbase.NewCommandBuilder().
		ForTable("t").
		UpdateRecord(17, func(r *quickbase.RecordBuilder) {
			r.AddField(quickbase.RecordIDFieldID, quickbase.String("999"))
			r.AddField(6, quickbase.String("updated"))
		}).
		BuildInsertUpdateCommand()

	require.Len(t, request.Data, 1)

	key, ok := request.Data[0].Field(quickbase.RecordIDFieldID)
	require.True(t, ok)
	assert.Equal(t, "17", key.String())

	value, ok := request.Data[0].Field(6)
	require.True(t, ok)
	assert.Equal(t, "updated", value.String())
}

func TestCommandBuilder_ReturnFieldsDeduplicates(t *testing.T) {
	t.Parallel()

	request := quickbase.NewCommandBuilder().ForTable("t").ReturnFields(3, 6, 3, 7, 6).BuildInsertUpdateCommand()

	assert.Equal(t, []int{3, 6, 7}, request.FieldsToReturn)
}

func TestCommandBuilder_Delete(t *testing.T) {
	t.Parallel()

	request := quickbase.NewCommandBuilder().
		ForTable("bck7gp3q2").
		WithDeletionCriteria("{6.EX.'Andre Harris'}").
		BuildDeleteCommand()

	assert.Equal(t, quickbase.DeleteRequest{From: "bck7gp3q2", Where: "{6.EX.'Andre Harris'}"}, request)

	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"bck7gp3q2","where":"{6.EX.'Andre Harris'}"}`, string(data))
}

func TestCommandBuilder_BuildSnapshots(t *testing.T) {
	t.Parallel()

	builder := quickbase.NewCommandBuilder().ForTable("t").AddNewRecord(func(r *quickbase.RecordBuilder) {
		r.AddField(6, quickbase.String("a"))
	})

	first := builder.BuildInsertUpdateCommand()
	first.Data[0][quickbase.FieldKey(6)] = quickbase.String("mutated")

	builder.AddNewRecord(nil)
	second := builder.BuildInsertUpdateCommand()

	assert.Len(t, first.Data, 1)
	require.Len(t, second.Data, 2)

	value, ok := second.Data[0].Field(6)
	require.True(t, ok)
	assert.Equal(t, "a", value.String())
	assert.Empty(t, second.Data[1])
}

func TestRecordBuilder_LastWriteWins(t *testing.T) {
	t.Parallel()

	record := quickbase.NewRecordBuilder().
		AddField(5, quickbase.String("a")).
		AddField(5, quickbase.String("b")).
		Build()

	require.Len(t, record, 1)

	value, ok := record.Field(5)
	require.True(t, ok)
	assert.Equal(t, "b", value.String())
}

func TestRecordBuilder_AddFields(t *testing.T) {
	t.Parallel()

	builder := quickbase.NewRecordBuilder().AddFields(map[int]quickbase.FieldValue{
		6: quickbase.String("x"),
		7: quickbase.Number(1.5),
	})

	record := builder.Build()
	builder.AddField(8, quickbase.Null())

	assert.Len(t, record, 2)
	assert.Len(t, builder.Build(), 3)
}
