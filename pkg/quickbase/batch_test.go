package quickbase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

var errTransport = errors.New("connection refused")

// MockRecordsClient implements quickbase.RecordsClient for testing.
type MockRecordsClient struct {
	mock.Mock
}

func (m *MockRecordsClient) QueryRecords(ctx context.Context, request quickbase.QueryRequest) (quickbase.Result[quickbase.QueryResponse], error) {
	args := m.Called(ctx, request)

	return args.Get(0).(quickbase.Result[quickbase.QueryResponse]), args.Error(1)
}

func (m *MockRecordsClient) InsertRecords(ctx context.Context, request quickbase.MutationRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	args := m.Called(ctx, request)

	return args.Get(0).(quickbase.Result[quickbase.MutationResponse]), args.Error(1)
}

func (m *MockRecordsClient) UpdateRecords(ctx context.Context, request quickbase.MutationRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	args := m.Called(ctx, request)

	return args.Get(0).(quickbase.Result[quickbase.MutationResponse]), args.Error(1)
}

func (m *MockRecordsClient) DeleteRecords(ctx context.Context, request quickbase.DeleteRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	args := m.Called(ctx, request)

	return args.Get(0).(quickbase.Result[quickbase.MutationResponse]), args.Error(1)
}

//nolint:funlen
func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &MockRecordsClient{}

	query := quickbase.NewQueryBuilder().From("t1").Select(6).Build()
	insert := quickbase.NewCommandBuilder().ForTable("t1").AddNewRecord(func(r *quickbase.RecordBuilder) {
		r.AddField(6, quickbase.String("a"))
	}).BuildInsertUpdateCommand()
	update := quickbase.NewCommandBuilder().ForTable("t1").UpdateRecord(1, nil).BuildInsertUpdateCommand()
	remove := quickbase.NewCommandBuilder().ForTable("t1").WithDeletionCriteria("{3.EX.1}").BuildDeleteCommand()

	client.On("QueryRecords", ctx, query).
		Return(quickbase.Success(quickbase.QueryResponse{Data: []quickbase.Record{{}}}), nil)
	client.On("InsertRecords", ctx, insert).
		Return(quickbase.Success(quickbase.MutationResponse{}), nil)
	client.On("UpdateRecords", ctx, update).
		Return(quickbase.Failure[quickbase.MutationResponse](quickbase.NewClientError("400", "Bad request", "")), nil)
	client.On("DeleteRecords", ctx, remove).
		Return(quickbase.Result[quickbase.MutationResponse]{}, errTransport)

	var callbacks atomic.Int32

	callback := func(*quickbase.BatchResult) { callbacks.Add(1) }

	executor := quickbase.NewBatchExecutor(client, 2)
	results := executor.Execute(ctx, []quickbase.BatchOperation{
		{ID: "query", Type: quickbase.OperationQuery, Data: query, Callback: callback},
		{ID: "insert", Type: quickbase.OperationInsert, Data: insert, Callback: callback},
		{ID: "update", Type: quickbase.OperationUpdate, Data: update, Callback: callback},
		{ID: "delete", Type: quickbase.OperationDelete, Data: remove, Callback: callback},
	})

	require.Len(t, results, 4)
	assert.Equal(t, int32(4), callbacks.Load())

	assert.Equal(t, "query", results[0].ID)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Status.IsSuccess())
	assert.IsType(t, quickbase.QueryResponse{}, results[0].Data)

	assert.Equal(t, "insert", results[1].ID)
	assert.True(t, results[1].Status.IsSuccess())

	assert.Equal(t, "update", results[2].ID)
	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Status.IsClientError())
	assert.Nil(t, results[2].Data)

	assert.Equal(t, "delete", results[3].ID)
	require.ErrorIs(t, results[3].Err, errTransport)

	client.AssertExpectations(t)
}

func TestBatchExecutor_InvalidOperations(t *testing.T) {
	t.Parallel()

	client := &MockRecordsClient{}
	executor := quickbase.NewBatchExecutor(client, 0)

	results := executor.Execute(context.Background(), []quickbase.BatchOperation{
		{ID: "bad-data", Type: quickbase.OperationQuery, Data: "not a request"},
		{ID: "bad-type", Type: quickbase.OperationType("merge")},
		{ID: "delete-with-mutation", Type: quickbase.OperationDelete, Data: quickbase.MutationRequest{}},
	})

	require.Len(t, results, 3)
	require.ErrorIs(t, results[0].Err, quickbase.ErrInvalidOperationData)
	require.ErrorIs(t, results[1].Err, quickbase.ErrUnsupportedOperationType)
	require.ErrorIs(t, results[2].Err, quickbase.ErrInvalidOperationData)

	client.AssertNotCalled(t, "QueryRecords", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "DeleteRecords", mock.Anything, mock.Anything)
}

// slowClient records the highest number of concurrent calls.
type slowClient struct {
	MockRecordsClient

	mu       sync.Mutex
	inFlight int
	peak     int
}

func (s *slowClient) QueryRecords(_ context.Context, request quickbase.QueryRequest) (quickbase.Result[quickbase.QueryResponse], error) {
	s.mu.Lock()
	s.inFlight++
	s.peak = max(s.peak, s.inFlight)
	s.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	return quickbase.Success(quickbase.QueryResponse{Data: []quickbase.Record{{"3": quickbase.String(request.From)}}}), nil
}

func TestRunQueries_ConcurrencyAndOrder(t *testing.T) {
	t.Parallel()

	client := &slowClient{}
	requests := []quickbase.QueryRequest{
		{From: "a"}, {From: "b"}, {From: "c"}, {From: "d"}, {From: "e"},
	}

	results := quickbase.RunQueries(context.Background(), client, requests, 2)

	require.Len(t, results, len(requests))

	for i, result := range results {
		assert.Equal(t, requests[i].From, result.ID)
		require.NoError(t, result.Err)

		response, ok := result.Data.(quickbase.QueryResponse)
		require.True(t, ok)
		assert.Equal(t, requests[i].From, response.Data[0]["3"].String())
	}

	assert.LessOrEqual(t, client.peak, 2)
}

func TestBatchExecutor_GeneratesMissingIDs(t *testing.T) {
	t.Parallel()

	client := &slowClient{}
	results := quickbase.NewBatchExecutor(client, 2).Execute(context.Background(), []quickbase.BatchOperation{
		{Type: quickbase.OperationQuery, Data: quickbase.QueryRequest{From: "a"}},
		{Type: quickbase.OperationQuery, Data: quickbase.QueryRequest{From: "b"}},
		{ID: "named", Type: quickbase.OperationQuery, Data: quickbase.QueryRequest{From: "c"}},
	})

	require.Len(t, results, 3)

	_, err := uuid.Parse(results[0].ID)
	require.NoError(t, err)
	_, err = uuid.Parse(results[1].ID)
	require.NoError(t, err)
	assert.NotEqual(t, results[0].ID, results[1].ID)
	assert.Equal(t, "named", results[2].ID)
}

func TestBatchExecutor_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("wait failure is reported per operation", func(t *testing.T) {
		t.Parallel()

		client := &MockRecordsClient{}
		// A zero burst can never admit a request.
		limiter := rate.NewLimiter(rate.Every(time.Hour), 0)

		results := quickbase.NewBatchExecutor(client, 1).
			WithRateLimit(limiter).
			Execute(context.Background(), []quickbase.BatchOperation{
				{ID: "q", Type: quickbase.OperationQuery, Data: quickbase.QueryRequest{From: "a"}},
			})

		require.Len(t, results, 1)
		require.Error(t, results[0].Err)
		assert.Contains(t, results[0].Err.Error(), "rate limit wait")
		client.AssertNotCalled(t, "QueryRecords", mock.Anything, mock.Anything)
	})

	t.Run("unlimited limiter passes through", func(t *testing.T) {
		t.Parallel()

		client := &slowClient{}
		results := quickbase.NewBatchExecutor(client, 2).
			WithRateLimit(rate.NewLimiter(rate.Inf, 0)).
			Execute(context.Background(), []quickbase.BatchOperation{
				{ID: "q", Type: quickbase.OperationQuery, Data: quickbase.QueryRequest{From: "a"}},
			})

		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.True(t, results[0].Status.IsSuccess())
	})
}

func TestNewUserTokenLimiter(t *testing.T) {
	t.Parallel()

	limiter := quickbase.NewUserTokenLimiter()
	assert.Equal(t, 10, limiter.Burst())
	assert.InDelta(t, 10.0, float64(limiter.Limit()), 0.001)
}
