package quickbase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrInvalidOperationData     = errors.New("invalid data type for operation")
)

// DefaultBatchConcurrency is used when NewBatchExecutor gets a non-positive limit.
const DefaultBatchConcurrency = 3

// Quickbase allows 100 requests per 10 seconds for each user token.
const (
	userTokenRequestInterval = 100 * time.Millisecond
	userTokenBurst           = 10
)

// NewUserTokenLimiter returns a limiter that paces requests to the documented
// per-user-token API rate.
func NewUserTokenLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(userTokenRequestInterval), userTokenBurst)
}

// OperationType names a records operation inside a batch.
type OperationType string

// Batch operation types.
const (
	OperationQuery  OperationType = "query"
	OperationInsert OperationType = "insert"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// BatchOperation represents a single operation in a batch. Data must be a
// QueryRequest for queries, a MutationRequest for inserts and updates, and a
// DeleteRequest for deletes. An empty ID is replaced with a random UUID.
type BatchOperation struct {
	ID       string
	Type     OperationType
	Data     interface{}
	Callback func(result *BatchResult)
}

// BatchResult represents the outcome of one batch operation.
//
// Status is the classified outcome. Err is set only for faults that never
// reached classification (transport errors, undecodable bodies, bad Data).
type BatchResult struct {
	ID       string
	Status   Status
	Data     interface{}
	Err      error
	Duration time.Duration
}

// BatchExecutor runs independent record operations concurrently.
type BatchExecutor struct {
	client      RecordsClient
	concurrency int
	limiter     *rate.Limiter
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client RecordsClient, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
	}
}

// WithRateLimit makes every operation wait on limiter before it is sent.
// A wait that fails (cancelled context, burst too small) is reported in the
// operation's Err.
func (b *BatchExecutor) WithRateLimit(limiter *rate.Limiter) *BatchExecutor {
	b.limiter = limiter

	return b
}

// Execute runs operations with at most the configured number in flight.
// Results are returned in the order of operations.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	// Failures are reported per result, so no operation cancels its siblings.
	var group errgroup.Group

	group.SetLimit(b.concurrency)

	for index, operation := range operations {
		if operation.ID == "" {
			operation.ID = uuid.NewString()
		}

		group.Go(func() error {
			start := time.Now()
			result := b.run(ctx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// RunQueries issues independent queries concurrently and returns their
// results in input order.
func RunQueries(ctx context.Context, client RecordsClient, requests []QueryRequest, concurrency int) []BatchResult {
	operations := make([]BatchOperation, len(requests))
	for i, request := range requests {
		operations[i] = BatchOperation{ID: request.From, Type: OperationQuery, Data: request}
	}

	return NewBatchExecutor(client, concurrency).Execute(ctx, operations)
}

func (b *BatchExecutor) run(ctx context.Context, operation BatchOperation) *BatchResult {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return &BatchResult{ID: operation.ID, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	return b.executeOperation(ctx, operation)
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	switch operation.Type {
	case OperationQuery:
		request, ok := operation.Data.(QueryRequest)
		if !ok {
			result.Err = fmt.Errorf("%w %s: %T", ErrInvalidOperationData, operation.Type, operation.Data)

			return result
		}

		res, err := b.client.QueryRecords(ctx, request)
		fillBatchResult(result, res, err)
	case OperationInsert, OperationUpdate:
		request, ok := operation.Data.(MutationRequest)
		if !ok {
			result.Err = fmt.Errorf("%w %s: %T", ErrInvalidOperationData, operation.Type, operation.Data)

			return result
		}

		send := b.client.InsertRecords
		if operation.Type == OperationUpdate {
			send = b.client.UpdateRecords
		}

		res, err := send(ctx, request)
		fillBatchResult(result, res, err)
	case OperationDelete:
		request, ok := operation.Data.(DeleteRequest)
		if !ok {
			result.Err = fmt.Errorf("%w %s: %T", ErrInvalidOperationData, operation.Type, operation.Data)

			return result
		}

		res, err := b.client.DeleteRecords(ctx, request)
		fillBatchResult(result, res, err)
	default:
		result.Err = fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}

	return result
}

func fillBatchResult[T any](result *BatchResult, res Result[T], err error) {
	if err != nil {
		result.Err = err

		return
	}

	result.Status = res.Status
	if res.IsSuccess() {
		result.Data = res.MustValue()
	}
}
