package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// QueryRecords implements quickbase.RecordsClient.QueryRecords.
//
// A query that matches no records is a NotFound failure unless the client
// was built with AllowEmptyQueryResults.
func (c *Client) QueryRecords(ctx context.Context, request quickbase.QueryRequest) (quickbase.Result[quickbase.QueryResponse], error) {
	resp, err := c.httpClient.Post(ctx, constants.PathRecordsQuery, request)
	if err != nil {
		return quickbase.Result[quickbase.QueryResponse]{}, fmt.Errorf("querying records: %w", err)
	}

	return classify(c, "query", resp, func(body []byte) (quickbase.Result[quickbase.QueryResponse], error) {
		var response quickbase.QueryResponse

		err := json.Unmarshal(body, &response)
		if err != nil {
			return quickbase.Result[quickbase.QueryResponse]{}, fmt.Errorf("parsing query response: %w", err)
		}

		if len(response.Data) == 0 && !c.allowEmptyQueryResults {
			return quickbase.Failure[quickbase.QueryResponse](quickbase.NewNotFoundError(
				constants.ErrorCodeRecordsNotFound,
				"No records matched the query",
				"table "+request.From,
			)), nil
		}

		return quickbase.Success(response), nil
	})
}

// InsertRecords implements quickbase.RecordsClient.InsertRecords.
func (c *Client) InsertRecords(ctx context.Context, request quickbase.MutationRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	resp, err := c.httpClient.Post(ctx, constants.PathRecords, request)
	if err != nil {
		return quickbase.Result[quickbase.MutationResponse]{}, fmt.Errorf("inserting records: %w", err)
	}

	return classify(c, "insert", resp, decodeMutationResponse)
}

// UpdateRecords implements quickbase.RecordsClient.UpdateRecords.
// Quickbase upserts on the key field, so this shares the insert endpoint.
func (c *Client) UpdateRecords(ctx context.Context, request quickbase.MutationRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	resp, err := c.httpClient.Post(ctx, constants.PathRecords, request)
	if err != nil {
		return quickbase.Result[quickbase.MutationResponse]{}, fmt.Errorf("updating records: %w", err)
	}

	return classify(c, "update", resp, decodeMutationResponse)
}

// DeleteRecords implements quickbase.RecordsClient.DeleteRecords.
func (c *Client) DeleteRecords(ctx context.Context, request quickbase.DeleteRequest) (quickbase.Result[quickbase.MutationResponse], error) {
	resp, err := c.httpClient.Delete(ctx, constants.PathRecords, request)
	if err != nil {
		return quickbase.Result[quickbase.MutationResponse]{}, fmt.Errorf("deleting records: %w", err)
	}

	return classify(c, "delete", resp, decodeMutationResponse)
}

// decodeMutationResponse accepts an empty body or empty data as success:
// a mutation without fieldsToReturn echoes nothing back.
func decodeMutationResponse(body []byte) (quickbase.Result[quickbase.MutationResponse], error) {
	var response quickbase.MutationResponse

	if isEmptyBody(body) {
		return quickbase.Success(response), nil
	}

	err := json.Unmarshal(body, &response)
	if err != nil {
		return quickbase.Result[quickbase.MutationResponse]{}, fmt.Errorf("parsing mutation response: %w", err)
	}

	return quickbase.Success(response), nil
}
