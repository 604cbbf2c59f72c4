package client

import (
	"bytes"
	stdhttp "net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/internal/http"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

type statusClass int

const (
	statusSuccess statusClass = iota
	statusClientError
	statusServerError
)

// classifyStatus maps a status code to its outcome class. Anything below 400
// counts as success.
func classifyStatus(statusCode int) statusClass {
	switch {
	case statusCode >= constants.HTTPStatusServerErrorMin:
		return statusServerError
	case statusCode >= constants.HTTPStatusClientErrorMin:
		return statusClientError
	default:
		return statusSuccess
	}
}

// classify turns a raw response into a Result. onSuccess decodes the body of
// a successful response; a decode error is returned as-is and never becomes a
// classified failure.
func classify[T any](
	c *Client,
	operation string,
	resp *http.Response,
	onSuccess func(body []byte) (quickbase.Result[T], error),
) (quickbase.Result[T], error) {
	switch classifyStatus(resp.StatusCode) {
	case statusSuccess:
		result, err := onSuccess(resp.Body)
		if err != nil {
			return quickbase.Result[T]{}, err
		}

		if result.IsFailure() {
			c.logFailure(operation, resp.StatusCode, result.Error())
		}

		return result, nil
	case statusClientError:
		message, description := parseErrorBody(resp.StatusCode, resp.Body)
		qbErr := quickbase.NewClientError(strconv.Itoa(resp.StatusCode), message, description)
		c.logFailure(operation, resp.StatusCode, qbErr)

		return quickbase.Failure[T](qbErr), nil
	default:
		message, description := parseErrorBody(resp.StatusCode, resp.Body)
		qbErr := quickbase.NewServerError(strconv.Itoa(resp.StatusCode), message, description)
		c.logFailure(operation, resp.StatusCode, qbErr)

		return quickbase.Failure[T](qbErr), nil
	}
}

// parseErrorBody reads message and description from a JSON error body. A
// non-string description is kept as its raw JSON. A body without either
// field is passed through as the description under the status text.
func parseErrorBody(statusCode int, body []byte) (string, string) {
	if !gjson.ValidBytes(body) {
		return stdhttp.StatusText(statusCode), string(bytes.TrimSpace(body))
	}

	parsed := gjson.ParseBytes(body)
	message := parsed.Get("message").String()
	description := parsed.Get("description").String()

	if message == "" && description == "" {
		return stdhttp.StatusText(statusCode), string(bytes.TrimSpace(body))
	}

	if message == "" {
		message = stdhttp.StatusText(statusCode)
	}

	return message, description
}

func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
