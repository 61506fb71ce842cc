package github

import (
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v82/github"

	"github.com/bkyoung/lgtm/internal/domain"
)

// mapRemoteError converts a go-github failure into a domain.RemoteError
// that carries the API's own message, so the user sees exactly what
// GitHub said rather than a paraphrase.
func mapRemoteError(op string, resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}

	remote := &domain.RemoteError{Op: op, Err: err}

	var errResp *gh.ErrorResponse
	var rateErr *gh.RateLimitError
	switch {
	case errors.As(err, &errResp):
		if errResp.Response != nil {
			remote.StatusCode = errResp.Response.StatusCode
		}
		remote.Message = formatErrorResponse(errResp)
	case errors.As(err, &rateErr):
		if rateErr.Response != nil {
			remote.StatusCode = rateErr.Response.StatusCode
		}
		remote.Message = rateErr.Message
	default:
		if resp != nil {
			remote.StatusCode = resp.StatusCode
		}
		remote.Message = err.Error()
	}

	return remote
}

// formatErrorResponse renders the API message plus any field-level
// validation errors, e.g. "Validation Failed: line: invalid".
func formatErrorResponse(errResp *gh.ErrorResponse) string {
	message := errResp.Message

	var details []string
	for _, e := range errResp.Errors {
		switch {
		case e.Message != "":
			details = append(details, e.Message)
		case e.Field != "":
			details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Code))
		}
	}
	if len(details) > 0 {
		if message == "" {
			return strings.Join(details, "; ")
		}
		return fmt.Sprintf("%s: %s", message, strings.Join(details, "; "))
	}

	return message
}

// isNotFound reports whether err is a GitHub 404 response.
func isNotFound(err error) bool {
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) &&
		errResp.Response != nil &&
		errResp.Response.StatusCode == 404
}
