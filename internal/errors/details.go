package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const reportablePrefix = "__json__:"

// DisplayMessage returns the first non-empty hint of err. Hints are collected
// post-order so the innermost cause wins.
func DisplayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// ReportableDetails merges every detail added with WithReportableDetails.
// On a key collision the outermost wrapper wins.
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if !strings.HasPrefix(payload, reportablePrefix) {
				continue
			}

			var jsonDetails map[string]any
			if err := json.Unmarshal([]byte(payload[len(reportablePrefix):]), &jsonDetails); err == nil {
				for k, v := range jsonDetails {
					if _, ok := details[k]; !ok {
						details[k] = v
					}
				}
			}
		}
	}

	return details
}

// Code returns the code of the first sentinel err is marked with, in the same
// precedence used for http statuses
func Code(err error) string {
	for _, e := range statusPrecedence {
		if errors.Is(err, e) {
			return e.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}
