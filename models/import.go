package models

// ImportResult is the backend's bulk-upload response: how many rows were
// created plus one error string per rejected row. Rows that succeeded are
// kept even when others fail; the errors list is the only record of the
// failures.
type ImportResult struct {
	Uploaded   int      `json:"uploaded"`
	Errors     []string `json:"errors"`
	ErrorCount int      `json:"errorCount"`
}
