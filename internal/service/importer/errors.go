package importer

import "errors"

var (
	// ErrIngestionDiscarded is returned to the caller of an ingestion whose
	// result arrived after the pipeline was backed out of the ingest step
	ErrIngestionDiscarded = errors.New("ingestion result discarded: the import moved on")

	// ErrIngestionPending is returned when an ingestion is requested while another is in flight
	ErrIngestionPending = errors.New("an ingestion is already in progress")

	// ErrCommitPending is returned when a commit is requested while another is in flight
	ErrCommitPending = errors.New("a commit is already in progress")
)

// User facing messages
const (
	msgEmailNotMapped    = "Please map the Email column to continue."
	msgNoValidRows       = "No rows with a valid email were found."
	msgInvalidSheetURL   = "Invalid Google Sheets URL. Please paste a full Google Sheets link."
	msgSheetInaccessible = "We can't access this sheet. Please update sharing settings or use CSV."
	msgInsufficientData  = "Need a header row and at least one data row"
)
