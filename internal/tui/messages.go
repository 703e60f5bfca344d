package tui

import (
	"github.com/MKhiriev/go-melon-sync/models"
)

// syncDoneMsg carries the outcome of one sync run.
type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

// watchClosedMsg is sent when the report channel of a watch is closed.
type watchClosedMsg struct{}
