// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
)

// RenderReport formats a sync report as a table with one row per
// collection. A non-nil err is shown below the table.
func RenderReport(report models.SyncReport, err error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(
		fmt.Sprintf("%-16s %8s %8s %8s %8s", "collection", "created", "updated", "deleted", "pulled"),
	))
	for _, c := range report.Collections {
		fmt.Fprintf(&b, "%-16s %8d %8d %8d %8d\n",
			fitText(c.Collection, 16), c.Created, c.Updated, c.Deleted, c.Pulled)
	}
	if len(report.Collections) == 0 {
		b.WriteString("no collections synced\n")
	}

	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "took %s", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	}

	out := reportBox.Render(strings.TrimRight(b.String(), "\n"))
	if err != nil {
		return out + "\n" + errorStyle.Render("sync failed: "+err.Error())
	}
	return out + "\n" + okStyle.Render("sync finished")
}

// RenderRecords formats local records of one collection, oldest first.
// Records waiting to be pushed are marked with their status.
func RenderRecords(collection string, records []models.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("%-36s %-8s %s", "id", "status", "fields")))
	for _, r := range records {
		status := string(r.Status)
		if r.Status != models.StatusSynced {
			status = pendingStyle.Render(fmt.Sprintf("%-8s", status))
		} else {
			status = fmt.Sprintf("%-8s", status)
		}
		fmt.Fprintf(&b, "%-36s %s %s\n", r.ID, status, fitText(formatFields(r.Fields), 80))
	}
	if len(records) == 0 {
		b.WriteString("no records\n")
	}

	return titleStyle.Render(collection) + "\n" + strings.TrimRight(b.String(), "\n")
}
