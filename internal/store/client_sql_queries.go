// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const recordColumns = `collection, id, fields, status, changed, version, created_at, updated_at`

const (
	insertRecord = `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, 'created', ?, 1, ?, ?);`

	getRecord = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE collection = ? AND id = ?;`

	getActiveRecords = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE collection = ? AND status <> 'deleted'
		ORDER BY created_at, id;`

	getPendingRecords = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE collection = ? AND status <> 'synced'
		ORDER BY created_at, id;`

	updateRecord = `
		UPDATE records SET
			fields     = ?,
			status     = ?,
			changed    = ?,
			version    = version + 1,
			updated_at = ?
		WHERE collection = ? AND id = ?;`

	markRecordDeleted = `
		UPDATE records SET
			status     = 'deleted',
			version    = version + 1,
			updated_at = ?
		WHERE collection = ? AND id = ?;`

	markRecordSynced = `
		UPDATE records SET
			status  = 'synced',
			changed = '[]'
		WHERE collection = ? AND id = ? AND version = ?;`

	destroyPushedRecord = `
		DELETE FROM records
		WHERE collection = ? AND id = ? AND version = ?;`

	getRecordStatus = `
		SELECT status
		FROM records
		WHERE collection = ? AND id = ?;`

	destroyRecord = `
		DELETE FROM records
		WHERE collection = ? AND id = ?;`

	upsertSyncedRecord = `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, 'synced', '[]', 1, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			fields     = excluded.fields,
			status     = 'synced',
			changed    = '[]',
			version    = records.version + 1,
			updated_at = excluded.updated_at;`

	getSyncStates = `
		SELECT collection, state
		FROM sync_state;`

	upsertSyncState = `
		INSERT INTO sync_state (collection, state)
		VALUES (?, ?)
		ON CONFLICT (collection) DO UPDATE SET state = excluded.state;`
)
