package vault

// Vault file schema. Column names and types are part of the on-disk format
// shared with existing vaults.
const (
	createMetadataTable = `CREATE TABLE IF NOT EXISTS metadata (salt TEXT NOT NULL, verification TEXT NOT NULL)`
	createEntriesTable  = `CREATE TABLE IF NOT EXISTS entries (id TEXT PRIMARY KEY, url TEXT NOT NULL, username TEXT NOT NULL, password TEXT NOT NULL, iv TEXT NOT NULL, timestamp INTEGER NOT NULL)`
	createDeletedTable  = `CREATE TABLE IF NOT EXISTS deleted (id TEXT PRIMARY KEY, deleted_at INTEGER NOT NULL)`
)

var schema = []string{createMetadataTable, createEntriesTable, createDeletedTable}

const (
	metadataTableExists = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'metadata'`
	countMetadata       = `SELECT COUNT(*) FROM metadata`
	selectMetadata      = `SELECT salt, verification FROM metadata LIMIT 1`
	insertMetadata      = `INSERT INTO metadata (salt, verification) VALUES (?, ?)`

	selectLiveEntries = `SELECT e.id, e.url, e.username, e.password, e.iv, e.timestamp
FROM entries e
LEFT JOIN deleted d ON e.id = d.id
WHERE d.id IS NULL
ORDER BY e.timestamp, e.id`
	selectAllEntries = `SELECT id, url, username, password, iv, timestamp FROM entries ORDER BY id`
	upsertEntry      = `INSERT OR REPLACE INTO entries (id, url, username, password, iv, timestamp) VALUES (?, ?, ?, ?, ?, ?)`
	deleteEntry      = `DELETE FROM entries WHERE id = ?`
	deleteLiveEntry  = `DELETE FROM entries WHERE id = ? AND id NOT IN (SELECT id FROM deleted)`
	countLiveEntry   = `SELECT COUNT(*) FROM entries WHERE id = ? AND id NOT IN (SELECT id FROM deleted)`

	selectTombstones = `SELECT id, deleted_at FROM deleted ORDER BY id`
	upsertTombstone  = `INSERT OR REPLACE INTO deleted (id, deleted_at) VALUES (?, ?)`
	deleteTombstone  = `DELETE FROM deleted WHERE id = ?`
)
