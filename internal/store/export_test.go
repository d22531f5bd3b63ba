package store

// MarkMigrated skips the schema migration, for stub databases that cannot run goose.
func (s *SQLiteStore) MarkMigrated() {
	s.migrated = true
}
