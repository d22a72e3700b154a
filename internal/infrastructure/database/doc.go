// Package database opens the SQLite database that stores the provisioning
// inventory and applies its schema migrations.
//
// The database is optional: grandstart only opens it when
// database.enabled is set. Migrations are plain SQL files named
// YYYYMMDD_HHMMSS_description.up.sql, embedded by the migrations package
// and applied in version order, each in its own transaction.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: "./data/grandstart.db", WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if _, err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// The file is created with 0600 permissions.
package database
