package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the rendered report.
	OutputMode string

	// DatabaseBackend represents the database backend for caching
	// and run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	HTMLOut OutputMode = "html"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	HTMLOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
