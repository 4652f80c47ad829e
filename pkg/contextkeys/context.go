package contextkeys

type contextKey string

// DBContextKey holds the *gorm.DB (pool or transaction) a request should use.
const DBContextKey = contextKey("db")

// ReadOnlyContextKey is set when the store was opened without write access.
const ReadOnlyContextKey = contextKey("read_only")
