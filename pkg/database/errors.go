package database

import "errors"

// ErrNotReady is returned by Ping before the startup probe succeeds,
// after shutdown begins, or when the pool cannot reach the server.
var ErrNotReady = errors.New("database not ready")
