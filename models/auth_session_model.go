package models

import "time"

// AuthSession is the persisted form of a login session cookie. The session
// middleware treats the value as an opaque blob; only the expiry is inspected
// here, so the cleanup job can prune stale rows.
type AuthSession struct {
	SID       string    `gorm:"size:64;primary_key"`
	Data      []byte    `gorm:"type:bytea"`
	ExpiresAt time.Time `gorm:"index"`
}
