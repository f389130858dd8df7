package types

import "time"

// Bucket represents an S3 bucket
type Bucket struct {
	Name      string
	CreatedAt time.Time
}

// Object represents an S3 object summary
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}
