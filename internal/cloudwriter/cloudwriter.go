// Package cloudwriter streams event archive files to cloud object storage.
package cloudwriter

// CloudWriter accumulates one object's contents; Close uploads it.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
