package models

import (
	"ehr-bundle-service/internal/pkg/dto/responses"
	"time"
)

// ArchiveReceipt locates the encrypted copy of a bundle in object storage.
// Digest is taken over the plaintext payload.
type ArchiveReceipt struct {
	Bucket     string    `bson:"bucket" json:"bucket"`
	ObjectName string    `bson:"object_name" json:"object_name"`
	Digest     string    `bson:"digest" json:"digest"`
	Size       int64     `bson:"size" json:"size"`
	ArchivedAt time.Time `bson:"archived_at" json:"archived_at"`
}

func (r ArchiveReceipt) ConvertIntoResponse() responses.BundleArchive {
	return responses.BundleArchive{
		ObjectName: r.ObjectName,
		Digest:     r.Digest,
		Size:       r.Size,
	}
}
