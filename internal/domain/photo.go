package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto stores metadata about a client progress photo.
// The actual file resides in S3; clients upload via presigned URLs.
type ProgressPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	TenantID    primitive.ObjectID `bson:"tenantId" json:"tenantId"` // Denormalized for scoping queries
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`     // The unique key in the S3 bucket - internal use
	FileName    string             `bson:"fileName" json:"fileName"` // Original filename provided by the client
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size,omitempty" json:"size,omitempty"`
	TakenAt     *time.Time         `bson:"takenAt,omitempty" json:"takenAt,omitempty"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
