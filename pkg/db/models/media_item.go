package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MediaItem is one version of an uploaded file. Versions form an append-only
// chain: every edit inserts a new row pointing at its predecessor through
// PreviousVersionID, and RootID groups the whole chain. Exactly one row per
// chain has IsCurrent set.
type MediaItem struct {
	ID                   uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID            uuid.UUID      `gorm:"column:wedding_id;type:uuid;not null;index"`
	FunctionID           *uuid.UUID     `gorm:"column:function_id;type:uuid"`
	UploadedBy           uuid.UUID      `gorm:"column:uploaded_by;type:uuid;not null"`
	FileName             string         `gorm:"column:file_name;type:text;not null"`
	FileURL              string         `gorm:"column:file_url;type:text;not null"`
	FileType             string         `gorm:"column:file_type;type:text;not null"`
	FileSize             int64          `gorm:"column:file_size;not null;default:0"`
	Caption              *string        `gorm:"column:caption;type:text"`
	RoleAccess           pq.StringArray `gorm:"column:role_access;type:text[]"`
	Watermark            bool           `gorm:"column:watermark;not null;default:false"`
	ScreenshotPrevention bool           `gorm:"column:screenshot_prevention;not null;default:false"`
	RootID               uuid.UUID      `gorm:"column:root_id;type:uuid;not null;index"`
	VersionNumber        int            `gorm:"column:version_number;not null;default:1"`
	PreviousVersionID    *uuid.UUID     `gorm:"column:previous_version_id;type:uuid"`
	IsCurrent            bool           `gorm:"column:is_current;not null;default:true"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (MediaItem) TableName() string {
	return "media_items"
}
