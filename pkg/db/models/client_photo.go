package models

import "time"

// ClientPhoto binds a customer to an image file under the photo root.
// ImagePath is always relative to that root ("<customer_id>/<file>").
type ClientPhoto struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  int64     `gorm:"column:customer_id;not null"`
	PhotoType   string    `gorm:"column:photo_type"`
	ImagePath   string    `gorm:"column:image_path;not null"`
	Description *string   `gorm:"column:description"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}
