package photos

import (
	"path"
	"time"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// URLPrefix is where the serve endpoint is mounted; image_url is derived
// from it so the desktop client never builds paths itself.
const URLPrefix = "/api/photos"

// PhotoDTO is the client photo payload returned to clients.
type PhotoDTO struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	PhotoType   string    `json:"photo_type"`
	ImagePath   string    `json:"image_path"`
	ImageURL    string    `json:"image_url"`
	Description *string   `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewPhotoDTO builds a DTO from the persisted model.
func NewPhotoDTO(photo *models.ClientPhoto) *PhotoDTO {
	return &PhotoDTO{
		ID:          photo.ID,
		CustomerID:  photo.CustomerID,
		PhotoType:   photo.PhotoType,
		ImagePath:   photo.ImagePath,
		ImageURL:    path.Join(URLPrefix, photo.ImagePath),
		Description: photo.Description,
		UploadedAt:  photo.UploadedAt,
	}
}

// NewPhotoDTOs maps a list of models.
func NewPhotoDTOs(rows []models.ClientPhoto) []PhotoDTO {
	dtos := make([]PhotoDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewPhotoDTO(&rows[i])
	}
	return dtos
}
