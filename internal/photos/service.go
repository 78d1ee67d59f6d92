package photos

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
)

// DefaultPhotoType labels uploads that arrive without a type.
const DefaultPhotoType = "general"

// Service exposes client photo operations. Files live under the configured
// root, rows in client_photos; the two are kept in sync by writing the file
// first and compensating with a file delete when the row insert fails.
type Service interface {
	UploadPhoto(ctx context.Context, customerID int64, input UploadPhotoInput) (*PhotoDTO, error)
	ListPhotos(ctx context.Context, customerID int64) ([]PhotoDTO, error)
	DeletePhoto(ctx context.Context, photoID int64) error
	ResolvePhotoPath(ctx context.Context, relPath string) (string, error)
}

// UploadPhotoInput holds the multipart upload payload.
type UploadPhotoInput struct {
	Filename    string
	Content     io.Reader
	PhotoType   *string
	Description *string
}

type customerLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	customers customerLoader
	cfg       config.PhotosConfig
	logg      *logger.Logger
}

// NewService constructs a photo service instance.
func NewService(repo *Repository, dbClient *db.Client, customers customerLoader, cfg config.PhotosConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("photo repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if cfg.Root == "" {
		return nil, fmt.Errorf("photo root required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dbClient: dbClient, customers: customers, cfg: cfg, logg: logg}, nil
}

// UploadPhoto stores the file under <root>/<customer_id>/<uuid>.<ext> and
// records it. The stored name is never derived from the client's filename;
// only the extension survives, and only from the allow-list.
func (s *service) UploadPhoto(ctx context.Context, customerID int64, input UploadPhotoInput) (*PhotoDTO, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if input.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo file is required")
	}

	ext, err := s.allowedExtension(input.Filename)
	if err != nil {
		return nil, err
	}

	photoType := DefaultPhotoType
	if trimmed := validate.OptionalString(input.PhotoType); trimmed != nil {
		photoType = *trimmed
	}

	relPath := filepath.ToSlash(filepath.Join(
		strconv.FormatInt(customerID, 10),
		uuid.NewString()+"."+ext,
	))
	absPath := filepath.Join(s.cfg.Root, filepath.FromSlash(relPath))

	if err := s.writeFile(absPath, input.Content); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fs: write photo")
	}

	photo := &models.ClientPhoto{
		CustomerID:  customerID,
		PhotoType:   photoType,
		ImagePath:   relPath,
		Description: validate.OptionalString(input.Description),
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreatePhoto(ctx, photo)
		return err
	}); err != nil {
		// the row never landed, so the file must go too
		if rmErr := os.Remove(absPath); rmErr != nil {
			err = multierr.Append(err, rmErr)
			s.logg.Error(ctx, "orphan photo file left after failed insert", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert photo")
	}

	created, err := s.repo.FindByID(ctx, photo.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload photo")
	}
	return NewPhotoDTO(created), nil
}

// ListPhotos returns a customer's photos, newest first.
func (s *service) ListPhotos(ctx context.Context, customerID int64) ([]PhotoDTO, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list photos")
	}
	return NewPhotoDTOs(rows), nil
}

// DeletePhoto removes the row, then the file. A file that is already gone
// counts as success; a file that refuses to go is reported as a partial
// failure since the record itself is deleted either way.
func (s *service) DeletePhoto(ctx context.Context, photoID int64) error {
	photo, err := s.repo.FindByID(ctx, photoID)
	if err != nil {
		if db.NotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load photo")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeletePhoto(ctx, photoID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete photo")
	}

	absPath := filepath.Join(s.cfg.Root, filepath.FromSlash(photo.ImagePath))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		s.logg.Error(ctx, "photo row deleted but file removal failed", err)
		return pkgerrors.Wrap(pkgerrors.CodePartial, err, "record deleted, file removal failed").
			WithDetails(map[string]string{"image_path": photo.ImagePath})
	}
	return nil
}

// ResolvePhotoPath maps a request path to an absolute file under the photo
// root. Anything that escapes the root resolves to "not found" with no
// filesystem detail, same as a file that simply is not there.
func (s *service) ResolvePhotoPath(_ context.Context, relPath string) (string, error) {
	notFound := pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")

	root, err := filepath.Abs(s.cfg.Root)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fs: resolve photo root")
	}

	candidate, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", notFound
	}

	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", notFound
	}

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", notFound
	}
	return candidate, nil
}

func (s *service) ensureCustomer(ctx context.Context, id int64) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if db.NotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load customer")
	}
	return nil
}

func (s *service) allowedExtension(filename string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo filename has no extension")
	}
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return ext, nil
		}
	}
	return "", pkgerrors.New(
		pkgerrors.CodeValidation,
		fmt.Sprintf("file type %q not allowed", ext),
	).WithDetails(map[string]any{"allowed": s.cfg.AllowedExtensions})
}

func (s *service) writeFile(absPath string, content io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(absPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, content); err != nil {
		closeErr := out.Close()
		rmErr := os.Remove(absPath)
		return multierr.Combine(err, closeErr, rmErr)
	}
	return out.Close()
}
