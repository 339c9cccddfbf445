package products

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Emman-24/backendFlorist/pkg/db/models"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/storage"
	"gorm.io/gorm"
)

const imageFolderRoot = "products"

// AllowedImageTypes lists the content types accepted for gallery uploads.
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

func defaultAltText(title string) string {
	return title + " - Floristería Akasia - Pereira - Colombia"
}

func imageFolder(product *models.Product) string {
	parts := []string{imageFolderRoot}
	if product.Category != nil {
		parts = append(parts, product.Category.Route)
	}
	if product.SubCategory != nil {
		parts = append(parts, product.SubCategory.Route)
	}
	return path.Join(parts...)
}

func (s *service) validateImage(file storage.File) error {
	if file.Body == nil || file.Size <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "File is empty").
			WithDetails(map[string]string{"file": "File is empty"})
	}
	if file.Size > s.maxUploadBytes {
		msg := fmt.Sprintf("File size exceeds the %d MB limit", s.maxUploadBytes>>20)
		return pkgerrors.New(pkgerrors.CodeValidation, msg).
			WithDetails(map[string]string{"file": msg})
	}
	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	msg := "Only JPG, PNG and WEBP images are allowed"
	return pkgerrors.New(pkgerrors.CodeValidation, msg).
		WithDetails(map[string]string{"file": msg})
}

// UploadImage stores the file under products/{category}/{subcategory} and appends it
// to the gallery. A primary upload clears the flag on the other images.
func (s *service) UploadImage(ctx context.Context, id int64, upload ImageUpload) (*ImageDTO, error) {
	if err := s.validateImage(upload.File); err != nil {
		return nil, err
	}
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}

	stored, err := s.storage.Upload(ctx, upload.File, imageFolder(product))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image")
	}

	image := &models.ProductGallery{
		ProductID:    id,
		OriginalName: upload.File.OriginalName,
		StoredName:   stored.PublicID,
		URL:          stored.Original,
		ThumbnailURL: nonEmpty(stored.Thumbnail),
		MediumURL:    nonEmpty(stored.Medium),
		MimeType:     strings.ToLower(upload.File.ContentType),
		Size:         upload.File.Size,
		AltText:      defaultAltText(product.Title),
		IsPrimary:    upload.IsPrimary,
		Seasonal:     upload.Seasonal,
		Status:       true,
	}
	if alt := trimmedOrNil(upload.AltText); alt != nil {
		image.AltText = *alt
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		count, err := txRepo.CountChildren(ctx, &models.ProductGallery{}, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count product images")
		}
		image.Position = int(count)
		if image.IsPrimary {
			if err := txRepo.ClearPrimary(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear primary image")
			}
		}
		if err := txRepo.CreateChild(ctx, image); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product image")
		}
		return s.regenerateMetadata(ctx, tx, id)
	})
	if err != nil {
		s.deleteObject(ctx, stored.PublicID)
		return nil, err
	}

	dto := imageFromModel(image)
	return &dto, nil
}

// DeleteImage removes the gallery row first; the stored object is removed best effort.
func (s *service) DeleteImage(ctx context.Context, id, imageID int64) error {
	var image models.ProductGallery
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.FindChild(ctx, &image, id, imageID); err != nil {
			return s.childNotFound(err, "Image", imageID)
		}
		if err := txRepo.DeleteChild(ctx, &image); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product image")
		}
		return s.regenerateMetadata(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.deleteObject(ctx, image.StoredName)
	return nil
}

func (s *service) regenerateMetadata(ctx context.Context, tx *gorm.DB, id int64) error {
	product, err := s.repo.WithTx(tx).FindDetail(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	_, err = s.seo.Tx(tx).Generate(ctx, product)
	return err
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
