package controllers

import (
	"net/http"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/api/validators"
	"github.com/Emman-24/backendFlorist/internal/products"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

// ProductUploadImage accepts a multipart image for the product gallery.
func ProductUploadImage(svc products.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		form, err := validators.ReadImageForm(r, "file", maxBytes, products.AllowedImageTypes)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		result, err := svc.UploadImage(r.Context(), id, products.ImageUpload{
			File:      form.File,
			AltText:   form.AltText,
			IsPrimary: form.IsPrimary,
			Seasonal:  form.Seasonal,
		})
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Image uploaded successfully")
	}
}

func ProductDeleteImage(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, imageID, err := childIDs(r, "imageId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if err := svc.DeleteImage(r.Context(), id, imageID); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "Image deleted")
	}
}

func ProductAddDescription(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body products.DescriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.AddDescription(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Description added successfully")
	}
}

func ProductUpdateDescription(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, descriptionID, err := childIDs(r, "descriptionId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body products.DescriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.UpdateDescription(r.Context(), id, descriptionID, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Description updated successfully")
	}
}

func ProductDeleteDescription(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, descriptionID, err := childIDs(r, "descriptionId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if err := svc.DeleteDescription(r.Context(), id, descriptionID); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "Description deleted successfully")
	}
}

func ProductReorderDescriptions(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body products.DescriptionOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.ReorderDescriptions(r.Context(), id, body.DescriptionIDs)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Descriptions reordered successfully")
	}
}

func ProductAddVariant(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body products.VariantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.AddVariant(r.Context(), id, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, result, "Variant added successfully")
	}
}

func ProductUpdateVariant(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, variantID, err := childIDs(r, "variantId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		var body products.VariantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		result, err := svc.UpdateVariant(r.Context(), id, variantID, body)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, result, "Variant updated successfully")
	}
}

func ProductDeleteVariant(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "product")
			return
		}
		id, variantID, err := childIDs(r, "variantId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		if err := svc.DeleteVariant(r.Context(), id, variantID); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, nil, "Variant deleted successfully")
	}
}

func childIDs(r *http.Request, child string) (int64, int64, error) {
	id, err := validators.PathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	childID, err := validators.PathID(r, child)
	if err != nil {
		return 0, 0, err
	}
	return id, childID, nil
}
