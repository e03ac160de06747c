// Package service holds the business rules between the HTTP handlers and the
// repositories. Every exported method returns *models.AppError for expected
// failures so handlers can map them to status codes without inspecting
// storage errors.
package service

import (
	"errors"

	"commons/internal/models"

	"gorm.io/gorm"
)

// errRoleCatalogMissing signals a deployment whose roles table lost a
// catalog role after startup validation. It should never fire in practice.
var errRoleCatalogMissing = errors.New("role catalog is missing required roles")

// notFoundOrStore maps a repository error to the taxonomy: missing rows
// become NOT_FOUND for the given resource, anything else is a store error.
func notFoundOrStore(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewStoreError(err)
}
