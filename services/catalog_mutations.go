package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/database"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"github.com/rpupo63/appstore-backend/storage"
)

// CreateApplication registers a new Pending application from its metadata
// and package file. The package is validated strictly: a missing file or a
// disallowed extension aborts before anything touches the disk or the store.
func (c *Catalog) CreateApplication(meta ApplicationMetadata, pkg storage.Upload) (*models.Application, error) {
	if _, err := storage.ValidatePackage(pkg); err != nil {
		return nil, err
	}
	if err := validateInput(meta); err != nil {
		return nil, err
	}
	if err := c.checkReferences(meta); err != nil {
		return nil, err
	}

	appUUID := uuid.New()
	appID := appUUID.String()

	dirs, err := c.layout.EnsureAppDirectories(appID)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("create application folders", err)
	}

	storedName, size, err := storage.StorePackage(pkg, dirs.AppDir)
	if err != nil {
		c.removeAppFolder(appID)
		if errs.IsValidationError(err) {
			return nil, err
		}
		return nil, errs.NewInternalErrorWithCause("store application package", err)
	}

	app := &models.Application{
		UUID:        appUUID,
		CategoryID:  meta.CategoryID,
		DeveloperID: meta.DeveloperID,
		Name:        storage.PackageName(storedName),
		Version:     meta.Version,
		Description: meta.Description,
		Size:        size,
		Permission:  meta.Permission,
		OSVersion:   meta.OSVersion,
		LaunchURL:   meta.LaunchURL,
		Status:      models.StatusPending,
	}
	if err := c.db.ApplicationRepo().Add(app); err != nil {
		c.removeAppFolder(appID)
		return nil, err
	}

	c.logger.Info().
		Str("appUUID", appID).
		Str("package", storedName).
		Int64("size", size).
		Msg("application created")
	return app, nil
}

func (c *Catalog) checkReferences(meta ApplicationMetadata) error {
	if _, err := c.db.CategoryRepo().FindByID(meta.CategoryID); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewInvalidFieldError("category_id", "unknown category")
		}
		return err
	}
	if _, err := c.db.DeveloperRepo().FindByUserID(meta.DeveloperID); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewInvalidFieldError("developer_id", "unknown developer")
		}
		return err
	}
	return nil
}

func (c *Catalog) removeAppFolder(appID string) {
	if err := c.layout.RemoveApp(appID); err != nil {
		c.logger.Warn().Err(err).Str("appUUID", appID).Msg("failed to clean up application folder")
	}
}

// AttachAssets stores the media of a Pending application and activates it.
// Every slot is optional: an empty or disallowed upload keeps the slot's
// placeholder. The bundle insert and the status change commit together, and
// uploads are staged so a failed attach never touches the stored files.
func (c *Catalog) AttachAssets(ctx context.Context, appUUID uuid.UUID, uploads map[AssetSlot]storage.Upload) (*models.ApplicationAssets, error) {
	app, err := c.db.ApplicationRepo().FindByUUID(appUUID)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransitionTo(models.StatusActive) {
		return nil, errs.NewInvalidTransitionError(appUUID.String(), app.Status.String(), models.StatusActive.String())
	}

	dirs, err := c.layout.EnsureAppDirectories(appUUID.String())
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("create application folders", err)
	}

	assets := models.NewPlaceholderAssets(appUUID)
	var staged []*storage.StagedFile
	defer func() {
		for _, file := range staged {
			file.Discard()
		}
	}()

	for _, rule := range assetSlotRules {
		upload, ok := uploads[rule.slot]
		if !ok {
			continue
		}

		file, err := storage.StageUploadedField(upload, dirs.AssetsDir, string(rule.slot))
		if err != nil {
			if errs.IsValidationError(err) {
				c.logger.Debug().Err(err).Str("appUUID", appUUID.String()).Str("slot", string(rule.slot)).Msg("asset skipped")
				continue
			}
			return nil, errs.NewInternalErrorWithCause("store "+string(rule.slot), err)
		}
		rule.assign(&assets, file.Name)
		staged = append(staged, file)
	}

	err = c.db.Transaction(func(tx database.Database) error {
		if err := tx.ApplicationAssetsRepo().Add(&assets); err != nil {
			return err
		}
		return tx.ApplicationRepo().Activate(appUUID)
	})
	if err != nil {
		var apiErr *errs.ApiErr
		if !errors.As(err, &apiErr) {
			err = errs.NewTransactionFailedError("attach assets", err)
		}
		return nil, err
	}

	// Files reach their canonical names only once the bundle referencing
	// them is committed.
	stored := make([]string, 0, len(staged))
	for _, file := range staged {
		if err := file.Commit(); err != nil {
			c.logger.Error().Err(err).Str("appUUID", appUUID.String()).Str("file", file.Name).Msg("committed bundle references a file that could not be moved into place")
			return nil, errs.NewInternalErrorWithCause("store "+file.Name, err)
		}
		stored = append(stored, file.Name)
	}

	c.logger.Info().Str("appUUID", appUUID.String()).Strs("files", stored).Msg("assets attached, application active")
	c.publishAssets(ctx, appUUID, dirs.AssetsDir, stored)
	return &assets, nil
}
