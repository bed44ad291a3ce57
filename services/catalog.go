package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/database"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"github.com/rpupo63/appstore-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Catalog reads and mutates the application catalog and the files that
// back it. It holds no per-request state.
type Catalog struct {
	db        database.Database
	layout    storage.Layout
	publisher storage.Publisher
	logger    zerolog.Logger
}

func NewCatalog(db database.Database, layout storage.Layout, publisher storage.Publisher) *Catalog {
	if publisher == nil {
		publisher = storage.NopPublisher{}
	}
	return &Catalog{
		db:        db,
		layout:    layout,
		publisher: publisher,
		logger:    log.With().Str("serviceName", "catalog").Logger(),
	}
}

// ApplicationDetails is everything the detail page shows about one application.
type ApplicationDetails struct {
	Application *models.Application
	Developer   *models.Developer
	// Entry is nil while the application is Pending.
	Entry *models.CatalogEntry
	// Assets is nil while the application is Pending.
	Assets  *models.ApplicationAssets
	Related []models.CatalogEntry
}

// ListApplications returns the display records of the applications matching
// filter. Every record needs its developer and asset bundle; a missing one
// fails the whole listing with a catalog inconsistency error.
func (c *Catalog) ListApplications(filter database.ApplicationFilter) ([]models.CatalogEntry, error) {
	apps, err := c.db.ApplicationRepo().Find(filter)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []models.CatalogEntry{}, nil
	}

	developerIDs := make([]uint, 0, len(apps))
	appUUIDs := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		developerIDs = append(developerIDs, app.DeveloperID)
		appUUIDs = append(appUUIDs, app.UUID)
	}

	developers, err := c.db.DeveloperRepo().FindByUserIDs(developerIDs)
	if err != nil {
		return nil, err
	}
	bundles, err := c.db.ApplicationAssetsRepo().FindByAppUUIDs(appUUIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CatalogEntry, 0, len(apps))
	for _, app := range apps {
		developer, ok := developers[app.DeveloperID]
		if !ok {
			c.logger.Error().Str("appUUID", app.UUID.String()).Uint("developerID", app.DeveloperID).Msg("application references a missing developer")
			return nil, errs.NewCatalogInconsistencyError(app.UUID.String(), "developer")
		}
		assets, ok := bundles[app.UUID]
		if !ok {
			c.logger.Error().Str("appUUID", app.UUID.String()).Msg("application has no asset bundle")
			return nil, errs.NewCatalogInconsistencyError(app.UUID.String(), "assets")
		}

		entries = append(entries, models.CatalogEntry{
			ID:          app.ID,
			UUID:        app.UUID,
			Name:        app.Name,
			Developer:   developer.Name,
			Icon:        assets.Icon,
			Installed:   app.Installed,
			Description: app.Description,
			Downloads:   app.Downloads,
		})
	}
	return entries, nil
}

// ListInstalledUUIDs returns the uuids of every installed application.
func (c *Catalog) ListInstalledUUIDs() ([]uuid.UUID, error) {
	return c.db.ApplicationRepo().InstalledUUIDs()
}

// InstalledApplications returns the display records of installed, Active applications.
func (c *Catalog) InstalledApplications() ([]models.CatalogEntry, error) {
	installed, err := c.ListInstalledUUIDs()
	if err != nil {
		return nil, err
	}

	entries := []models.CatalogEntry{}
	for _, appUUID := range installed {
		found, err := c.ListApplications(database.ByAppID(appUUID))
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return entries, nil
}

// BrowsableApplications returns the Active applications that are not installed.
func (c *Catalog) BrowsableApplications() ([]models.CatalogEntry, error) {
	entries, err := c.ListApplications(database.ActiveOnly())
	if err != nil {
		return nil, err
	}
	installed, err := c.ListInstalledUUIDs()
	if err != nil {
		return nil, err
	}

	skip := make(map[uuid.UUID]bool, len(installed))
	for _, appUUID := range installed {
		skip[appUUID] = true
	}

	browsable := make([]models.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if !skip[entry.UUID] {
			browsable = append(browsable, entry)
		}
	}
	return browsable, nil
}

// ApplicationWithDeveloper loads an application of any status and its developer.
func (c *Catalog) ApplicationWithDeveloper(appUUID uuid.UUID) (*models.Application, *models.Developer, error) {
	app, err := c.db.ApplicationRepo().FindByUUID(appUUID)
	if err != nil {
		return nil, nil, err
	}
	developer, err := c.db.DeveloperRepo().FindByUserID(app.DeveloperID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil, errs.NewCatalogInconsistencyError(app.UUID.String(), "developer")
		}
		return nil, nil, err
	}
	return app, developer, nil
}

// Details gathers the detail page of an application: its display record,
// its asset bundle and the other Active applications of its category.
func (c *Catalog) Details(appUUID uuid.UUID) (*ApplicationDetails, error) {
	app, developer, err := c.ApplicationWithDeveloper(appUUID)
	if err != nil {
		return nil, err
	}

	details := &ApplicationDetails{Application: app, Developer: developer}

	entries, err := c.ListApplications(database.ByAppID(appUUID))
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		details.Entry = &entries[0]
	}

	if app.Status == models.StatusActive {
		assets, err := c.db.ApplicationAssetsRepo().FindByAppUUID(appUUID)
		if err != nil {
			if errs.IsNotFound(err) {
				return nil, errs.NewCatalogInconsistencyError(app.UUID.String(), "assets")
			}
			return nil, err
		}
		details.Assets = assets
	}

	details.Related, err = c.ListApplications(database.ByCategoryExcluding(app.CategoryID, appUUID))
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (c *Catalog) Categories() ([]*models.Category, error) {
	return c.db.CategoryRepo().FindAll()
}

func (c *Catalog) Developers() ([]*models.Developer, error) {
	return c.db.DeveloperRepo().FindAll()
}

// SetInstalled flips the installed flag of one application.
func (c *Catalog) SetInstalled(appUUID uuid.UUID, installed bool) error {
	if err := c.db.ApplicationRepo().SetInstalled(appUUID, installed); err != nil {
		c.logger.Warn().Err(err).Str("appUUID", appUUID.String()).Bool("installed", installed).Msg("install flag not updated")
		return err
	}
	c.logger.Info().Str("appUUID", appUUID.String()).Bool("installed", installed).Msg("install flag updated")
	return nil
}

// LaunchApplication has no defined behavior yet.
func (c *Catalog) LaunchApplication(appUUID uuid.UUID) error {
	return errs.NewNotImplementedError("launching applications")
}

// CreateCategory inserts a category. Names need not be unique.
func (c *Catalog) CreateCategory(input CategoryInput) (*models.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	category := &models.Category{Name: input.Name, Description: input.Description}
	if err := c.db.CategoryRepo().Add(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (c *Catalog) CreateDeveloper(input DeveloperInput) (*models.Developer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	developer := &models.Developer{UserID: input.UserID, Name: input.Name}
	if err := c.db.DeveloperRepo().Add(developer); err != nil {
		return nil, err
	}
	return developer, nil
}

// publishAssets mirrors stored asset files. Failures are logged only; the
// local copy stays authoritative.
func (c *Catalog) publishAssets(ctx context.Context, appUUID uuid.UUID, dir string, names []string) {
	if len(names) == 0 {
		return
	}
	if err := c.publisher.Publish(ctx, appUUID.String(), dir, names); err != nil {
		c.logger.Warn().Err(err).Str("appUUID", appUUID.String()).Strs("files", names).Msg("asset mirror failed")
	}
}
