package database_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/database"
	"github.com/rpupo63/appstore-backend/database/dbtest"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addApplication(t *testing.T, d database.Database, categoryID uint, status models.ApplicationStatus) *models.Application {
	t.Helper()
	app := &models.Application{
		UUID:        uuid.New(),
		CategoryID:  categoryID,
		DeveloperID: 1,
		Name:        "app",
		Status:      status,
	}
	require.NoError(t, d.ApplicationRepo().Add(app))
	return app
}

func uuidsOf(apps []*models.Application) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.UUID)
	}
	return ids
}

func TestApplicationRepoFilters(t *testing.T) {
	d := database.New(dbtest.Open(t))

	activeA := addApplication(t, d, 1, models.StatusActive)
	activeB := addApplication(t, d, 1, models.StatusActive)
	pendingA := addApplication(t, d, 1, models.StatusPending)
	otherCategory := addApplication(t, d, 2, models.StatusActive)

	t.Run("by app id", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.ByAppID(activeA.UUID))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{activeA.UUID}, uuidsOf(apps))
	})

	t.Run("by app id ignores pending", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.ByAppID(pendingA.UUID))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("by category", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.ByCategory(1))
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{activeA.UUID, activeB.UUID}, uuidsOf(apps))
	})

	t.Run("by category excluding", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.ByCategoryExcluding(1, activeA.UUID))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{activeB.UUID}, uuidsOf(apps))
		assert.NotContains(t, uuidsOf(apps), activeA.UUID)
	})

	t.Run("active only", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.ActiveOnly())
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{activeA.UUID, activeB.UUID, otherCategory.UUID}, uuidsOf(apps))
	})

	t.Run("all includes pending", func(t *testing.T) {
		apps, err := d.ApplicationRepo().Find(database.All())
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{activeA.UUID, activeB.UUID, pendingA.UUID, otherCategory.UUID}, uuidsOf(apps))
	})
}

func TestApplicationRepoFindByUUIDNotFound(t *testing.T) {
	d := database.New(dbtest.Open(t))

	_, err := d.ApplicationRepo().FindByUUID(uuid.New())
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 404, errs.StatusOf(err))
}

func TestApplicationRepoSetInstalled(t *testing.T) {
	d := database.New(dbtest.Open(t))
	app := addApplication(t, d, 1, models.StatusActive)

	require.NoError(t, d.ApplicationRepo().SetInstalled(app.UUID, true))
	ids, err := d.ApplicationRepo().InstalledUUIDs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{app.UUID}, ids)

	// Setting the same value again still matches the row.
	require.NoError(t, d.ApplicationRepo().SetInstalled(app.UUID, true))

	require.NoError(t, d.ApplicationRepo().SetInstalled(app.UUID, false))
	ids, err = d.ApplicationRepo().InstalledUUIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestApplicationRepoSetInstalledUnknownUUID(t *testing.T) {
	d := database.New(dbtest.Open(t))
	addApplication(t, d, 1, models.StatusActive)

	err := d.ApplicationRepo().SetInstalled(uuid.New(), true)
	assert.True(t, errs.IsNotFound(err))

	ids, err := d.ApplicationRepo().InstalledUUIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestApplicationRepoActivate(t *testing.T) {
	d := database.New(dbtest.Open(t))
	app := addApplication(t, d, 1, models.StatusPending)

	require.NoError(t, d.ApplicationRepo().Activate(app.UUID))

	stored, err := d.ApplicationRepo().FindByUUID(app.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, stored.Status)

	err = d.ApplicationRepo().Activate(app.UUID)
	assert.True(t, errs.IsInvalidTransitionError(err))
}

func TestTransactionRollsBackAssetsWhenActivationFails(t *testing.T) {
	d := database.New(dbtest.Open(t))
	app := addApplication(t, d, 1, models.StatusActive)

	err := d.Transaction(func(tx database.Database) error {
		assets := models.NewPlaceholderAssets(app.UUID)
		if err := tx.ApplicationAssetsRepo().Add(&assets); err != nil {
			return err
		}
		return tx.ApplicationRepo().Activate(app.UUID)
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTransitionError(err))

	_, err = d.ApplicationAssetsRepo().FindByAppUUID(app.UUID)
	assert.True(t, errs.IsNotFound(err), "assets insert must be rolled back")
}

func TestTransactionCommits(t *testing.T) {
	d := database.New(dbtest.Open(t))
	app := addApplication(t, d, 1, models.StatusPending)

	err := d.Transaction(func(tx database.Database) error {
		assets := models.NewPlaceholderAssets(app.UUID)
		if err := tx.ApplicationAssetsRepo().Add(&assets); err != nil {
			return err
		}
		return tx.ApplicationRepo().Activate(app.UUID)
	})
	require.NoError(t, err)

	assets, err := d.ApplicationAssetsRepo().FindByAppUUID(app.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.PlaceholderIcon, assets.Icon)
}

func TestApplicationAssetsRepoDuplicateIsConflict(t *testing.T) {
	d := database.New(dbtest.Open(t))
	id := uuid.New()

	first := models.NewPlaceholderAssets(id)
	require.NoError(t, d.ApplicationAssetsRepo().Add(&first))

	second := models.NewPlaceholderAssets(id)
	err := d.ApplicationAssetsRepo().Add(&second)
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyExists(err))
}

func TestApplicationAssetsRepoFindByAppUUIDs(t *testing.T) {
	d := database.New(dbtest.Open(t))
	a, b := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b} {
		bundle := models.NewPlaceholderAssets(id)
		require.NoError(t, d.ApplicationAssetsRepo().Add(&bundle))
	}

	byUUID, err := d.ApplicationAssetsRepo().FindByAppUUIDs([]uuid.UUID{a, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byUUID, 1)
	assert.Contains(t, byUUID, a)
}

func TestCategoryAndDeveloperRepos(t *testing.T) {
	d := database.New(dbtest.Open(t))

	first := &models.Category{Name: "Games", Description: "fun"}
	dup := &models.Category{Name: "Games", Description: "duplicate names are allowed"}
	require.NoError(t, d.CategoryRepo().Add(first))
	require.NoError(t, d.CategoryRepo().Add(dup))
	assert.NotEqual(t, first.ID, dup.ID)

	categories, err := d.CategoryRepo().FindAll()
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	require.NoError(t, d.DeveloperRepo().Add(&models.Developer{UserID: 7, Name: "Ada"}))
	developer, err := d.DeveloperRepo().FindByUserID(7)
	require.NoError(t, err)
	assert.Equal(t, "Ada", developer.Name)

	byID, err := d.DeveloperRepo().FindByUserIDs([]uint{7, 8})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	_, err = d.DeveloperRepo().FindByUserID(8)
	assert.True(t, errs.IsNotFound(err))
	assert.False(t, errors.Is(err, errs.ErrAlreadyExists))
}
