package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.False(t, StatusActive.CanTransitionTo(StatusPending))
	assert.False(t, StatusActive.CanTransitionTo(StatusActive))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, ApplicationStatus("Rejected").CanTransitionTo(StatusActive))
}

func TestApplicationStatusScan(t *testing.T) {
	var s ApplicationStatus

	require.NoError(t, s.Scan("Active"))
	assert.Equal(t, StatusActive, s)

	require.NoError(t, s.Scan([]byte("Pending")))
	assert.Equal(t, StatusPending, s)

	assert.Error(t, s.Scan("Deleted"))
	assert.Error(t, s.Scan(nil))
	assert.Error(t, s.Scan(42))
	assert.Equal(t, StatusPending, s, "failed scans leave the value untouched")
}

func TestApplicationStatusValue(t *testing.T) {
	v, err := StatusActive.Value()
	require.NoError(t, err)
	assert.Equal(t, "Active", v)

	_, err = ApplicationStatus("active").Value()
	assert.Error(t, err)
}

func TestNewPlaceholderAssets(t *testing.T) {
	id := uuid.New()
	assets := NewPlaceholderAssets(id)

	assert.Equal(t, id, assets.AppUUID)
	assert.Equal(t, "app_icon.png", assets.Icon)
	assert.Equal(t, "browser.png", assets.ScreenShotOne)
	assert.Equal(t, "browser.png", assets.ScreenShotTwo)
	assert.Equal(t, "browser.png", assets.ScreenShotThree)
	assert.Equal(t, "browser.png", assets.ScreenShotFour)
	assert.Equal(t, "None", assets.Video)
}
