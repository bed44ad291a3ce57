package services

import (
	"github.com/rpupo63/appstore-backend/models"
)

// AssetSlot names one optional media field of an asset bundle. The slot
// name doubles as the canonical file name the upload is stored under.
type AssetSlot string

const (
	SlotIcon        AssetSlot = "icon"
	SlotScreenshot1 AssetSlot = "screenshot1"
	SlotScreenshot2 AssetSlot = "screenshot2"
	SlotScreenshot3 AssetSlot = "screenshot3"
	SlotScreenshot4 AssetSlot = "screenshot4"
	SlotVideo       AssetSlot = "video"
)

type assetSlotRule struct {
	slot   AssetSlot
	assign func(assets *models.ApplicationAssets, storedName string)
}

// assetSlotRules is the fixed mapping from slots to bundle fields, in form order.
var assetSlotRules = []assetSlotRule{
	{SlotIcon, func(a *models.ApplicationAssets, name string) { a.Icon = name }},
	{SlotScreenshot1, func(a *models.ApplicationAssets, name string) { a.ScreenShotOne = name }},
	{SlotScreenshot2, func(a *models.ApplicationAssets, name string) { a.ScreenShotTwo = name }},
	{SlotScreenshot3, func(a *models.ApplicationAssets, name string) { a.ScreenShotThree = name }},
	{SlotScreenshot4, func(a *models.ApplicationAssets, name string) { a.ScreenShotFour = name }},
	{SlotVideo, func(a *models.ApplicationAssets, name string) { a.Video = name }},
}

// AssetSlots lists every slot in form order.
func AssetSlots() []AssetSlot {
	slots := make([]AssetSlot, 0, len(assetSlotRules))
	for _, rule := range assetSlotRules {
		slots = append(slots, rule.slot)
	}
	return slots
}
