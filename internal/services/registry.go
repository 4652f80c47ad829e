package services

import (
	"winelink/internal/assets"
	"winelink/internal/qrcode"
)

// ServiceContainer holds every service the handlers use.
type ServiceContainer struct {
	CatalogService   CatalogService
	ReconcileService ReconcileService
	ManageService    ManageService
	ArrivalService   ArrivalService
	QRGenerator      *qrcode.Generator
	Locator          *assets.Locator
}
