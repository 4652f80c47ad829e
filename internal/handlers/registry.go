package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	PageHandler    *PageHandler
	CatalogHandler *CatalogHandler
	ManageHandler  *ManageHandler
	AssetHandler   *AssetHandler
	QRHandler      *QRHandler
	StatusHandler  *StatusHandler
}
