package database

import (
	"fmt"

	"winelink/internal/logger"
	"winelink/internal/models"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func starterWines() []models.Wine {
	wines := []models.Wine{
		{Name: "Cabernet Sauvignon Reserve", Color: models.ColorRed, Sparkling: models.FlagNo, Bokal: models.FlagYes,
			Country: "Chile", Region: strPtr("Maipo Valley"), Sugar: models.SugarDry, PdfFile: "kab_sov.pdf", Price: strPtr("650")},
		{Name: "Rkatsiteli", Color: models.ColorWhite, Sparkling: models.FlagNo, Bokal: models.FlagNo,
			Country: "Georgia", Region: strPtr("Kakheti"), Sugar: models.SugarDry, PdfFile: "rkatsiteli.pdf", Price: strPtr("540")},
		{Name: "Prosecco Extra Dry", Color: models.ColorWhite, Sparkling: models.FlagYes, Bokal: models.FlagYes,
			Country: "Italy", Region: strPtr("Veneto"), Sugar: models.SugarBrut, PdfFile: "prosecco.pdf", Price: strPtr("720")},
		{Name: "Côtes de Provence Rosé", Color: models.ColorPink, Sparkling: models.FlagNo, Bokal: models.FlagNo,
			Country: "France", Region: strPtr("Provence"), Sugar: models.SugarDry, PdfFile: "provence_rose.pdf"},
		{Name: "Khvanchkara", Color: models.ColorRed, Sparkling: models.FlagNo, Bokal: models.FlagNo,
			Country: "Georgia", Region: strPtr("Racha"), Sugar: models.SugarSemiSweet, PdfFile: "khvanchkara.pdf", Price: strPtr("980")},
	}
	wines[0].SetGrapes([]string{"Cabernet Sauvignon"})
	wines[1].SetGrapes([]string{"Rkatsiteli"})
	wines[2].SetGrapes([]string{"Glera"})
	wines[3].SetGrapes([]string{"Grenache", "Cinsault", "Syrah"})
	wines[4].SetGrapes([]string{"Alexandrouli", "Mujuretuli"})
	return wines
}

// SeedIfEmpty inserts the starter list when the wine table has no rows.
// It returns the number of inserted records.
func SeedIfEmpty(db *gorm.DB) (int, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.Model(&models.Wine{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count wines: %w", err)
	}
	if count > 0 {
		logger.Info("Wine table already populated, skipping seed", "count", count)
		return 0, nil
	}

	wines := starterWines()
	if err := tx.Create(&wines).Error; err != nil {
		return 0, fmt.Errorf("failed to insert starter wines: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info("Seeded starter wines", "count", len(wines))
	return len(wines), nil
}
