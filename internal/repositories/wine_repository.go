package repositories

import (
	"errors"

	"winelink/internal/models"

	"gorm.io/gorm"
)

var ErrWineNotFound = errors.New("wine not found")

type WineRepository interface {
	FindAll(db *gorm.DB) ([]models.Wine, error)
	FindByID(db *gorm.DB, id uint) (*models.Wine, error)
	Create(db *gorm.DB, wine *models.Wine) error
	Update(db *gorm.DB, wine *models.Wine) error
	Count(db *gorm.DB) (int64, error)
}

type WineRepositoryImpl struct{}

func NewWineRepository() WineRepository {
	return &WineRepositoryImpl{}
}

// FindAll returns every record in store order (ascending id).
func (r *WineRepositoryImpl) FindAll(db *gorm.DB) ([]models.Wine, error) {
	var wines []models.Wine
	if err := db.Order("id ASC").Find(&wines).Error; err != nil {
		return nil, err
	}
	return wines, nil
}

func (r *WineRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Wine, error) {
	var wine models.Wine
	if err := db.First(&wine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWineNotFound
		}
		return nil, err
	}
	return &wine, nil
}

func (r *WineRepositoryImpl) Create(db *gorm.DB, wine *models.Wine) error {
	return db.Create(wine).Error
}

// Update replaces every mutable column, including ones set back to NULL.
func (r *WineRepositoryImpl) Update(db *gorm.DB, wine *models.Wine) error {
	result := db.Model(wine).Select("*").Omit("id").Updates(wine)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWineNotFound
	}
	return nil
}

func (r *WineRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Wine{}).Count(&count).Error
	return count, err
}
