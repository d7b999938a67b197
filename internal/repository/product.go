package repository

import (
	"errors"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")

type ProductRepository interface {
	GetByID(id int64) (*model.Product, error)
}

type product struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &product{db: db}
}

func (r *product) GetByID(id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err == nil {
		return &p, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}

	return nil, err
}
