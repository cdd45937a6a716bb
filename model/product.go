package model

import (
	"errors"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("INSUFFICIENT_STOCK")

// Product carries the two-tier pricing the compensation scheme is built on.
// PointsPerUnit is frozen onto order items at creation, later price edits
// never change an existing order's points.
type Product struct {
	Id            int     `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"size:128"`
	Sku           string  `json:"sku" gorm:"uniqueIndex;size:64"`
	CustomerPrice int64   `json:"customer_price"`
	MemberPrice   int64   `json:"member_price"`
	PointsPerUnit float64 `json:"points_per_unit"`
	Stock         int     `json:"stock"`
	Sold          int     `json:"sold"`
	CreatedAt     int64   `json:"created_at" gorm:"autoCreateTime:false"`
}

func GetProductById(id int) (*Product, error) {
	var product Product
	err := DB.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProduct(product *Product) error {
	if product.CreatedAt == 0 {
		product.CreatedAt = common.GetTimestamp()
	}
	return DB.Create(product).Error
}

// commitOrderStockTx moves stock to sold for every item on the order. The
// stock guard lives in the WHERE clause so two overlapping orders cannot
// both consume the last unit.
func commitOrderStockTx(tx *gorm.DB, order *Order) error {
	for _, item := range order.Items {
		result := tx.Model(&Product{}).
			Where("id = ? AND stock >= ?", item.ProductId, item.Quantity).
			Updates(map[string]interface{}{
				"stock": gorm.Expr("stock - ?", item.Quantity),
				"sold":  gorm.Expr("sold + ?", item.Quantity),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}
	}
	return nil
}

// restoreOrderStockTx puts committed stock back when an order is cancelled
// out of the fulfillment set.
func restoreOrderStockTx(tx *gorm.DB, order *Order) error {
	for _, item := range order.Items {
		err := tx.Model(&Product{}).
			Where("id = ?", item.ProductId).
			Updates(map[string]interface{}{
				"stock": gorm.Expr("stock + ?", item.Quantity),
				"sold":  gorm.Expr("sold - ?", item.Quantity),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
