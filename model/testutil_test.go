package model

import (
	"fmt"
	"testing"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB swaps the package DB for an in-memory SQLite database for the
// duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A fresh pool connection would see a fresh empty :memory: database.
	sqlDB.SetMaxOpenConns(1)
	if err := migrateDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prevDB, prevSQLite := DB, usingSQLite
	DB, usingSQLite = db, true
	t.Cleanup(func() {
		DB, usingSQLite = prevDB, prevSQLite
		_ = sqlDB.Close()
	})
}

var testUserSeq int

// createTestUser seeds a user whose rank matches its points and whose
// first-order bonus is already claimed, so distribution tests measure only
// the schedule under test. Registration is backdated past the bonus window.
func createTestUser(t *testing.T, role string, referredBy int, points float64) *User {
	t.Helper()
	testUserSeq++
	user := &User{
		Username:               fmt.Sprintf("user%d", testUserSeq),
		Role:                   role,
		ReferralCode:           fmt.Sprintf("CODE%04d", testUserSeq),
		ReferredBy:             referredBy,
		Points:                 points,
		Rank:                   string(RankForPoints(points)),
		FirstOrderBonusClaimed: true,
		CreatedAt:              common.GetTimestamp() - 90*24*60*60,
	}
	if err := DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, pointsPerUnit float64, customerPrice, memberPrice int64, stock int) *Product {
	t.Helper()
	testUserSeq++
	product := &Product{
		Name:          fmt.Sprintf("product%d", testUserSeq),
		Sku:           fmt.Sprintf("SKU%04d", testUserSeq),
		CustomerPrice: customerPrice,
		MemberPrice:   memberPrice,
		PointsPerUnit: pointsPerUnit,
		Stock:         stock,
		CreatedAt:     common.GetTimestamp(),
	}
	if err := DB.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func reloadUser(t *testing.T, id int) *User {
	t.Helper()
	user, err := GetUserById(id)
	if err != nil {
		t.Fatalf("failed to reload user %d: %v", id, err)
	}
	return user
}

func mustTransition(t *testing.T, orderId int, status string) *Order {
	t.Helper()
	order, err := TransitionOrderStatus(orderId, status)
	if err != nil {
		t.Fatalf("transition to %s failed: %v", status, err)
	}
	return order
}

// placeOrder creates a pending order for one product line.
func placeOrder(t *testing.T, buyerId int, referralCode string, productId int, quantity int) *Order {
	t.Helper()
	order, err := CreateOrder(buyerId, referralCode, []NewOrderItem{{ProductId: productId, Quantity: quantity}})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}
