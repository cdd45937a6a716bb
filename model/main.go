package model

import (
	"os"
	"time"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// usingSQLite disables row locking clauses SQLite cannot parse; its single
// writer serializes the walk anyway.
var usingSQLite bool

func chooseDialector() gorm.Dialector {
	if dsn := os.Getenv("SQL_DSN"); dsn != "" {
		common.SysLog("using MySQL as database")
		return mysql.Open(dsn)
	}
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		common.SysLog("using PostgreSQL as database")
		return postgres.Open(dsn)
	}
	path := common.GetEnvString("SQLITE_PATH", "jenai.db")
	common.SysLog("SQL_DSN not set, using SQLite as database: " + path)
	usingSQLite = true
	return sqlite.Open(path)
}

// InitDB opens the database connection and runs migrations.
func InitDB() error {
	db, err := gorm.Open(chooseDialector(), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(common.GetEnvInt("SQL_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(common.GetEnvInt("SQL_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Duration(common.GetEnvInt("SQL_MAX_LIFETIME", 60)) * time.Second)

	DB = db
	return migrateDB(db)
}

func migrateDB(db *gorm.DB) error {
	common.SysLog("database migration started")
	err := db.AutoMigrate(
		&User{},
		&Product{},
		&Order{},
		&OrderItem{},
		&CommissionEntry{},
	)
	if err != nil {
		return err
	}
	common.SysLog("database migrated")
	return nil
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
