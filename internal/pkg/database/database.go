package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/projecthub/backend/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		// 使用 github.com/glebarez/sqlite 驱动
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	klog.V(6).Infof("数据库初始化完成: type=%s", dbType)
	return db, nil
}

// Migrate 自动迁移全部表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.AllModels()...)
}
