/*
 * @Description: 数据库连接管理 (支持多种数据库)
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2026-10-19 11:16:05
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/migrate"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultSQLiteName 未在配置中指定数据库名时使用的 SQLite 文件名
const DefaultSQLiteName = "anheyu_cms.db"

// NewSQLDB 创建并返回一个标准的 *sql.DB 连接池，支持 mysql/mariadb、postgres 和 sqlite。
func NewSQLDB(cfg *config.Config) (*sql.DB, error) {
	driver := normalizeDBType(cfg.GetString(config.KeyDBType))

	var dsn string
	var driverName string

	dbUser := cfg.GetString(config.KeyDBUser)
	dbPass := cfg.GetString(config.KeyDBPassword)
	dbHost := cfg.GetString(config.KeyDBHost)
	dbPort := cfg.GetString(config.KeyDBPort)
	dbName := cfg.GetString(config.KeyDBName)

	switch driver {
	case "mysql", "mariadb":
		driverName = "mysql"
		if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("MySQL 连接参数不完整 (需要 User, Host, Port, Name)")
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbUser, dbPass, dbHost, dbPort, dbName)
	case "postgres":
		driverName = "postgres"
		if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("PostgreSQL 连接参数不完整 (需要 User, Host, Port, Name)")
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPass, dbName)
	case "sqlite":
		driverName = "sqlite3"

		dataDir := "./data"
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("无法创建 data 目录: %w", err)
		}

		finalDbName := dbName
		if finalDbName == "" {
			finalDbName = DefaultSQLiteName
		}

		finalPath := filepath.Join(dataDir, finalDbName)
		log.Printf("【提示】SQLite 数据库路径: %s\n", finalPath)
		dsn = SQLiteDSN(finalPath)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s (支持: mysql/mariadb, postgres, sqlite)", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("打开 sql.DB 连接失败 (驱动: %s): %w", driverName, err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("无法 Ping 通数据库 (驱动: %s): %w", driverName, err)
	}

	log.Printf("✅ %s 数据库连接池创建成功！\n", driver)
	return db, nil
}

// SQLiteDSN 返回开启外键约束的 SQLite 连接串，迁移时 ent 会检查 foreign_keys
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)", path)
}

// Dialect 将配置中的数据库类型映射为 ent 方言
func Dialect(dbType string) (string, error) {
	switch normalizeDBType(dbType) {
	case "mysql", "mariadb":
		return dialect.MySQL, nil
	case "postgres":
		return dialect.Postgres, nil
	case "sqlite":
		return dialect.SQLite, nil
	default:
		return "", fmt.Errorf("不支持的 Ent 方言: %s", dbType)
	}
}

// NewEntDriver 用已有连接池创建 Ent 驱动，并在启动时自动迁移表结构。
func NewEntDriver(db *sql.DB, cfg *config.Config) (dialect.Driver, error) {
	name, err := Dialect(cfg.GetString(config.KeyDBType))
	if err != nil {
		return nil, err
	}
	var drv dialect.Driver = entsql.OpenDB(name, db)

	if cfg.GetBool(config.KeyDBDebug) {
		drv = dialect.Debug(drv, log.Println)
		log.Println("【数据库】Ent Debug模式已开启，将打印所有执行的SQL语句。")
	}

	log.Println("⚡ 开始数据库表结构迁移...")
	if err := Migrate(context.Background(), drv); err != nil {
		return nil, err
	}
	log.Println("✅ 数据库表结构迁移成功")
	return drv, nil
}

// Migrate 执行表结构迁移，允许删除旧索引和旧列
func Migrate(ctx context.Context, drv dialect.Driver) error {
	if err := migrate.Create(ctx, drv,
		migrate.WithDropIndex(true),
		migrate.WithDropColumn(true),
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

func normalizeDBType(dbType string) string {
	switch dbType {
	case "":
		log.Println("提示: 配置文件中未指定 'Database.Type'，将默认使用 'sqlite'")
		return "sqlite"
	case "sqlite3":
		return "sqlite"
	default:
		return dbType
	}
}
