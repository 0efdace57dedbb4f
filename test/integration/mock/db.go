package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db is a shared in-memory SQLite database keyed by table name.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates every model.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: dbConn, models: models}
	if err := dbConn.AutoMigrate(d.modelList()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return d
}

// ClearDB deletes every row of every registered table.
func (d *Db) ClearDB() error {
	for _, model := range d.modelList() {
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// modelList returns the models in table-name order so runs are repeatable.
func (d *Db) modelList() []any {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	list := make([]any, 0, len(tables))
	for _, table := range tables {
		list = append(list, d.models[table])
	}
	return list
}
