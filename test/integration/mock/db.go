package mock

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")

type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens a named in-memory SQLite database and migrates the given models.
// Databases with distinct names are isolated from each other.
func NewDb(name string, models map[string]any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnReplacer.Replace(name))

	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// NewTestDb opens an isolated database for a single test and closes it on cleanup.
func NewTestDb(t testing.TB, models map[string]any) *Db {
	t.Helper()
	d := NewDb(t.Name(), models)
	t.Cleanup(func() {
		if sqlDB, err := d.DbConn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return d
}

// ClearDB drops and re-creates every table.
func (d *Db) ClearDB() error {
	modelList := make([]any, 0, len(d.models))
	for _, model := range d.models {
		modelList = append(modelList, model)
		if err := d.DbConn.Migrator().DropTable(model); err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

// Reset deletes every row while keeping the schema.
func (d *Db) Reset() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of rows in table, including soft-deleted ones.
func (d *Db) Count(table string) (int64, error) {
	if _, ok := d.models[table]; !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}
	var count int64
	err := d.DbConn.Table(table).Count(&count).Error
	return count, err
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
