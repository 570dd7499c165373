package infra

import (
	"fmt"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// prefijosBebidas are the legacy item-id prefixes of drink items. They exist
// only to backfill menu_categorias.destino the first time an old database is
// upgraded; routing at runtime reads the category attribute, never these.
var prefijosBebidas = []string{"MIC", "OBA", "BSA", "CER", "RTD"}

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the one-time upgrade steps that
// AutoMigrate cannot express (heuristic backfill of columns added after the
// initial deployment). Safe to call on every startup.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// Databases created before the per-category routing attribute existed need
	// their destinos re-derived, not defaulted wholesale to one station.
	// Detect the missing column BEFORE AutoMigrate adds it with the default.
	needsDestinoBackfill, err := tableExists(db, "menu_categorias")
	if err != nil {
		return nil, err
	}
	if needsDestinoBackfill {
		hasCol, err := columnExists(db, "menu_categorias", "destino")
		if err != nil {
			return nil, err
		}
		needsDestinoBackfill = !hasCol
	}

	if err := db.AutoMigrate(
		&model.Empleado{},
		&model.EventoAsistencia{},
		&model.MenuCategoria{},
		&model.MenuItem{},
		&model.Orden{},
		&model.OrdenDetalle{},
		&model.OrdenEnvio{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if needsDestinoBackfill {
		if err := backfillDestinos(db); err != nil {
			return nil, fmt.Errorf("destino backfill: %w", err)
		}
	}

	return db, nil
}

func tableExists(db *gorm.DB, table string) (bool, error) {
	var n int64
	err := db.Raw(
		`SELECT count(*) FROM information_schema.tables WHERE table_name = ?`, table,
	).Scan(&n).Error
	return n > 0, err
}

func columnExists(db *gorm.DB, table, column string) (bool, error) {
	var n int64
	err := db.Raw(
		`SELECT count(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?`,
		table, column,
	).Scan(&n).Error
	return n > 0, err
}

// backfillDestinos runs exactly once, right after the destino column is added
// to a pre-existing database. A category routes to barra when it contains at
// least one item whose legacy id carries a drink prefix; everything else stays
// on the cocina default. Logged because the heuristic is irreversible.
func backfillDestinos(db *gorm.DB) error {
	like := make([]string, 0, len(prefijosBebidas))
	args := make([]interface{}, 0, len(prefijosBebidas))
	for _, p := range prefijosBebidas {
		like = append(like, "id_item LIKE ?")
		args = append(args, p+"%")
	}

	res := db.Exec(fmt.Sprintf(
		`UPDATE menu_categorias SET destino = 'barra'
		 WHERE id_categoria IN (SELECT DISTINCT id_categoria FROM menu_items WHERE %s)`,
		joinOr(like)), args...)
	if res.Error != nil {
		return res.Error
	}

	log.Info().
		Int64("categorias_barra", res.RowsAffected).
		Strs("prefijos", prefijosBebidas).
		Msg("destino backfill applied to legacy categories")
	return nil
}

func joinOr(conds []string) string {
	out := ""
	for i, c := range conds {
		if i > 0 {
			out += " OR "
		}
		out += c
	}
	return out
}
