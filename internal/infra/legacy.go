package infra

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Legacy flat-file shapes, exactly as the old desktop app wrote them.

type legacyEmpleado struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Rol      string  `json:"rol"`
	DeviceID *string `json:"deviceId"`
}

type legacyEvento struct {
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp"`
	Type       string `json:"type"`
}

type legacyMenu struct {
	Categorias []struct {
		Nombre string `json:"nombre"`
		Items  []struct {
			ID          string          `json:"id"`
			Nombre      string          `json:"nombre"`
			Descripcion *string         `json:"descripcion"`
			Precio      decimal.Decimal `json:"precio"`
			Imagen      *string         `json:"imagen"`
			Disponible  *bool           `json:"disponible"`
		} `json:"items"`
	} `json:"categorias"`
}

// ImportLegacyDataIfEmpty performs the one-time migration from the old JSON
// asset files. It only runs when the empleados table is empty; a missing file
// is logged and skipped, leaving the store ready for manual data entry.
func ImportLegacyDataIfEmpty(db *gorm.DB, assetsDir string) error {
	var n int64
	if err := db.Model(&model.Empleado{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Msg("database already populated, legacy import skipped")
		return nil
	}

	log.Info().Str("assets", assetsDir).Msg("empty database detected, importing legacy JSON data")
	importLegacyEmpleados(db, filepath.Join(assetsDir, "asistencia.json"))
	importLegacyAsistencia(db, filepath.Join(assetsDir, "asistencia_historico.json"))
	importLegacyMenu(db, filepath.Join(assetsDir, "menu.json"))
	return nil
}

func readLegacyFile(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("file", path).Msg("legacy file not found, skipping import")
		} else {
			log.Error().Err(err).Str("file", path).Msg("could not read legacy file")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Error().Err(err).Str("file", path).Msg("could not parse legacy file")
		return false
	}
	return true
}

func importLegacyEmpleados(db *gorm.DB, path string) {
	var emps []legacyEmpleado
	if !readLegacyFile(path, &emps) {
		return
	}
	count := 0
	for _, e := range emps {
		if e.ID == "" {
			continue
		}
		emp := model.Empleado{IDEmpleado: e.ID, Nombre: e.Nombre, Rol: e.Rol, DeviceID: e.DeviceID}
		if err := db.Create(&emp).Error; err != nil {
			log.Error().Err(err).Str("empleado", e.ID).Msg("legacy employee import failed")
			continue
		}
		count++
	}
	log.Info().Int("empleados", count).Str("file", path).Msg("legacy employees imported")
}

func importLegacyAsistencia(db *gorm.DB, path string) {
	var eventos []legacyEvento
	if !readLegacyFile(path, &eventos) {
		return
	}
	batch := make([]model.EventoAsistencia, 0, len(eventos))
	for _, ev := range eventos {
		ts, err := time.Parse(time.RFC3339, ev.Timestamp)
		if err != nil {
			// legacy files also contain bare ISO stamps without zone
			ts, err = time.ParseInLocation("2006-01-02T15:04:05", ev.Timestamp, time.Local)
			if err != nil {
				continue
			}
		}
		batch = append(batch, model.EventoAsistencia{
			IDEmpleado: ev.EmployeeID,
			Timestamp:  ts,
			Tipo:       ev.Type,
		})
	}
	if len(batch) > 0 {
		if err := db.CreateInBatches(batch, 200).Error; err != nil {
			log.Error().Err(err).Msg("legacy attendance import failed")
			return
		}
	}
	log.Info().Int("eventos", len(batch)).Str("file", path).Msg("legacy attendance history imported")
}

func importLegacyMenu(db *gorm.DB, path string) {
	var menu legacyMenu
	if !readLegacyFile(path, &menu) {
		return
	}
	items := 0
	for _, cat := range menu.Categorias {
		destino := model.DestinoCocina
		for _, it := range cat.Items {
			if hasDrinkPrefix(it.ID) {
				destino = model.DestinoBarra
				break
			}
		}
		c := model.MenuCategoria{Nombre: cat.Nombre, Destino: destino}
		if err := db.Where(model.MenuCategoria{Nombre: cat.Nombre}).FirstOrCreate(&c).Error; err != nil {
			log.Error().Err(err).Str("categoria", cat.Nombre).Msg("legacy category import failed")
			continue
		}
		for _, it := range cat.Items {
			disponible := true
			if it.Disponible != nil {
				disponible = *it.Disponible
			}
			item := model.MenuItem{
				IDItem:      it.ID,
				IDCategoria: c.IDCategoria,
				Nombre:      it.Nombre,
				Descripcion: it.Descripcion,
				Precio:      it.Precio,
				Imagen:      it.Imagen,
				Disponible:  disponible,
			}
			if err := db.Create(&item).Error; err != nil {
				log.Error().Err(err).Str("item", it.ID).Msg("legacy menu item import failed")
				continue
			}
			items++
		}
	}
	log.Info().Int("items", items).Str("file", path).Msg("legacy menu imported")
}

func hasDrinkPrefix(id string) bool {
	for _, p := range prefijosBebidas {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// LoadTarifas reads the per-role pay rates (currency per minute) from the
// roles_pago section of the legacy config.json. The payroll engine receives
// them as an argument so it stays a pure function over events + rates. Like
// the other legacy assets, a missing file is logged and skipped: the server
// boots with no rates and the payroll reports hours with zero pay.
func LoadTarifas(assetsDir string) (map[string]decimal.Decimal, error) {
	path := filepath.Join(assetsDir, "config.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("config.json no encontrado, nomina sin tarifas")
		return map[string]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg struct {
		RolesPago map[string]struct {
			Minuto decimal.Decimal `json:"minuto"`
		} `json:"roles_pago"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	tarifas := make(map[string]decimal.Decimal, len(cfg.RolesPago))
	for rol, t := range cfg.RolesPago {
		tarifas[rol] = t.Minuto
	}
	return tarifas, nil
}
