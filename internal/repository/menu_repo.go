package repository

import (
	"context"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"gorm.io/gorm"
)

// ItemDestino is the result row of the batched routing lookup.
type ItemDestino struct {
	IDItem  string
	Destino string
}

type MenuRepository interface {
	ListCategorias(ctx context.Context) ([]model.MenuCategoria, error)
	ListItems(ctx context.Context) ([]model.MenuItem, error)
	FindItem(ctx context.Context, id string) (*model.MenuItem, error)
	CrearCategoria(ctx context.Context, c *model.MenuCategoria) error
	FindCategoriaPorNombre(ctx context.Context, nombre string) (*model.MenuCategoria, error)
	CrearItem(ctx context.Context, it *model.MenuItem) error
	ActualizarItem(ctx context.Context, it *model.MenuItem) error
	SetDisponibilidad(ctx context.Context, id string, disponible bool) error
	IDsDisponibles(ctx context.Context) (map[string]bool, error)
	// DestinosPorItem resolves routing for a batch of item ids in one joined
	// query (never N+1). Ids with no catalog row are simply absent.
	DestinosPorItem(ctx context.Context, ids []string) ([]ItemDestino, error)
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) ListCategorias(ctx context.Context) ([]model.MenuCategoria, error) {
	var cats []model.MenuCategoria
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&cats).Error
	return cats, err
}

func (r *menuRepo) ListItems(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r *menuRepo) FindItem(ctx context.Context, id string) (*model.MenuItem, error) {
	var it model.MenuItem
	err := r.db.WithContext(ctx).First(&it, "id_item = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *menuRepo) CrearCategoria(ctx context.Context, c *model.MenuCategoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *menuRepo) FindCategoriaPorNombre(ctx context.Context, nombre string) (*model.MenuCategoria, error) {
	var c model.MenuCategoria
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *menuRepo) CrearItem(ctx context.Context, it *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *menuRepo) ActualizarItem(ctx context.Context, it *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *menuRepo) SetDisponibilidad(ctx context.Context, id string, disponible bool) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id_item = ?", id).
		Update("disponible", disponible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepo) IDsDisponibles(ctx context.Context) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("disponible = ?", true).
		Pluck("id_item", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *menuRepo) DestinosPorItem(ctx context.Context, ids []string) ([]ItemDestino, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []ItemDestino
	err := r.db.WithContext(ctx).
		Table("menu_items").
		Select("menu_items.id_item AS id_item, menu_categorias.destino AS destino").
		Joins("JOIN menu_categorias ON menu_categorias.id_categoria = menu_items.id_categoria").
		Where("menu_items.id_item IN ?", ids).
		Scan(&rows).Error
	return rows, err
}
