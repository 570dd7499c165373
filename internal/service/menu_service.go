package service

import (
	"context"
	"errors"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCategoriaDuplicada = errors.New("ya existe una categoria con ese nombre")
	ErrItemNoEncontrado   = errors.New("el item de menu no existe")
)

type MenuService interface {
	ObtenerMenu(ctx context.Context) (*dto.MenuResponse, error)
	ResolverDestinos(ctx context.Context, itemIDs []string) (map[string]string, error)
	IDsDisponibles(ctx context.Context) (map[string]bool, error)
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaMenuResponse, error)
	CrearItem(ctx context.Context, req dto.CrearItemMenuRequest) (*dto.ItemMenuResponse, error)
	ActualizarItem(ctx context.Context, id string, req dto.ActualizarItemMenuRequest) (*dto.ItemMenuResponse, error)
	SetDisponibilidad(ctx context.Context, id string, disponible bool) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) ObtenerMenu(ctx context.Context) (*dto.MenuResponse, error) {
	categorias, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	porCategoria := make(map[int64][]dto.ItemMenuResponse)
	for _, it := range items {
		porCategoria[it.IDCategoria] = append(porCategoria[it.IDCategoria], itemMenuToResponse(&it))
	}

	resp := &dto.MenuResponse{Categorias: make([]dto.CategoriaMenuResponse, 0, len(categorias))}
	for _, c := range categorias {
		resp.Categorias = append(resp.Categorias, dto.CategoriaMenuResponse{
			IDCategoria: c.IDCategoria,
			Nombre:      c.Nombre,
			Destino:     c.Destino,
			Items:       porCategoria[c.IDCategoria],
		})
	}
	return resp, nil
}

// ResolverDestinos maps each item id to its category's station in one batched
// query. Ids that resolve to nothing (deleted or never-known items) default to
// the kitchen so the line is never lost.
func (s *menuService) ResolverDestinos(ctx context.Context, itemIDs []string) (map[string]string, error) {
	destinos := make(map[string]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return destinos, nil
	}
	filas, err := s.repo.DestinosPorItem(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	conocidos := make(map[string]string, len(filas))
	for _, f := range filas {
		conocidos[f.IDItem] = f.Destino
	}
	for _, id := range itemIDs {
		if d, ok := conocidos[id]; ok && d != "" {
			destinos[id] = d
		} else {
			destinos[id] = model.DestinoCocina
		}
	}
	return destinos, nil
}

func (s *menuService) IDsDisponibles(ctx context.Context) (map[string]bool, error) {
	return s.repo.IDsDisponibles(ctx)
}

func (s *menuService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaMenuResponse, error) {
	existente, err := s.repo.FindCategoriaPorNombre(ctx, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, ErrCategoriaDuplicada
	}
	cat := &model.MenuCategoria{Nombre: req.Nombre, Destino: req.Destino}
	if err := s.repo.CrearCategoria(ctx, cat); err != nil {
		return nil, err
	}
	return &dto.CategoriaMenuResponse{
		IDCategoria: cat.IDCategoria,
		Nombre:      cat.Nombre,
		Destino:     cat.Destino,
		Items:       []dto.ItemMenuResponse{},
	}, nil
}

func (s *menuService) CrearItem(ctx context.Context, req dto.CrearItemMenuRequest) (*dto.ItemMenuResponse, error) {
	item := &model.MenuItem{
		IDItem:      req.ID,
		IDCategoria: req.IDCategoria,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Imagen:      req.Imagen,
		Disponible:  true,
	}
	if err := s.repo.CrearItem(ctx, item); err != nil {
		return nil, err
	}
	resp := itemMenuToResponse(item)
	return &resp, nil
}

func (s *menuService) ActualizarItem(ctx context.Context, id string, req dto.ActualizarItemMenuRequest) (*dto.ItemMenuResponse, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		item.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		item.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		item.Precio = *req.Precio
	}
	if req.Imagen != nil {
		item.Imagen = req.Imagen
	}
	if req.IDCategoria != nil {
		item.IDCategoria = *req.IDCategoria
	}
	if err := s.repo.ActualizarItem(ctx, item); err != nil {
		return nil, err
	}
	resp := itemMenuToResponse(item)
	return &resp, nil
}

func (s *menuService) SetDisponibilidad(ctx context.Context, id string, disponible bool) error {
	err := s.repo.SetDisponibilidad(ctx, id, disponible)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNoEncontrado
	}
	return err
}

func itemMenuToResponse(it *model.MenuItem) dto.ItemMenuResponse {
	return dto.ItemMenuResponse{
		ID:          it.IDItem,
		Nombre:      it.Nombre,
		Descripcion: it.Descripcion,
		Precio:      it.Precio,
		Imagen:      it.Imagen,
		Disponible:  it.Disponible,
	}
}
