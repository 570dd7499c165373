package service

import (
	"context"
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrdenNoEncontrada = errors.New("no existe una orden activa para esa mesa")
	ErrLineaNoEncontrada = errors.New("la linea no pertenece a la orden")
	ErrLineaNoPendiente  = errors.New("la linea ya fue preparada y no puede eliminarse")
	ErrOrdenConLineas    = errors.New("la orden todavia tiene productos cargados")
)

type OrdenService interface {
	Crear(ctx context.Context, req dto.NuevaOrdenRequest) (int64, bool, error)
	TableroActivo(ctx context.Context) (map[string]dto.MesaActiva, error)
	Separar(ctx context.Context, req dto.SepararOrdenRequest) (string, error)
	EliminarLineas(ctx context.Context, req dto.EliminarItemsRequest) error
	Cancelar(ctx context.Context, mesaKey string) error
	Cobrar(ctx context.Context, mesaKey string) (*dto.OrdenSnapshot, error)
	ActualizarNota(ctx context.Context, req dto.ActualizarNotaRequest) error
}

type ordenService struct {
	repo repository.OrdenRepository
	menu MenuService
}

func NewOrdenService(repo repository.OrdenRepository, menu MenuService) OrdenService {
	return &ordenService{repo: repo, menu: menu}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Crear persists a complete submission. Resubmitting the same order_id token
// returns (0, true, nil) without touching anything. If the billing unit
// already has an active order, the lines are appended to it as a new round
// instead of opening a second tab for the same mesa_key.
func (s *ordenService) Crear(ctx context.Context, req dto.NuevaOrdenRequest) (int64, bool, error) {
	dup, err := s.repo.ExisteEnvio(ctx, req.OrderID)
	if err != nil {
		return 0, false, err
	}
	if dup {
		return 0, true, nil
	}

	mesaKey := ComponerMesaKey(req.NumeroMesa, req.MesasEnlazadas)

	ids := make([]string, len(req.Items))
	for i, it := range req.Items {
		ids[i] = it.ItemID
	}
	destinos, err := s.menu.ResolverDestinos(ctx, ids)
	if err != nil {
		return 0, false, err
	}

	apertura := time.Now()
	if req.Timestamp != nil {
		apertura = *req.Timestamp
	}

	var idOrden int64
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindActivaPorMesaTx(tx, mesaKey)
		if err != nil {
			return err
		}
		if orden == nil {
			token := req.OrderID
			orden = &model.Orden{
				MesaKey:       mesaKey,
				Estado:        model.OrdenActiva,
				FechaApertura: apertura,
				ClientUUID:    &token,
			}
			if err := s.repo.CreateTx(tx, orden); err != nil {
				return err
			}
		}
		idOrden = orden.IDOrden

		detalles := make([]model.OrdenDetalle, 0, len(req.Items))
		for _, it := range req.Items {
			detalles = append(detalles, model.OrdenDetalle{
				IDOrden:                 orden.IDOrden,
				IDItemMenu:              it.ItemID,
				Cantidad:                it.Cantidad,
				PrecioUnitarioCongelado: it.PrecioUnitario,
				NombreCongelado:         it.Nombre,
				ImagenCongelada:         it.Imagen,
				Notas:                   it.Notas,
				Destino:                 destinos[it.ItemID],
				EstadoItem:              model.ItemPendiente,
			})
		}
		if err := s.repo.CreateDetallesTx(tx, detalles); err != nil {
			return err
		}
		return s.repo.RegistrarEnvioTx(tx, &model.OrdenEnvio{
			IDOrden:    orden.IDOrden,
			ClientUUID: req.OrderID,
			Recibido:   time.Now(),
		})
	})
	if txErr != nil {
		return 0, false, txErr
	}
	return idOrden, false, nil
}

func (s *ordenService) TableroActivo(ctx context.Context) (map[string]dto.MesaActiva, error) {
	ordenes, err := s.repo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}
	tablero := make(map[string]dto.MesaActiva, len(ordenes))
	for _, o := range ordenes {
		tablero[o.MesaKey] = dto.MesaActiva{
			IDOrden:       o.IDOrden,
			FechaApertura: o.FechaApertura,
			Items:         lineasDeOrden(&o),
		}
	}
	return tablero, nil
}

// Separar moves quantities of the given lines into a new sub-account order
// keyed "<mesaKey>-<n>". The source stays locked for the whole transaction so
// two concurrent splits of the same unit cannot allocate the same suffix.
func (s *ordenService) Separar(ctx context.Context, req dto.SepararOrdenRequest) (string, error) {
	var nuevaKey string
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		origen, err := s.repo.FindActivaPorMesaTx(tx, req.MesaKey)
		if err != nil {
			return err
		}
		if origen == nil {
			return ErrOrdenNoEncontrada
		}

		activas, err := s.repo.MesasActivasPorPrefijoTx(tx, origen.MesaKey+"-")
		if err != nil {
			return err
		}
		nuevaKey = siguienteSufijo(origen.MesaKey, activas)

		ahora := time.Now()
		destino := &model.Orden{
			MesaKey:       nuevaKey,
			Estado:        model.OrdenActiva,
			FechaApertura: ahora,
		}
		if err := s.repo.CreateTx(tx, destino); err != nil {
			return err
		}

		for _, mov := range req.Items {
			det, err := s.repo.FindDetalleTx(tx, mov.IDDetalle, origen.IDOrden)
			if err != nil {
				return err
			}
			if det == nil {
				return ErrLineaNoEncontrada
			}
			if mov.Cantidad >= det.Cantidad {
				// Whole line moves, keeping id and estado_item.
				if err := s.repo.ReasignarDetalleTx(tx, det.IDDetalle, destino.IDOrden); err != nil {
					return err
				}
				continue
			}
			if err := s.repo.UpdateDetalleCantidadTx(tx, det.IDDetalle, det.Cantidad-mov.Cantidad); err != nil {
				return err
			}
			clon := model.OrdenDetalle{
				IDOrden:                 destino.IDOrden,
				IDItemMenu:              det.IDItemMenu,
				Cantidad:                mov.Cantidad,
				PrecioUnitarioCongelado: det.PrecioUnitarioCongelado,
				NombreCongelado:         det.NombreCongelado,
				ImagenCongelada:         det.ImagenCongelada,
				Notas:                   det.Notas,
				Destino:                 det.Destino,
				EstadoItem:              det.EstadoItem,
			}
			if err := s.repo.CreateDetallesTx(tx, []model.OrdenDetalle{clon}); err != nil {
				return err
			}
		}
		return s.cerrarSiVacia(tx, origen, ahora)
	})
	if err != nil {
		return "", err
	}
	return nuevaKey, nil
}

func (s *ordenService) EliminarLineas(ctx context.Context, req dto.EliminarItemsRequest) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindActivaPorMesaTx(tx, req.MesaKey)
		if err != nil {
			return err
		}
		if orden == nil {
			return ErrOrdenNoEncontrada
		}
		for _, mov := range req.Items {
			det, err := s.repo.FindDetalleTx(tx, mov.IDDetalle, orden.IDOrden)
			if err != nil {
				return err
			}
			if det == nil {
				return ErrLineaNoEncontrada
			}
			if det.EstadoItem != model.ItemPendiente {
				return ErrLineaNoPendiente
			}
			if mov.Cantidad >= det.Cantidad {
				if err := s.repo.DeleteDetalleTx(tx, det.IDDetalle); err != nil {
					return err
				}
				continue
			}
			if err := s.repo.UpdateDetalleCantidadTx(tx, det.IDDetalle, det.Cantidad-mov.Cantidad); err != nil {
				return err
			}
		}
		return s.cerrarSiVacia(tx, orden, time.Now())
	})
}

// Cancelar removes an accidentally-created empty table entry. It refuses when
// lines remain: a table with product on it must be charged or emptied first.
func (s *ordenService) Cancelar(ctx context.Context, mesaKey string) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindActivaPorMesaTx(tx, mesaKey)
		if err != nil {
			return err
		}
		if orden == nil {
			return ErrOrdenNoEncontrada
		}
		n, err := s.repo.CountDetallesTx(tx, orden.IDOrden)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrOrdenConLineas
		}
		ahora := time.Now()
		return s.repo.CerrarOrdenTx(tx, orden.IDOrden, model.OrdenCancelada, &ahora)
	})
}

// Cobrar closes the order and returns its pre-closure snapshot. A missing
// active order returns (nil, nil): a racing request may have charged it first.
// Charging the last sub-account of a split also sweeps up an emptied parent
// that Separar deliberately left active.
func (s *ordenService) Cobrar(ctx context.Context, mesaKey string) (*dto.OrdenSnapshot, error) {
	var snap *dto.OrdenSnapshot
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindActivaPorMesaTx(tx, mesaKey)
		if err != nil {
			return err
		}
		if orden == nil {
			return nil
		}

		ahora := time.Now()
		items := lineasDeOrden(orden)
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		}
		snap = &dto.OrdenSnapshot{
			IDOrden:       orden.IDOrden,
			MesaKey:       orden.MesaKey,
			FechaApertura: orden.FechaApertura,
			FechaCierre:   ahora,
			Items:         items,
			Total:         total,
		}
		if err := s.repo.CerrarOrdenTx(tx, orden.IDOrden, model.OrdenCerrada, &ahora); err != nil {
			return err
		}

		base := baseMesaKey(orden.MesaKey)
		if base == orden.MesaKey {
			return nil
		}
		hermanas, err := s.repo.MesasActivasPorPrefijoTx(tx, base+"-")
		if err != nil {
			return err
		}
		if len(hermanas) > 0 {
			return nil
		}
		padre, err := s.repo.FindActivaPorMesaTx(tx, base)
		if err != nil {
			return err
		}
		if padre != nil && len(padre.Detalles) == 0 {
			return s.repo.CerrarOrdenTx(tx, padre.IDOrden, model.OrdenCancelada, &ahora)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *ordenService) ActualizarNota(ctx context.Context, req dto.ActualizarNotaRequest) error {
	err := s.repo.ActualizarNota(ctx, req.IDDetalle, req.Nota)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLineaNoEncontrada
	}
	return err
}

// cerrarSiVacia applies the post-mutation cleanup rule: an emptied simple or
// sub-account order is closed right away, but an emptied linked composite
// stays active so the cashier board keeps showing the joined tables.
func (s *ordenService) cerrarSiVacia(tx *gorm.DB, orden *model.Orden, ahora time.Time) error {
	n, err := s.repo.CountDetallesTx(tx, orden.IDOrden)
	if err != nil {
		return err
	}
	if n > 0 || EsCompuesta(orden.MesaKey) {
		return nil
	}
	return s.repo.CerrarOrdenTx(tx, orden.IDOrden, model.OrdenCancelada, &ahora)
}

func lineasDeOrden(o *model.Orden) []dto.LineaOrden {
	items := make([]dto.LineaOrden, 0, len(o.Detalles))
	for _, d := range o.Detalles {
		items = append(items, dto.LineaOrden{
			IDDetalle:      d.IDDetalle,
			ItemID:         d.IDItemMenu,
			Nombre:         d.NombreCongelado,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitarioCongelado,
			Imagen:         d.ImagenCongelada,
			Notas:          d.Notas,
			Destino:        d.Destino,
			EstadoItem:     d.EstadoItem,
		})
	}
	return items
}
