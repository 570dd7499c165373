package service

import (
	"context"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"
)

type EstacionService interface {
	ListarPendientes(ctx context.Context, destino string) ([]dto.TicketEstacion, error)
	MarcarListo(ctx context.Context, mesaKey, destino string) (int64, error)
}

type estacionService struct {
	repo repository.OrdenRepository
}

func NewEstacionService(repo repository.OrdenRepository) EstacionService {
	return &estacionService{repo: repo}
}

// ListarPendientes returns one ticket per active table that still has pending
// lines for the station, oldest table first. Each station sees only its own
// lines: a beer and a plate on the same table produce a ticket on each screen.
func (s *estacionService) ListarPendientes(ctx context.Context, destino string) ([]dto.TicketEstacion, error) {
	ordenes, err := s.repo.ListActivasConPendientes(ctx, destino)
	if err != nil {
		return nil, err
	}
	tickets := make([]dto.TicketEstacion, 0, len(ordenes))
	for _, o := range ordenes {
		if len(o.Detalles) == 0 {
			continue
		}
		items := make([]dto.ItemTicket, 0, len(o.Detalles))
		for _, d := range o.Detalles {
			items = append(items, dto.ItemTicket{
				Nombre:   d.NombreCongelado,
				Cantidad: d.Cantidad,
				Notas:    d.Notas,
				Imagen:   d.ImagenCongelada,
			})
		}
		tickets = append(tickets, dto.TicketEstacion{
			MesaKey:       o.MesaKey,
			FechaApertura: o.FechaApertura,
			Items:         items,
		})
	}
	return tickets, nil
}

// MarcarListo flips every pending line of the station for that table to
// listo. Repeating the call matches zero rows and is harmless.
func (s *estacionService) MarcarListo(ctx context.Context, mesaKey, destino string) (int64, error) {
	if destino != model.DestinoCocina && destino != model.DestinoBarra {
		return 0, ErrOrdenNoEncontrada
	}
	return s.repo.MarcarListos(ctx, mesaKey, destino)
}
