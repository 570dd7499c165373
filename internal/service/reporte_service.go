package service

import (
	"context"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"
)

const topItemsPorDefecto = 10

type ReporteService interface {
	ReporteDia(ctx context.Context, dia time.Time) (*dto.ReporteDiaResponse, error)
	DatosGraficos(ctx context.Context, dias int) (*dto.ChartDataResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

// ReporteDia sums the day's closed orders on their frozen line prices. Menu
// price edits after the fact never move a historical total.
func (s *reporteService) ReporteDia(ctx context.Context, dia time.Time) (*dto.ReporteDiaResponse, error) {
	total, err := s.repo.TotalDelDia(ctx, dia)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopItemsRango(ctx, dia, dia, topItemsPorDefecto)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReporteDiaResponse{
		Fecha:    dia.Format("2006-01-02"),
		Total:    total,
		TopItems: make([]dto.ItemVendido, 0, len(top)),
	}
	for _, v := range top {
		resp.TopItems = append(resp.TopItems, dto.ItemVendido{
			Nombre:        v.Nombre,
			CantidadTotal: v.Cantidad,
		})
	}
	return resp, nil
}

func (s *reporteService) DatosGraficos(ctx context.Context, dias int) (*dto.ChartDataResponse, error) {
	if dias <= 0 {
		dias = 7
	}
	hoy := time.Now()
	desde := hoy.AddDate(0, 0, -(dias - 1))

	tendencia, err := s.repo.TendenciaRango(ctx, desde, hoy)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopItemsRango(ctx, desde, hoy, topItemsPorDefecto)
	if err != nil {
		return nil, err
	}
	totalHoy, err := s.repo.TotalDelDia(ctx, hoy)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChartDataResponse{
		Tendencia: make([]dto.TendenciaPunto, 0, len(tendencia)),
	}
	for _, p := range tendencia {
		resp.Tendencia = append(resp.Tendencia, dto.TendenciaPunto{
			Fecha: p.Fecha.Format("2006-01-02"),
			Total: p.Total,
		})
	}
	for _, v := range top {
		resp.TopProductos.Nombres = append(resp.TopProductos.Nombres, v.Nombre)
		resp.TopProductos.Cantidades = append(resp.TopProductos.Cantidades, v.Cantidad)
	}
	resp.ResumenHoy.Total = totalHoy
	return resp, nil
}
