package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory OrdenRepository stub ───────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes  map[int64]*model.Orden
	detalles map[int64]*model.OrdenDetalle
	envios   map[string]int64
	nextOrd  int64
	nextDet  int64
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes:  make(map[int64]*model.Orden),
		detalles: make(map[int64]*model.OrdenDetalle),
		envios:   make(map[string]int64),
	}
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

func (r *stubOrdenRepo) ExisteEnvio(_ context.Context, clientUUID string) (bool, error) {
	_, ok := r.envios[clientUUID]
	return ok, nil
}

func (r *stubOrdenRepo) RegistrarEnvioTx(_ *gorm.DB, envio *model.OrdenEnvio) error {
	r.envios[envio.ClientUUID] = envio.IDOrden
	return nil
}

func (r *stubOrdenRepo) CreateTx(_ *gorm.DB, o *model.Orden) error {
	r.nextOrd++
	o.IDOrden = r.nextOrd
	cloned := *o
	r.ordenes[o.IDOrden] = &cloned
	return nil
}

func (r *stubOrdenRepo) CreateDetallesTx(_ *gorm.DB, detalles []model.OrdenDetalle) error {
	for i := range detalles {
		r.nextDet++
		detalles[i].IDDetalle = r.nextDet
		cloned := detalles[i]
		r.detalles[cloned.IDDetalle] = &cloned
	}
	return nil
}

func (r *stubOrdenRepo) detallesDe(idOrden int64) []model.OrdenDetalle {
	var out []model.OrdenDetalle
	for _, d := range r.detalles {
		if d.IDOrden == idOrden {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDDetalle < out[j].IDDetalle })
	return out
}

func (r *stubOrdenRepo) findActiva(mesaKey string) *model.Orden {
	for _, o := range r.ordenes {
		if o.MesaKey == mesaKey && o.Estado == model.OrdenActiva {
			cloned := *o
			cloned.Detalles = r.detallesDe(o.IDOrden)
			return &cloned
		}
	}
	return nil
}

func (r *stubOrdenRepo) FindActivaPorMesaTx(_ *gorm.DB, mesaKey string) (*model.Orden, error) {
	return r.findActiva(mesaKey), nil
}

func (r *stubOrdenRepo) FindActivaPorMesa(_ context.Context, mesaKey string) (*model.Orden, error) {
	return r.findActiva(mesaKey), nil
}

func (r *stubOrdenRepo) ListActivas(_ context.Context) ([]model.Orden, error) {
	var out []model.Orden
	for _, o := range r.ordenes {
		if o.Estado == model.OrdenActiva {
			cloned := *o
			cloned.Detalles = r.detallesDe(o.IDOrden)
			out = append(out, cloned)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaApertura.Before(out[j].FechaApertura) })
	return out, nil
}

func (r *stubOrdenRepo) MesasActivasPorPrefijoTx(_ *gorm.DB, prefijo string) ([]string, error) {
	var keys []string
	for _, o := range r.ordenes {
		if o.Estado == model.OrdenActiva && strings.HasPrefix(o.MesaKey, prefijo) {
			keys = append(keys, o.MesaKey)
		}
	}
	return keys, nil
}

func (r *stubOrdenRepo) CerrarOrdenTx(_ *gorm.DB, idOrden int64, estado string, cierre *time.Time) error {
	o, ok := r.ordenes[idOrden]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Estado = estado
	o.FechaCierre = cierre
	return nil
}

func (r *stubOrdenRepo) FindDetalleTx(_ *gorm.DB, idDetalle, idOrden int64) (*model.OrdenDetalle, error) {
	d, ok := r.detalles[idDetalle]
	if !ok || d.IDOrden != idOrden {
		return nil, nil
	}
	cloned := *d
	return &cloned, nil
}

func (r *stubOrdenRepo) UpdateDetalleCantidadTx(_ *gorm.DB, idDetalle int64, cantidad int) error {
	r.detalles[idDetalle].Cantidad = cantidad
	return nil
}

func (r *stubOrdenRepo) ReasignarDetalleTx(_ *gorm.DB, idDetalle, idOrdenDestino int64) error {
	r.detalles[idDetalle].IDOrden = idOrdenDestino
	return nil
}

func (r *stubOrdenRepo) DeleteDetalleTx(_ *gorm.DB, idDetalle int64) error {
	delete(r.detalles, idDetalle)
	return nil
}

func (r *stubOrdenRepo) CountDetallesTx(_ *gorm.DB, idOrden int64) (int64, error) {
	return int64(len(r.detallesDe(idOrden))), nil
}

func (r *stubOrdenRepo) ActualizarNota(_ context.Context, idDetalle int64, nota string) error {
	d, ok := r.detalles[idDetalle]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Notas = &nota
	return nil
}

func (r *stubOrdenRepo) ListActivasConPendientes(_ context.Context, destino string) ([]model.Orden, error) {
	activas, _ := r.ListActivas(context.Background())
	var out []model.Orden
	for _, o := range activas {
		var pendientes []model.OrdenDetalle
		for _, d := range o.Detalles {
			if d.Destino == destino && d.EstadoItem == model.ItemPendiente {
				pendientes = append(pendientes, d)
			}
		}
		o.Detalles = pendientes
		out = append(out, o)
	}
	return out, nil
}

func (r *stubOrdenRepo) MarcarListos(_ context.Context, mesaKey, destino string) (int64, error) {
	o := r.findActiva(mesaKey)
	if o == nil {
		return 0, nil
	}
	var n int64
	for _, d := range r.detalles {
		if d.IDOrden == o.IDOrden && d.Destino == destino && d.EstadoItem == model.ItemPendiente {
			d.EstadoItem = model.ItemListo
			n++
		}
	}
	return n, nil
}

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── MenuService stub (only ResolverDestinos matters here) ────────────────────

type stubMenu struct {
	destinos map[string]string
}

func (m *stubMenu) ResolverDestinos(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if d, ok := m.destinos[id]; ok {
			out[id] = d
		} else {
			out[id] = model.DestinoCocina
		}
	}
	return out, nil
}

func (m *stubMenu) ObtenerMenu(context.Context) (*dto.MenuResponse, error)     { return nil, nil }
func (m *stubMenu) IDsDisponibles(context.Context) (map[string]bool, error)    { return nil, nil }
func (m *stubMenu) CrearCategoria(context.Context, dto.CrearCategoriaRequest) (*dto.CategoriaMenuResponse, error) {
	return nil, nil
}
func (m *stubMenu) CrearItem(context.Context, dto.CrearItemMenuRequest) (*dto.ItemMenuResponse, error) {
	return nil, nil
}
func (m *stubMenu) ActualizarItem(context.Context, string, dto.ActualizarItemMenuRequest) (*dto.ItemMenuResponse, error) {
	return nil, nil
}
func (m *stubMenu) SetDisponibilidad(context.Context, string, bool) error { return nil }

var _ MenuService = (*stubMenu)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func nuevaOrdenFixture(token string, mesa int, enlazadas []int) dto.NuevaOrdenRequest {
	return dto.NuevaOrdenRequest{
		OrderID:        token,
		NumeroMesa:     mesa,
		MesasEnlazadas: enlazadas,
		Items: []dto.ItemOrdenRequest{
			{ItemID: "WING01", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(150), Nombre: "Alitas BBQ"},
			{ItemID: "CER01", Cantidad: 3, PrecioUnitario: decimal.NewFromInt(60), Nombre: "Cerveza"},
		},
	}
}

func setupOrdenService() (*stubOrdenRepo, OrdenService) {
	repo := newStubOrdenRepo()
	menu := &stubMenu{destinos: map[string]string{
		"WING01": model.DestinoCocina,
		"CER01":  model.DestinoBarra,
	}}
	return repo, NewOrdenService(repo, menu)
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearOrdenNueva(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	id, dup, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	assert.False(t, dup)
	assert.NotZero(t, id)

	orden := repo.findActiva("5")
	require.NotNil(t, orden)
	require.Len(t, orden.Detalles, 2)
	assert.Equal(t, model.DestinoCocina, orden.Detalles[0].Destino)
	assert.Equal(t, model.DestinoBarra, orden.Detalles[1].Destino)
	assert.Equal(t, model.ItemPendiente, orden.Detalles[0].EstadoItem)
	assert.True(t, orden.Detalles[0].PrecioUnitarioCongelado.Equal(decimal.NewFromInt(150)))
}

func TestCrearOrdenIdempotente(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)

	_, dup, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	assert.True(t, dup)

	orden := repo.findActiva("5")
	assert.Len(t, orden.Detalles, 2, "el reenvio no debe duplicar lineas")
}

func TestCrearSegundaRondaMismaMesa(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	id1, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	id2, dup, err := svc.Crear(ctx, nuevaOrdenFixture("tok-2", 5, nil))
	require.NoError(t, err)

	assert.False(t, dup)
	assert.Equal(t, id1, id2, "la segunda ronda se agrega a la misma orden activa")
	assert.Len(t, repo.findActiva("5").Detalles, 4)
}

func TestCrearMesasEnlazadas(t *testing.T) {
	repo, svc := setupOrdenService()

	_, _, err := svc.Crear(context.Background(), nuevaOrdenFixture("tok-1", 4, []int{2}))
	require.NoError(t, err)
	assert.NotNil(t, repo.findActiva("2+4"))
}

func TestCrearItemDesconocidoVaACocina(t *testing.T) {
	repo, svc := setupOrdenService()

	req := nuevaOrdenFixture("tok-1", 9, nil)
	req.Items[0].ItemID = "XXX99"
	_, _, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	orden := repo.findActiva("9")
	assert.Equal(t, model.DestinoCocina, orden.Detalles[0].Destino)
}

// ── Separar ──────────────────────────────────────────────────────────────────

func TestSepararParcialConservaCantidades(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	origen := repo.findActiva("5")

	nuevaKey, err := svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "5",
		Items:   []dto.MovimientoLinea{{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5-1", nuevaKey)

	origen = repo.findActiva("5")
	destino := repo.findActiva("5-1")
	require.NotNil(t, destino)

	// 3 cervezas pre-split: 2 quedan, 1 se mueve.
	assert.Equal(t, 2, origen.Detalles[1].Cantidad)
	require.Len(t, destino.Detalles, 1)
	assert.Equal(t, 1, destino.Detalles[0].Cantidad)
	assert.True(t, destino.Detalles[0].PrecioUnitarioCongelado.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, model.DestinoBarra, destino.Detalles[0].Destino)
}

func TestSepararLineaCompletaConservaID(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	origen := repo.findActiva("5")
	idLinea := origen.Detalles[0].IDDetalle

	_, err = svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "5",
		Items:   []dto.MovimientoLinea{{IDDetalle: idLinea, Cantidad: 2}},
	})
	require.NoError(t, err)

	destino := repo.findActiva("5-1")
	require.Len(t, destino.Detalles, 1)
	assert.Equal(t, idLinea, destino.Detalles[0].IDDetalle, "mover la linea entera conserva su id")
	assert.Len(t, repo.findActiva("5").Detalles, 1)
}

func TestSepararVaciaOrdenSimpleLaCierra(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	origen := repo.findActiva("5")

	_, err = svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "5",
		Items: []dto.MovimientoLinea{
			{IDDetalle: origen.Detalles[0].IDDetalle, Cantidad: 2},
			{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, repo.findActiva("5"), "la mesa simple vaciada se cierra")
	assert.Equal(t, model.OrdenCancelada, repo.ordenes[origen.IDOrden].Estado)
	assert.NotNil(t, repo.findActiva("5-1"))
}

func TestSepararVaciaCompuestaQuedaActiva(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 4, []int{2}))
	require.NoError(t, err)
	origen := repo.findActiva("2+4")

	nuevaKey, err := svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "2+4",
		Items: []dto.MovimientoLinea{
			{IDDetalle: origen.Detalles[0].IDDetalle, Cantidad: 2},
			{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2+4-1", nuevaKey)

	// La compuesta vaciada sigue activa para no romper el vinculo visual.
	vacia := repo.findActiva("2+4")
	require.NotNil(t, vacia)
	assert.Empty(t, vacia.Detalles)
}

func TestSepararSufijosConsecutivos(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	origen := repo.findActiva("5")

	k1, err := svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "5",
		Items:   []dto.MovimientoLinea{{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 1}},
	})
	require.NoError(t, err)
	k2, err := svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "5",
		Items:   []dto.MovimientoLinea{{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "5-1", k1)
	assert.Equal(t, "5-2", k2)
}

func TestSepararMesaInexistente(t *testing.T) {
	_, svc := setupOrdenService()

	_, err := svc.Separar(context.Background(), dto.SepararOrdenRequest{
		MesaKey: "99",
		Items:   []dto.MovimientoLinea{{IDDetalle: 1, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrOrdenNoEncontrada)
}

// ── EliminarLineas ───────────────────────────────────────────────────────────

func TestEliminarLineaPendiente(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	orden := repo.findActiva("5")

	// Quitar 1 de 3 cervezas decrementa; quitar las 2 alitas borra la linea.
	err = svc.EliminarLineas(ctx, dto.EliminarItemsRequest{
		MesaKey: "5",
		Items: []dto.MovimientoLinea{
			{IDDetalle: orden.Detalles[1].IDDetalle, Cantidad: 1},
			{IDDetalle: orden.Detalles[0].IDDetalle, Cantidad: 5},
		},
	})
	require.NoError(t, err)

	orden = repo.findActiva("5")
	require.Len(t, orden.Detalles, 1)
	assert.Equal(t, "CER01", orden.Detalles[0].IDItemMenu)
	assert.Equal(t, 2, orden.Detalles[0].Cantidad)
}

func TestEliminarLineaListaFalla(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	orden := repo.findActiva("5")
	repo.detalles[orden.Detalles[0].IDDetalle].EstadoItem = model.ItemListo

	err = svc.EliminarLineas(ctx, dto.EliminarItemsRequest{
		MesaKey: "5",
		Items:   []dto.MovimientoLinea{{IDDetalle: orden.Detalles[0].IDDetalle, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrLineaNoPendiente)
}

// ── Cancelar / Cobrar ────────────────────────────────────────────────────────

func TestCancelarConLineasFalla(t *testing.T) {
	_, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)

	err = svc.Cancelar(ctx, "5")
	assert.ErrorIs(t, err, ErrOrdenConLineas)
}

func TestCobrarCalculaTotalCongelado(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)

	snap, err := svc.Cobrar(ctx, "5")
	require.NoError(t, err)
	require.NotNil(t, snap)

	// 2 x 150 + 3 x 60 = 480, siempre a precio congelado.
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(480)), "total %s", snap.Total)
	assert.Equal(t, model.OrdenCerrada, repo.ordenes[snap.IDOrden].Estado)
	assert.NotNil(t, repo.ordenes[snap.IDOrden].FechaCierre)
}

func TestCobrarMesaYaCobrada(t *testing.T) {
	_, svc := setupOrdenService()

	snap, err := svc.Cobrar(context.Background(), "5")
	require.NoError(t, err)
	assert.Nil(t, snap, "cobrar una mesa inexistente no es un error")
}

func TestCobrarUltimaSubcuentaCierraPadreVacio(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 4, []int{2}))
	require.NoError(t, err)
	origen := repo.findActiva("2+4")

	// Vaciar la compuesta hacia una subcuenta la deja activa y vacia.
	_, err = svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "2+4",
		Items: []dto.MovimientoLinea{
			{IDDetalle: origen.Detalles[0].IDDetalle, Cantidad: 2},
			{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.findActiva("2+4"))

	snap, err := svc.Cobrar(ctx, "2+4-1")
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Nil(t, repo.findActiva("2+4"), "el padre vacio se cierra con la ultima subcuenta")
}

func TestCobrarSubcuentaConHermanaActivaDejaPadre(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 4, []int{2}))
	require.NoError(t, err)
	origen := repo.findActiva("2+4")

	_, err = svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "2+4",
		Items:   []dto.MovimientoLinea{{IDDetalle: origen.Detalles[0].IDDetalle, Cantidad: 2}},
	})
	require.NoError(t, err)
	_, err = svc.Separar(ctx, dto.SepararOrdenRequest{
		MesaKey: "2+4",
		Items:   []dto.MovimientoLinea{{IDDetalle: origen.Detalles[1].IDDetalle, Cantidad: 3}},
	})
	require.NoError(t, err)

	_, err = svc.Cobrar(ctx, "2+4-1")
	require.NoError(t, err)

	assert.NotNil(t, repo.findActiva("2+4"), "con una hermana activa el padre no se toca")
	assert.NotNil(t, repo.findActiva("2+4-2"))
}

func TestActualizarNota(t *testing.T) {
	repo, svc := setupOrdenService()
	ctx := context.Background()

	_, _, err := svc.Crear(ctx, nuevaOrdenFixture("tok-1", 5, nil))
	require.NoError(t, err)
	orden := repo.findActiva("5")

	err = svc.ActualizarNota(ctx, dto.ActualizarNotaRequest{
		IDDetalle: orden.Detalles[0].IDDetalle,
		Nota:      "sin salsa",
	})
	require.NoError(t, err)
	assert.Equal(t, "sin salsa", *repo.detalles[orden.Detalles[0].IDDetalle].Notas)

	err = svc.ActualizarNota(ctx, dto.ActualizarNotaRequest{IDDetalle: 999, Nota: "x"})
	assert.ErrorIs(t, err, ErrLineaNoEncontrada)
}
