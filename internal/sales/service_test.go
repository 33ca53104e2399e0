package sales

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/internal/employees"
	"github.com/tienditamejorada/tiendita-backend/internal/products"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
)

type fixture struct {
	svc      Service
	conn     *gorm.DB
	tiendaID uint
	empleado *models.Usuario
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:sales_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Tienda{},
		&models.Usuario{},
		&models.Producto{},
		&models.Venta{},
		&models.VentaItem{},
	)
	if err != nil {
		t.Fatalf("migrating: %v", err)
	}

	tienda := models.Tienda{Nombre: "Tiendita Este"}
	if err := conn.Create(&tienda).Error; err != nil {
		t.Fatalf("creating tienda: %v", err)
	}
	empleado := models.Usuario{
		TiendaID:       tienda.ID,
		Username:       "cajero",
		PasswordHash:   "irrelevant",
		NombreCompleto: "Cajero Uno",
		Rol:            enums.RoleEmpleado,
		Estado:         enums.RecordActivo,
	}
	if err := conn.Create(&empleado).Error; err != nil {
		t.Fatalf("creating empleado: %v", err)
	}

	client := db.NewWithConn(conn)
	svc := NewService(ServiceParams{
		Client:    client,
		Sales:     NewRepository(conn),
		Products:  products.NewRepository(conn),
		Employees: employees.NewRepository(conn),
	})
	return &fixture{svc: svc, conn: conn, tiendaID: tienda.ID, empleado: &empleado}
}

func (f *fixture) seedProducto(t *testing.T, nombre string, precio float64, stock int) *models.Producto {
	t.Helper()
	row := models.Producto{
		TiendaID:    f.tiendaID,
		Codigo:      nombre,
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromFloat(precio),
		StockActual: stock,
		StockMinimo: 1,
		Estado:      enums.RecordActivo,
	}
	if err := f.conn.Create(&row).Error; err != nil {
		t.Fatalf("creating producto: %v", err)
	}
	return &row
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	var row models.Producto
	if err := f.conn.First(&row, id).Error; err != nil {
		t.Fatalf("reloading producto: %v", err)
	}
	return row.StockActual
}

func TestCreateSale(t *testing.T) {
	f := newFixture(t)
	refresco := f.seedProducto(t, "Refresco", 18.50, 10)
	papas := f.seedProducto(t, "Papas", 15.00, 5)

	descuento := decimal.NewFromInt(5)
	res, err := f.svc.Create(context.Background(), f.tiendaID, CreateRequest{
		EmpleadoID: f.empleado.ID,
		Productos: []ItemRequest{
			{ProductoID: refresco.ID, Cantidad: 2},
			{ProductoID: papas.ID, Cantidad: 1},
		},
		Descuento: &descuento,
		Notas:     "cliente frecuente",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 2*18.50 + 15.00 - 5 = 47.00
	if !res.TotalFinal.Equal(decimal.NewFromFloat(47.00)) {
		t.Fatalf("expected total 47.00, got %s", res.TotalFinal)
	}
	if f.stockOf(t, refresco.ID) != 8 || f.stockOf(t, papas.ID) != 4 {
		t.Fatal("expected stock decremented per line quantity")
	}

	var venta models.Venta
	if err := f.conn.Preload("Items").First(&venta, res.VentaID).Error; err != nil {
		t.Fatalf("loading venta: %v", err)
	}
	if venta.Estado != enums.SaleCompletada {
		t.Fatalf("expected completada, got %s", venta.Estado)
	}
	if venta.MetodoPago != enums.PagoEfectivo {
		t.Fatalf("expected default metodo_pago efectivo, got %s", venta.MetodoPago)
	}
	if len(venta.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(venta.Items))
	}
}

func TestCreateSaleInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	refresco := f.seedProducto(t, "Refresco", 18.50, 10)
	papas := f.seedProducto(t, "Papas", 15.00, 1)

	_, err := f.svc.Create(context.Background(), f.tiendaID, CreateRequest{
		EmpleadoID: f.empleado.ID,
		Productos: []ItemRequest{
			{ProductoID: refresco.ID, Cantidad: 3},
			{ProductoID: papas.ID, Cantidad: 2},
		},
	})
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed := apperrors.As(err); typed == nil || typed.Message() != "Stock insuficiente para Papas" {
		t.Fatalf("unexpected message: %v", err)
	}

	// First line's decrement must have rolled back with the ticket.
	if f.stockOf(t, refresco.ID) != 10 || f.stockOf(t, papas.ID) != 1 {
		t.Fatal("expected no stock change after rollback")
	}

	var count int64
	if err := f.conn.Model(&models.Venta{}).Count(&count).Error; err != nil {
		t.Fatalf("counting ventas: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no venta rows, got %d", count)
	}
}

func TestCreateSaleLastUnit(t *testing.T) {
	f := newFixture(t)
	ultimo := f.seedProducto(t, "Último", 10.00, 1)

	req := CreateRequest{
		EmpleadoID: f.empleado.ID,
		Productos:  []ItemRequest{{ProductoID: ultimo.ID, Cantidad: 1}},
	}

	if _, err := f.svc.Create(context.Background(), f.tiendaID, req); err != nil {
		t.Fatalf("first sale: %v", err)
	}

	// A second ticket for the same unit must fail and stock stays at zero.
	_, err := f.svc.Create(context.Background(), f.tiendaID, req)
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if got := f.stockOf(t, ultimo.ID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	f := newFixture(t)
	producto := f.seedProducto(t, "Algo", 5.00, 10)

	cases := []CreateRequest{
		{},
		{EmpleadoID: f.empleado.ID},
		{EmpleadoID: f.empleado.ID, Productos: []ItemRequest{{ProductoID: producto.ID, Cantidad: 0}}},
	}
	for i, req := range cases {
		_, err := f.svc.Create(context.Background(), f.tiendaID, req)
		if apperrors.CodeOf(err) != apperrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
		if typed := apperrors.As(err); typed == nil || typed.Message() != "Datos de venta incompletos" {
			t.Fatalf("case %d: unexpected message: %v", i, err)
		}
	}

	// Unknown employee for the tienda.
	_, err := f.svc.Create(context.Background(), f.tiendaID, CreateRequest{
		EmpleadoID: f.empleado.ID + 99,
		Productos:  []ItemRequest{{ProductoID: producto.ID, Cantidad: 1}},
	})
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected validation error for unknown employee, got %v", err)
	}

	// Discount larger than the subtotal.
	grande := decimal.NewFromInt(1000)
	_, err = f.svc.Create(context.Background(), f.tiendaID, CreateRequest{
		EmpleadoID: f.empleado.ID,
		Productos:  []ItemRequest{{ProductoID: producto.ID, Cantidad: 1}},
		Descuento:  &grande,
	})
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("expected discount validation error, got %v", err)
	}
	if got := f.stockOf(t, producto.ID); got != 10 {
		t.Fatalf("expected stock unchanged after failed discount, got %d", got)
	}
}

func TestListSalesNewestFirst(t *testing.T) {
	f := newFixture(t)
	producto := f.seedProducto(t, "Café", 40.00, 100)

	req := CreateRequest{
		EmpleadoID: f.empleado.ID,
		Productos:  []ItemRequest{{ProductoID: producto.ID, Cantidad: 1}},
	}
	first, err := f.svc.Create(context.Background(), f.tiendaID, req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := f.svc.Create(context.Background(), f.tiendaID, req)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	rows, err := f.svc.List(context.Background(), f.tiendaID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(rows))
	}
	if rows[0].ID != second.VentaID || rows[1].ID != first.VentaID {
		t.Fatalf("expected newest first, got %d,%d", rows[0].ID, rows[1].ID)
	}
	if len(rows[0].Items) != 1 {
		t.Fatalf("expected items preloaded, got %d", len(rows[0].Items))
	}
}
