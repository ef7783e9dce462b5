package dimension

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(t *testing.T, label string) Dimension {
	t.Helper()
	dim, ok := Lookup(label)
	require.True(t, ok, "dimension %s not registered", label)
	return dim
}

func TestMapRowFinanzasClassification(t *testing.T) {
	dim := mustLookup(t, "Finanzas")
	uploadID := uuid.New()

	record, _ := MapRow(dim, map[string]any{"Tipo": "Egreso de caja"}, uploadID, 1)
	assert.Equal(t, "Gasto", record["tipo"])

	record, _ = MapRow(dim, map[string]any{"Tipo": "Venta de producto"}, uploadID, 1)
	assert.Equal(t, "Ingreso", record["tipo"])

	record, _ = MapRow(dim, map[string]any{"Tipo": "GASTO fijo"}, uploadID, 1)
	assert.Equal(t, "Gasto", record["tipo"])

	// No type field at all defaults to the positive class.
	record, _ = MapRow(dim, map[string]any{}, uploadID, 1)
	assert.Equal(t, "Ingreso", record["tipo"])
}

func TestMapRowFinanzasDefaults(t *testing.T) {
	dim := mustLookup(t, "Finanzas")
	uploadID := uuid.New()

	record, issues := MapRow(dim, map[string]any{
		"Fecha":    "25/03/2023",
		"Concepto": "Venta mostrador",
	}, uploadID, 3)

	assert.Empty(t, issues)
	assert.Equal(t, uploadID, record["upload_id"])
	assert.Equal(t, "2023-03-25", record["fecha"])
	assert.Equal(t, "F-3", record["folio"])
	assert.Equal(t, float64(0), record["monto"])
	assert.Equal(t, "Venta mostrador", record["concepto"])
	assert.Nil(t, record["categoria"])
	assert.Nil(t, record["metodo_pago"])
}

func TestMapRowIdempotent(t *testing.T) {
	dim := mustLookup(t, "Finanzas")
	uploadID := uuid.New()
	row := map[string]any{"Monto": "1,250.50", "Tipo": "Gasto operativo"}

	first, firstIssues := MapRow(dim, row, uploadID, 7)
	second, secondIssues := MapRow(dim, row, uploadID, 7)

	assert.Equal(t, first, second)
	assert.Equal(t, firstIssues, secondIssues)
	assert.Equal(t, 1250.50, first["monto"])
	assert.Equal(t, "F-7", first["folio"])
}

func TestMapRowEfficiencyBoundary(t *testing.T) {
	dim := mustLookup(t, "Producción")
	uploadID := uuid.New()

	record, _ := MapRow(dim, map[string]any{
		"Cantidad Programada": "0",
		"Cantidad Real":       "150",
	}, uploadID, 1)
	assert.Equal(t, float64(0), record["eficiencia"])

	record, _ = MapRow(dim, map[string]any{
		"Cantidad Programada": "200",
		"Cantidad Real":       "150",
	}, uploadID, 1)
	assert.Equal(t, float64(75), record["eficiencia"])

	// Absent quantities default to 0 and must not fault the derivation.
	record, _ = MapRow(dim, map[string]any{}, uploadID, 1)
	assert.Equal(t, float64(0), record["eficiencia"])
	assert.Equal(t, "L-1", record["lote"])
}

func TestMapRowDegradesBadValues(t *testing.T) {
	dim := mustLookup(t, "Finanzas")
	uploadID := uuid.New()

	record, issues := MapRow(dim, map[string]any{
		"Fecha": "sin fecha",
		"Monto": "n/a",
	}, uploadID, 2)

	assert.Nil(t, record["fecha"])
	assert.Equal(t, float64(0), record["monto"])
	require.Len(t, issues, 2)
	assert.Equal(t, 2, issues[0].Row)
}

func TestMapRowsIndependentRows(t *testing.T) {
	dim := mustLookup(t, "Logística")
	uploadID := uuid.New()

	rows := []map[string]any{
		{"Ruta": "CDMX - Puebla", "Piezas Cargadas": "120"},
		{"Ruta": "CDMX - Toluca"},
		{},
	}

	records, issues := MapRows(dim, rows, uploadID)

	require.Len(t, records, 3)
	assert.Empty(t, issues)
	assert.Equal(t, float64(120), records[0]["piezas_cargadas"])
	assert.Equal(t, "U-1", records[0]["unidad"])
	assert.Equal(t, "U-2", records[1]["unidad"])
	assert.Equal(t, "U-3", records[2]["unidad"])
	assert.Nil(t, records[2]["ruta"])
	assert.Equal(t, float64(0), records[2]["costo_combustible"])
}

func TestMapRowRRHHAndDesarrollo(t *testing.T) {
	uploadID := uuid.New()

	rrhh := mustLookup(t, "RRHH")
	record, _ := MapRow(rrhh, map[string]any{
		"Nombre":      "Ana Torres",
		"Horas Extra": "4",
	}, uploadID, 5)
	assert.Equal(t, "EMP-5", record["empleado_id"])
	assert.Equal(t, "Ana Torres", record["nombre"])
	assert.Equal(t, float64(4), record["horas_extra"])
	assert.Equal(t, float64(0), record["monto_extra"])

	digital := mustLookup(t, "Desarrollo Digital")
	record, _ = MapRow(digital, map[string]any{
		"Canal":     "Facebook",
		"Inversion": "$1,000",
		"Clics":     "350",
	}, uploadID, 1)
	assert.Equal(t, "Facebook", record["canal"])
	assert.Equal(t, float64(1000), record["inversion"])
	assert.Equal(t, float64(350), record["clics"])
	assert.Equal(t, float64(0), record["mensajes"])
}
