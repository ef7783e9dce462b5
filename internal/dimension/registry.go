package dimension

import (
	"strings"
	"unicode"

	"github.com/jvaldes/tablero/internal/domain"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FieldKind selects the coercion and defaulting policy for one target column.
type FieldKind int

const (
	// FieldText stores the resolved value as free text, NULL when absent.
	FieldText FieldKind = iota
	// FieldLabel stores the resolved value, or a generated placeholder built
	// from the dimension prefix and the 1-based row index when absent.
	FieldLabel
	// FieldNumber coerces to float64, defaulting to 0 when absent or unparseable.
	FieldNumber
	// FieldDate normalizes to "YYYY-MM-DD", NULL when absent or unparseable.
	FieldDate
	// FieldClassifier lower-cases the resolved text and tests it against the
	// negative keyword list, defaulting to the positive class.
	FieldClassifier
)

// FieldSpec declares how one canonical column is derived from a raw row.
type FieldSpec struct {
	Column        string
	Kind          FieldKind
	Variants      []string
	Prefix        string
	NegativeTerms []string
	NegativeClass string
	PositiveClass string
}

// DerivedSpec computes a column from the already-defaulted record.
type DerivedSpec struct {
	Column  string
	Compute func(rec domain.Record) any
}

// Dimension is one registry entry: the field list, variant tables, and
// derivation rules for a supported business dimension.
type Dimension struct {
	Label   string
	Fields  []FieldSpec
	Derived []DerivedSpec
}

// Columns returns the insert column order: the upload reference first, then
// mapped fields, then derived fields.
func (d Dimension) Columns() []string {
	columns := make([]string, 0, len(d.Fields)+len(d.Derived)+1)
	columns = append(columns, "upload_id")
	for _, field := range d.Fields {
		columns = append(columns, field.Column)
	}
	for _, derived := range d.Derived {
		columns = append(columns, derived.Column)
	}
	return columns
}

var registry = map[string]Dimension{
	"Finanzas": {
		Label: "Finanzas",
		Fields: []FieldSpec{
			{Column: "fecha", Kind: FieldDate, Variants: []string{"Fecha", "fecha", "FECHA", "Date", "Dia", "Día"}},
			{Column: "folio", Kind: FieldLabel, Prefix: "F-", Variants: []string{"Folio", "folio", "FOLIO", "No. Folio", "Referencia"}},
			{
				Column:        "tipo",
				Kind:          FieldClassifier,
				Variants:      []string{"Tipo", "tipo", "TIPO", "Tipo de Movimiento", "Movimiento", "Tipo Movimiento"},
				NegativeTerms: []string{"gasto", "egreso"},
				NegativeClass: "Gasto",
				PositiveClass: "Ingreso",
			},
			{Column: "categoria", Kind: FieldText, Variants: []string{"Categoria", "Categoría", "categoria", "CATEGORIA", "Rubro"}},
			{Column: "concepto", Kind: FieldText, Variants: []string{"Concepto", "concepto", "CONCEPTO", "Descripcion", "Descripción", "Detalle"}},
			{Column: "monto", Kind: FieldNumber, Variants: []string{"Monto", "monto", "MONTO", "Importe", "importe", "Cantidad", "Total"}},
			{Column: "metodo_pago", Kind: FieldText, Variants: []string{"Metodo de Pago", "Método de Pago", "metodo_pago", "Forma de Pago", "Pago"}},
		},
	},
	"Producción": {
		Label: "Producción",
		Fields: []FieldSpec{
			{Column: "fecha_produccion", Kind: FieldDate, Variants: []string{"Fecha", "fecha", "FECHA", "Fecha Produccion", "Fecha Producción", "Fecha de Produccion"}},
			{Column: "lote", Kind: FieldLabel, Prefix: "L-", Variants: []string{"Lote", "lote", "LOTE", "Batch", "No. Lote"}},
			{Column: "producto", Kind: FieldText, Variants: []string{"Producto", "producto", "PRODUCTO", "Articulo", "Artículo"}},
			{Column: "cant_programada", Kind: FieldNumber, Variants: []string{"Cantidad Programada", "cant_programada", "Programado", "Programada", "Plan"}},
			{Column: "cant_real", Kind: FieldNumber, Variants: []string{"Cantidad Real", "cant_real", "Real", "Producido", "Produccion Real"}},
			{Column: "merma", Kind: FieldNumber, Variants: []string{"Merma", "merma", "MERMA", "Desperdicio", "Scrap"}},
			{Column: "causa_merma", Kind: FieldText, Variants: []string{"Causa Merma", "causa_merma", "Causa", "Motivo", "Motivo Merma"}},
		},
		Derived: []DerivedSpec{
			{Column: "eficiencia", Compute: computeEfficiency},
		},
	},
	"RRHH": {
		Label: "RRHH",
		Fields: []FieldSpec{
			{Column: "fecha", Kind: FieldDate, Variants: []string{"Fecha", "fecha", "FECHA", "Date", "Dia", "Día"}},
			{Column: "empleado_id", Kind: FieldLabel, Prefix: "EMP-", Variants: []string{"ID", "id", "Empleado ID", "No. Empleado", "Clave"}},
			{Column: "nombre", Kind: FieldText, Variants: []string{"Nombre", "nombre", "NOMBRE", "Empleado", "Nombre Completo"}},
			{Column: "puesto", Kind: FieldText, Variants: []string{"Puesto", "puesto", "PUESTO", "Rol", "Cargo"}},
			{Column: "tipo_incidencia", Kind: FieldText, Variants: []string{"Incidencia", "incidencia", "Tipo Incidencia", "Tipo de Incidencia", "Evento"}},
			{Column: "horas_extra", Kind: FieldNumber, Variants: []string{"Horas Extra", "horas_extra", "Hrs Extra", "Horas", "Tiempo Extra"}},
			{Column: "monto_extra", Kind: FieldNumber, Variants: []string{"Monto Extra", "monto_extra", "Pago Extra", "Importe Extra", "Pago"}},
		},
	},
	"Desarrollo Digital": {
		Label: "Desarrollo Digital",
		Fields: []FieldSpec{
			{Column: "fecha_reporte", Kind: FieldDate, Variants: []string{"Fecha", "fecha", "FECHA", "Fecha Reporte", "Fecha de Reporte"}},
			{Column: "canal", Kind: FieldText, Variants: []string{"Canal", "canal", "CANAL", "Plataforma", "Red"}},
			{Column: "campana", Kind: FieldText, Variants: []string{"Campana", "Campaña", "campana", "campaña", "Campaign"}},
			{Column: "inversion", Kind: FieldNumber, Variants: []string{"Inversion", "Inversión", "inversion", "Gasto", "Presupuesto"}},
			{Column: "alcance", Kind: FieldNumber, Variants: []string{"Alcance", "alcance", "ALCANCE", "Reach", "Impresiones"}},
			{Column: "clics", Kind: FieldNumber, Variants: []string{"Clics", "clics", "Clicks", "clicks", "CLICS"}},
			{Column: "mensajes", Kind: FieldNumber, Variants: []string{"Mensajes", "mensajes", "MENSAJES", "Leads", "Conversaciones"}},
		},
	},
	"Logística": {
		Label: "Logística",
		Fields: []FieldSpec{
			{Column: "fecha_salida", Kind: FieldDate, Variants: []string{"Fecha", "fecha", "FECHA", "Fecha Salida", "Fecha de Salida", "Salida"}},
			{Column: "ruta", Kind: FieldText, Variants: []string{"Ruta", "ruta", "RUTA", "Destino", "destino"}},
			{Column: "chofer", Kind: FieldText, Variants: []string{"Chofer", "chofer", "CHOFER", "Conductor", "Operador"}},
			{Column: "unidad", Kind: FieldLabel, Prefix: "U-", Variants: []string{"Unidad", "unidad", "UNIDAD", "Vehiculo", "Vehículo", "Placas"}},
			{Column: "piezas_cargadas", Kind: FieldNumber, Variants: []string{"Piezas Cargadas", "piezas_cargadas", "Cargadas", "Piezas", "Carga"}},
			{Column: "piezas_devueltas", Kind: FieldNumber, Variants: []string{"Piezas Devueltas", "piezas_devueltas", "Devueltas", "Devoluciones", "Retorno"}},
			{Column: "costo_combustible", Kind: FieldNumber, Variants: []string{"Costo Combustible", "costo_combustible", "Combustible", "Gasolina", "Diesel"}},
			{Column: "estatus", Kind: FieldText, Variants: []string{"Estatus", "estatus", "Status", "status", "Estado"}},
		},
	},
}

// labelOrder fixes the order Labels reports, matching the dashboard tabs.
var labelOrder = []string{"Finanzas", "Producción", "RRHH", "Desarrollo Digital", "Logística"}

// Lookup returns the registry entry for a dimension label.
func Lookup(label string) (Dimension, bool) {
	dim, ok := registry[label]
	return dim, ok
}

// Labels lists the supported dimension labels.
func Labels() []string {
	return append([]string(nil), labelOrder...)
}

// tableRenames maps normalized labels whose physical table diverges from the
// plain normalization rule.
var tableRenames = map[string]string{
	"desarrollo digital": "desarrollo",
}

var diacriticsStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TableName resolves the physical target table for a dimension label:
// lower-case, diacritics stripped, plus a small set of hard-coded renames.
func TableName(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	if stripped, _, err := transform.String(diacriticsStripper, name); err == nil {
		name = stripped
	}
	if renamed, ok := tableRenames[name]; ok {
		return renamed
	}
	return name
}

func computeEfficiency(rec domain.Record) any {
	scheduled := numberValue(rec["cant_programada"])
	if scheduled <= 0 {
		return float64(0)
	}
	return numberValue(rec["cant_real"]) / scheduled * 100
}

func numberValue(v any) float64 {
	f, _ := v.(float64)
	return f
}
