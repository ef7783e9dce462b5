package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableName(t *testing.T) {
	cases := map[string]string{
		"Finanzas":           "finanzas",
		"Producción":         "produccion",
		"RRHH":               "rrhh",
		"Desarrollo Digital": "desarrollo",
		"Logística":          "logistica",
	}
	for label, want := range cases {
		assert.Equal(t, want, TableName(label), "label %s", label)
	}
}

func TestLookupCoversAllLabels(t *testing.T) {
	for _, label := range Labels() {
		dim, ok := Lookup(label)
		require.True(t, ok, "label %s", label)
		assert.Equal(t, label, dim.Label)
		assert.NotEmpty(t, dim.Fields)
	}

	_, ok := Lookup("Ventas")
	assert.False(t, ok)
}

func TestColumnsOrder(t *testing.T) {
	dim, ok := Lookup("Producción")
	require.True(t, ok)

	columns := dim.Columns()
	require.NotEmpty(t, columns)
	assert.Equal(t, "upload_id", columns[0])
	assert.Equal(t, "eficiencia", columns[len(columns)-1])
}
