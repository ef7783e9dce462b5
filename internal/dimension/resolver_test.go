package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePriorityOrder(t *testing.T) {
	row := map[string]any{"Tipo": "Gasto", "tipo": "Ingreso"}

	assert.Equal(t, "Ingreso", Resolve(row, []string{"tipo", "Tipo"}))
	assert.Equal(t, "Gasto", Resolve(row, []string{"Tipo", "tipo"}))
}

func TestResolveSkipsEmptyValues(t *testing.T) {
	row := map[string]any{"Monto": "", "monto": nil, "Importe": "150"}

	assert.Equal(t, "150", Resolve(row, []string{"Monto", "monto", "Importe"}))
}

func TestResolveNoMatch(t *testing.T) {
	row := map[string]any{"Fecha": "2023-03-25"}

	assert.Nil(t, Resolve(row, []string{"Monto", "Importe"}))
	assert.Nil(t, Resolve(map[string]any{}, []string{"Monto"}))
}

func TestResolveIsCaseSensitive(t *testing.T) {
	row := map[string]any{"FECHA": "2023-03-25"}

	assert.Nil(t, Resolve(row, []string{"Fecha", "fecha"}))
	assert.Equal(t, "2023-03-25", Resolve(row, []string{"FECHA"}))
}

func TestResolveKeepsNonStringValues(t *testing.T) {
	row := map[string]any{"Monto": 42.5}

	assert.Equal(t, 42.5, Resolve(row, []string{"Monto"}))
}
