package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *stubLogRepo, *stubRecordRepo) {
	service, logs, issues, records := newTestService()
	return NewHandler(service, logs, issues, records), logs, records
}

func multipartUpload(t *testing.T, fileName string, payload []byte, dimensionLabel string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	if dimensionLabel != "" {
		require.NoError(t, writer.WriteField("dimension", dimensionLabel))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func TestUploadEndpointSuccess(t *testing.T) {
	handler, logs, _ := newTestHandler()
	router := handler.Routes()

	payload := []byte("Fecha,Concepto,Monto\n25/03/2023,Venta,1500\n26/03/2023,Renta,\n27/03/2023,Venta,3200\n")
	req := multipartUpload(t, "marzo.csv", payload, "Finanzas")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	body := decodeBody(t, res)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["count"])
	require.Len(t, logs.created, 1)
}

func TestUploadEndpointMissingFile(t *testing.T) {
	handler, _, _ := newTestHandler()
	router := handler.Routes()

	req := multipartUpload(t, "", nil, "Finanzas")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeBody(t, res)["error"], "file")
}

func TestUploadEndpointMissingDimension(t *testing.T) {
	handler, _, _ := newTestHandler()
	router := handler.Routes()

	req := multipartUpload(t, "marzo.csv", []byte("Fecha\n25/03/2023\n"), "")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeBody(t, res)["error"], "dimension")
}

func TestUploadEndpointUnknownDimension(t *testing.T) {
	handler, logs, _ := newTestHandler()
	router := handler.Routes()

	req := multipartUpload(t, "marzo.csv", []byte("Fecha\n25/03/2023\n"), "Ventas")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Empty(t, logs.created)
}

func TestUploadEndpointParseFailure(t *testing.T) {
	handler, logs, _ := newTestHandler()
	router := handler.Routes()

	req := multipartUpload(t, "roto.xlsx", []byte("garbage"), "Finanzas")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	require.Len(t, logs.created, 1)
}

func TestListUploadsEndpoint(t *testing.T) {
	handler, logs, _ := newTestHandler()
	router := handler.Routes()

	_, err := logs.Create(context.Background(), "marzo.csv", "Finanzas")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/uploads?dimension=Finanzas", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	body := decodeBody(t, res)
	uploads, ok := body["uploads"].([]any)
	require.True(t, ok)
	assert.Len(t, uploads, 1)
}

func TestListUploadsEndpointUnknownDimension(t *testing.T) {
	handler, _, _ := newTestHandler()
	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/uploads?dimension=Ventas", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDeleteUploadEndpoint(t *testing.T) {
	handler, logs, _ := newTestHandler()
	router := handler.Routes()

	created, err := logs.Create(context.Background(), "marzo.csv", "Finanzas")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/uploads/"+created.ID.String(), nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, logs.created)

	// Second delete finds nothing.
	res = httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/uploads/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestListRecordsEndpoint(t *testing.T) {
	handler, _, records := newTestHandler()
	router := handler.Routes()

	records.inserted = append(records.inserted, map[string]any{"concepto": "Venta", "monto": 1500.0})

	req := httptest.NewRequest(http.MethodGet, "/records?dimension=Finanzas", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	body := decodeBody(t, res)
	list, ok := body["records"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}
