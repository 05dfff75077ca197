package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/wms/internal/barcode"
	"github.com/mamadbah2/wms/internal/config"
	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/repository/sheets/sheetstest"
	"github.com/mamadbah2/wms/internal/service/catalog"
	"github.com/mamadbah2/wms/internal/service/reporting"
	"github.com/mamadbah2/wms/internal/service/warehouse"
)

type stubDecoder struct {
	code string
	err  error
}

func (s stubDecoder) Decode(io.Reader) (string, error) { return s.code, s.err }

type stubReporter struct {
	data []byte
	err  error
}

func (s stubReporter) ExportStock(context.Context) ([]byte, error) { return s.data, s.err }

func (s stubReporter) ReplenishmentAlert(context.Context) (models.ReplenishmentSnapshot, error) {
	return models.ReplenishmentSnapshot{Notified: true}, s.err
}

func (s stubReporter) ReplenishmentHistory(_ context.Context, limit int) ([]models.ReplenishmentSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return make([]models.ReplenishmentSnapshot, limit), nil
}

type testServer struct {
	engine *gin.Engine
	wms    *sheetstest.Memory
	master *sheetstest.Memory
}

func newTestServer(t *testing.T, decoder BarcodeDecoder, stock ...[]string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	master := sheetstest.NewMemory()
	master.Seed("Location_Master",
		[]string{"Location_ID", "Zone", "Rack", "Level", "Bin", "Type"},
		[]string{"A-01", "A", "1", "1", "1", "PICK"},
		[]string{"R-01", "R", "1", "3", "1", "RESERVE"},
	)
	master.Seed("Item_Master",
		[]string{"Barcode", "Description", "Category", "Zone", "Rack", "Level", "Image", "Replen_Point", "Timestamp"},
		[]string{"A1", "Widget", "Parts", "", "", "", "-", "10", "2026-01-01 10:00:00"},
	)

	wms := sheetstest.NewMemory()
	wms.Seed("Current_Stock", append([][]string{{"Item_ID", "Item_Name", "Qty", "Location", "Status", "Container", "Replen_Point", "Timestamp"}}, stock...)...)
	wms.Seed("Transaction_Log", []string{"Timestamp", "Action", "Item", "Qty", "From", "To", "Actor"})

	cat := catalog.NewService(master, config.CatalogConfig{LocationTTL: time.Minute, ItemTTL: time.Minute}, time.UTC, nil)
	svc := warehouse.NewService(wms, cat, nil, "Admin", time.UTC, nil)

	wh := NewWarehouseHandler(svc, nil)
	items := NewItemHandler(svc, decoder, nil)

	r := gin.New()
	r.GET("/items/:barcode", wh.LookupItem)
	r.POST("/items", items.AddItem)
	r.POST("/barcode/decode", items.DecodeBarcode)
	r.POST("/receive", wh.Receive)
	r.POST("/locations/:code/validate", wh.ValidateLocation)
	r.GET("/stock", wh.Stock)
	r.POST("/picking", wh.Pick)
	r.POST("/shipping", wh.ShipOut)
	r.GET("/replenishment/queue", wh.ReplenishmentQueue)

	return &testServer{engine: r, wms: wms, master: master}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(warehouse.ErrItemNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(warehouse.ErrNothingToShip))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(barcode.ErrNoBarcode))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.New("googleapi: 503")))
}

func TestReceiveEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/receive", gin.H{"item_id": "A1", "qty": 12, "container": "PLT-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var row models.StockRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, models.DockIn, row.Location)
	assert.Len(t, s.wms.Rows("Current_Stock"), 2)

	w = s.do(http.MethodPost, "/receive", gin.H{"item_id": "A1", "qty": -3})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/receive", gin.H{"qty": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupUnknownItem(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/items/ZZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/items/A1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default_replen_point":1`)
}

func TestValidateLocation(t *testing.T) {
	s := newTestServer(t, nil, []string{"B2", "Gadget", "4", "R-01", "Available", "-", "1", ""})

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/locations/A-01/validate", nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/locations/R-01/validate", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/locations/Z-99/validate", nil).Code)
}

func TestPickAndShip(t *testing.T) {
	s := newTestServer(t, nil, []string{"A1", "Widget", "5", "A-01", "Available", "-", "2", ""})

	w := s.do(http.MethodPost, "/picking", gin.H{"item_id": "A1", "location": "A-01", "qty": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/shipping", gin.H{"item_id": "A1", "qty": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/picking", gin.H{"item_id": "A1", "location": "A-01", "qty": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"remaining":0,"row_deleted":true}`, w.Body.String())

	w = s.do(http.MethodPost, "/shipping", gin.H{"item_id": "A1", "qty": 5})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStockReadFailureIsBadGateway(t *testing.T) {
	s := newTestServer(t, nil)
	s.wms.FailOn["read"] = errors.New("quota exceeded")

	w := s.do(http.MethodGet, "/stock", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "quota")
}

func TestReplenishmentQueueEndpoint(t *testing.T) {
	s := newTestServer(t, nil,
		[]string{"A1", "Widget", "2", "A-01", "Available", "-", "10", ""},
		[]string{"A1", "Widget", "40", "R-01", "Available", "-", "10", ""},
	)

	w := s.do(http.MethodGet, "/replenishment/queue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tasks []models.ReplenishmentTask `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, 40, body.Tasks[0].ReserveQty)
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "upload.jpg")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAddItemDefaultsReplenPoint(t *testing.T) {
	s := newTestServer(t, nil)

	req := multipartRequest(t, "/items", map[string]string{"barcode": "C3", "name": "Bracket", "category": "Parts"}, "", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rows := s.master.Rows("Item_Master")
	last := rows[len(rows)-1]
	assert.Equal(t, "C3", last[0])
	assert.Equal(t, "10", last[7])
}

func TestAddItemPhotoWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)

	req := multipartRequest(t, "/items", map[string]string{"barcode": "C3", "name": "Bracket"}, "photo", []byte("jpeg"))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAddItemRejectsBadReplenPoint(t *testing.T) {
	s := newTestServer(t, nil)

	req := multipartRequest(t, "/items", map[string]string{"barcode": "C3", "name": "Bracket", "replen_point": "many"}, "", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecodeBarcode(t *testing.T) {
	s := newTestServer(t, stubDecoder{code: "885000123"})

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, multipartRequest(t, "/barcode/decode", nil, "image", []byte("img")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"885000123"}`, w.Body.String())

	s = newTestServer(t, stubDecoder{err: barcode.ErrNoBarcode})
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, multipartRequest(t, "/barcode/decode", nil, "image", []byte("img")))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, multipartRequest(t, "/barcode/decode", nil, "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportStockDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(stubReporter{data: []byte("PK")}, nil)
	h.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/stock/export", h.ExportStock)
	r.POST("/replenishment/alert", h.ReplenishmentAlert)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stock/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "stock_20261019_093000.xlsx"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/replenishment/alert", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notified":true`)
}

func TestReplenishmentHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/replenishment/history", NewReportHandler(stubReporter{}, nil).ReplenishmentHistory)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/replenishment/history?limit=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "taken_at"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/replenishment/history?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = gin.New()
	r.GET("/replenishment/history", NewReportHandler(stubReporter{err: reporting.ErrHistoryUnavailable}, nil).ReplenishmentHistory)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/replenishment/history", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
