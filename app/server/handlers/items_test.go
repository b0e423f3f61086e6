package handlers

import (
	"corner-shop/app/server/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *handlerTestEnv) getWithID(t *testing.T, path string, id uint, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
	require.NoError(t, handler(c))

	return rec
}

func TestItemCreate(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec := env.postJSON(t, "/items", `{"name":"茶壶","description":"青瓷","price":12.5,"quantity":3}`, env.app.ItemCreate)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res itemInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotZero(t, res.ID)
	assert.Equal(t, "茶壶", res.Name)
	assert.Equal(t, 12.5, res.Price)
	assert.Equal(t, 3, res.Quantity)
}

func TestItemCreateRequiresName(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec := env.postJSON(t, "/items", `{"price":1.0}`, env.app.ItemCreate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemGet(t *testing.T) {
	env := newHandlerTestEnv(t)

	item := models.Item{Name: "茶壶", Price: 12.5, Quantity: 3}
	require.NoError(t, env.db.Create(&item).Error)

	rec := env.getWithID(t, "/items/:id", item.ID, env.app.ItemGet)
	require.Equal(t, http.StatusOK, rec.Code)

	var res itemInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, item.ID, res.ID)

	rec = env.getWithID(t, "/items/:id", item.ID+1000, env.app.ItemGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemGetByName(t *testing.T) {
	env := newHandlerTestEnv(t)

	item := models.Item{Name: "unique-name", Price: 1, Quantity: 1}
	require.NoError(t, env.db.Create(&item).Error)

	req := httptest.NewRequest(http.MethodGet, "/items/name/unique-name", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("unique-name")
	require.NoError(t, env.app.ItemGetByName(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestItemUpdate(t *testing.T) {
	env := newHandlerTestEnv(t)

	item := models.Item{Name: "old", Price: 1, Quantity: 1}
	require.NoError(t, env.db.Create(&item).Error)

	req := httptest.NewRequest(http.MethodPut, "/items/1",
		strings.NewReader(`{"name":"new","quantity":9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(item.ID), 10))
	require.NoError(t, env.app.ItemUpdate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Item
	require.NoError(t, env.db.First(&updated, item.ID).Error)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, 9, updated.Quantity)
	// 未提供的字段保持原值
	assert.Equal(t, float64(1), updated.Price)
}

func TestItemDelete(t *testing.T) {
	env := newHandlerTestEnv(t)

	item := models.Item{Name: "doomed"}
	require.NoError(t, env.db.Create(&item).Error)

	req := httptest.NewRequest(http.MethodDelete, "/items/1", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(item.ID), 10))
	require.NoError(t, env.app.ItemDelete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestItemListPagination(t *testing.T) {
	env := newHandlerTestEnv(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, env.db.Create(&models.Item{Name: "item-" + strconv.Itoa(i)}).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/items?page=1&limit=2", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	require.NoError(t, env.app.ItemList(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res itemListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, int64(3), res.PageMax)
	assert.Len(t, res.List, 2)
}
