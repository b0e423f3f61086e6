package handlers

import (
	"corner-shop/app/server/models"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type itemInfo struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

func itemInfoFromModel(item *models.Item) *itemInfo {
	return &itemInfo{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
	}
}

type itemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

type itemListResponse struct {
	Limit   int        `json:"limit"`
	PageMax int64      `json:"page_max"`
	List    []itemInfo `json:"list"`
}

func (a *App) itemMapFields(req *itemInput, item *models.Item) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
}

func (a *App) ItemList(c echo.Context) error {
	rctx := c.Request().Context()

	var (
		items      []models.Item
		itemsCount int64
	)

	showAll, page, limit := a.parsePagination(c.QueryParam("page"), c.QueryParam("limit"))
	queryBase := a.db.WithContext(rctx).Model(&models.Item{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&items).Error; err != nil {
		a.l.Error("failed to get item list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Item{}).Count(&itemsCount).Error; err != nil {
		a.l.Error("failed to count item", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resItems := []itemInfo{}
	for i := range items {
		resItems = append(resItems, *itemInfoFromModel(&items[i]))
	}

	return c.JSON(http.StatusOK, &itemListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(itemsCount, showAll, limit),
		List:    resItems,
	})
}

func (a *App) ItemGet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的商品
	var item models.Item
	if err := a.db.WithContext(rctx).First(&item, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get item", zap.Uint64("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, itemInfoFromModel(&item))
}

func (a *App) ItemGetByName(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var item models.Item
	if err := a.db.WithContext(rctx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get item by name", zap.String("name", name), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, itemInfoFromModel(&item))
}

func (a *App) ItemCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req itemInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Name == nil {
		return a.er(c, http.StatusBadRequest)
	}

	// 创建商品
	var item models.Item
	a.itemMapFields(&req, &item)

	if err := a.db.WithContext(rctx).Create(&item).Error; err != nil {
		a.l.Error("failed to create item", zap.Any("item", item), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, itemInfoFromModel(&item))
}

func (a *App) ItemUpdate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req itemInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 从数据库中获得指定的商品
	var item models.Item
	if err := a.db.WithContext(rctx).First(&item, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get item", zap.Uint64("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.itemMapFields(&req, &item)

	// 更新商品信息
	if err := a.db.WithContext(rctx).Save(&item).Error; err != nil {
		a.l.Error("failed to update item", zap.Any("item", item), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, itemInfoFromModel(&item))
}

func (a *App) ItemDelete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 删除商品
	if err := a.db.WithContext(rctx).Delete(&models.Item{}, uint(id)).Error; err != nil {
		a.l.Error("failed to delete item", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}
