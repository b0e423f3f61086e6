package handlers

import (
	"corner-shop/app/server/models"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type imageInfo struct {
	ID        uint      `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func imageInfoFromModel(image *models.Image) *imageInfo {
	return &imageInfo{
		ID:        image.ID,
		URL:       image.URL,
		CreatedAt: image.CreatedAt,
	}
}

func (a *App) ImageList(c echo.Context) error {
	rctx := c.Request().Context()

	var images []models.Image
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&images).Error; err != nil {
		a.l.Error("failed to get image list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resImages := []imageInfo{}
	for i := range images {
		resImages = append(resImages, *imageInfoFromModel(&images[i]))
	}

	return c.JSON(http.StatusOK, resImages)
}

func (a *App) ImageGet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var image models.Image
	if err := a.db.WithContext(rctx).First(&image, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get image", zap.Uint64("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, imageInfoFromModel(&image))
}

// ImageUpload 接收 multipart 表单里的 media 文件，保存到图片目录并关联到指定商品
func (a *App) ImageUpload(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 确认商品存在
	var item models.Item
	if err := a.db.WithContext(rctx).First(&item, "id = ?", uint(itemID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get item", zap.Uint64("id", itemID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 提取上传的文件
	fileHeader, err := c.FormFile("media")
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	if fileHeader.Filename == "" {
		return a.er(c, http.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	defer src.Close()

	// 文件名加 uuid 前缀，避免不同商品的同名文件互相覆盖
	storedName := uuid.NewString() + "_" + filepath.Base(fileHeader.Filename)
	storedPath := filepath.Join(a.imageDir, storedName)

	if err := os.MkdirAll(a.imageDir, 0o755); err != nil {
		a.l.Error("failed to create image dir", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	dst, err := os.Create(storedPath)
	if err != nil {
		a.l.Error("failed to create image file", zap.String("path", storedPath), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		a.l.Error("failed to write image file", zap.String("path", storedPath), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建图片记录和商品关联
	image := models.Image{
		URL: storedName,
	}
	if err := a.db.WithContext(rctx).Create(&image).Error; err != nil {
		a.l.Error("failed to create image", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Create(&models.ItemImage{
		ItemID:  item.ID,
		ImageID: image.ID,
	}).Error; err != nil {
		a.l.Error("failed to attach image to item", zap.Uint("item", item.ID), zap.Uint("image", image.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, imageInfoFromModel(&image))
}

func (a *App) ImageDelete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 先清理商品关联，再删除图片记录
	if err := a.db.WithContext(rctx).Delete(&models.ItemImage{}, "image_id = ?", uint(id)).Error; err != nil {
		a.l.Error("failed to delete image links", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Delete(&models.Image{}, uint(id)).Error; err != nil {
		a.l.Error("failed to delete image", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}
