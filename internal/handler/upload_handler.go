package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxUploadBytes = 10 << 20

var allowedImageFormats = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// UploadImage 保存植物或日记图片，返回可直接写入 image_url 的地址
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "image exceeds 10MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondServerError(c, "failed to read upload", err)
		return
	}
	// 按文件内容识别格式，不信任客户端给的 Content-Type
	cfg, format, err := image.DecodeConfig(src)
	src.Close()
	if err != nil {
		respondError(c, http.StatusBadRequest, "only jpeg, png, gif or webp images are allowed")
		return
	}
	ext, ok := allowedImageFormats[format]
	if !ok {
		respondError(c, http.StatusBadRequest, "only jpeg, png, gif or webp images are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondServerError(c, "failed to create upload directory", err)
		return
	}

	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, filename)); err != nil {
		respondServerError(c, "failed to save upload", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":    path.Join("/", strings.Trim(a.uploadURL, "/"), filename),
		"width":  cfg.Width,
		"height": cfg.Height,
		"format": format,
	})
}
