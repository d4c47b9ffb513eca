package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/filestore"
)

// AvatarUploader stores uploaded avatar files and returns the public
// URL recorded on the user.
type AvatarUploader struct {
	store filestore.Store
}

func NewAvatarUploader(store filestore.Store) *AvatarUploader {
	return &AvatarUploader{store: store}
}

func (u *AvatarUploader) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	opened, err := file.Open()
	if err != nil {
		return "", err
	}
	defer opened.Close()
	key := buildFileKey(file.Filename)
	if err := u.store.Save(c.Request.Context(), key, opened, file.Size); err != nil {
		return "", err
	}
	return u.store.URL(key, requestBaseURL(c)), nil
}

// FileHandler serves locally stored avatars back through the API.
type FileHandler struct {
	store filestore.Store
}

func NewFileHandler(store filestore.Store) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Get(c *gin.Context) {
	if h.store.Type() != "local" {
		c.Status(http.StatusNotFound)
		return
	}
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	_, _ = file.Seek(0, io.SeekStart)
	_, _ = io.Copy(c.Writer, file)
}

func requestBaseURL(c *gin.Context) string {
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		if c.Request.TLS != nil {
			proto = "https"
		} else {
			proto = "http"
		}
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return proto + "://" + host
}

func buildFileKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := randomHex(12)
	if ext == "" {
		return base
	}
	return base + ext
}

func randomHex(size int) string {
	buf := make([]byte, size)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
