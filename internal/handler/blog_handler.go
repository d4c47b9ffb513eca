package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpost/inkpost/internal/pkg/response"
	"github.com/inkpost/inkpost/internal/service"
)

type BlogHandler struct {
	blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

type blogCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req blogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.Title == "" || req.Content == "" || req.Author == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "title, content and author are required")
		return
	}
	blog, err := h.blogs.Create(c.Request.Context(), service.BlogCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.Author,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, blog)
}

func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(blogs), "blogs": blogs})
}

func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, blog)
}

type blogUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req blogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	blog, err := h.blogs.Update(c.Request.Context(), c.Param("id"), service.BlogUpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, blog)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
