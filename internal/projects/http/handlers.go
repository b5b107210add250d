package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/portfolio-site/portfolio-backend/internal/api/http"
	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
	"github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// create accepts multipart/form-data with the project fields and one or more
// "images" files.
func (h *Handler) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apihttp.Fail(c, apperr.Invalid("", "invalid multipart body"))
		return
	}

	files, err := readFiles(form.File["images"])
	if err != nil {
		apihttp.Fail(c, err)
		return
	}

	f := domain.Fields{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Link:        c.PostForm("link"),
		Tech:        domain.ParseTech(c.PostForm("tech")),
		Category:    domain.Category(c.DefaultPostForm("category", string(domain.CategoryWeb))),
	}

	res, err := h.svc.Create(c.Request.Context(), auth.SessionFrom(c), f, files)
	if err != nil {
		if res != nil {
			apihttp.Fail(c, err, gin.H{"phase": res.Phase, "orphaned": res.Orphaned})
			return
		}
		apihttp.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": res.Project})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req.fields()); err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.svc.Get(ctx, id)
	if err != nil {
		apihttp.Fail(c, err)
		return
	}

	res, err := h.svc.Delete(ctx, auth.SessionFrom(c), id, p.Images)
	if err != nil {
		apihttp.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteBody(res))
}

func deleteBody(res *service.DeleteResult) gin.H {
	body := gin.H{
		"ok":            true,
		"row_deleted":   res.RowDeleted,
		"removed_paths": res.RemovedPaths,
	}
	if res.RemoveErr != nil {
		body["warning"] = "project deleted but its images could not be removed"
	}
	return body
}

func readFiles(headers []*multipart.FileHeader) ([]media.File, error) {
	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return nil, apperr.Invalid("images", fmt.Sprintf("cannot read %q", fh.Filename))
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "application/octet-stream" {
			contentType = ""
		}
		files = append(files, media.File{Name: fh.Filename, Data: data, ContentType: contentType})
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
