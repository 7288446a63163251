package media

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"media-access/internal/app/http/middleware"
	"media-access/internal/domain/access"
	"media-access/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store      Store
	policy     access.Policy
	authorizer access.Authorizer
	log        *slog.Logger
}

func NewHandler(store Store, policy access.Policy, log *slog.Logger) *Handler {
	if policy == nil {
		policy = access.MediaPolicy{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		store:      store,
		policy:     policy,
		authorizer: access.NewAuthorizer(policy),
		log:        log,
	}
}

func mustPrincipal(c *gin.Context) (access.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return access.Principal{}, false
	}
	return p, true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) storeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}
	h.log.ErrorContext(c.Request.Context(), msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// ------------------------------
// GET /media
// ------------------------------
// List renders the media library. The view is fixed server-side; clients
// cannot choose it.
func (h *Handler) List(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	view := access.ViewMediaLibrary

	page := Page{
		Number: atoiDefault(c.Query("page"), 1),
		Size:   atoiDefault(c.Query("per_page"), defaultPerPage),
	}.normalized()

	filter := h.policy.FilterListing(p, view)

	posts, total, err := h.store.List(c.Request.Context(), filter, page)
	if err != nil {
		h.storeError(c, err, "Failed to load media")
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Items:      toMediaDTOs(posts),
		Total:      total,
		Page:       page.Number,
		PerPage:    page.Size,
		View:       string(view),
		Restricted: filter.Restricted(),
	})
}

// ------------------------------
// POST /media/query (upload modal)
// ------------------------------
func (h *Handler) Query(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	args := access.QueryArgs{}
	if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	args = h.policy.FilterAjaxAttachmentQuery(p, args)

	posts, err := h.store.Query(c.Request.Context(), args)
	if err != nil {
		h.storeError(c, err, "Failed to query media")
		return
	}

	c.JSON(http.StatusOK, toMediaDTOs(posts))
}

// ------------------------------
// POST /media (behind RequireCapability(upload_files))
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var input CreateMediaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := content.Post{
		AuthorID: p.ID,
		Type:     content.TypeAttachment,
		Title:    input.Title,
		Caption:  input.Caption,
		MimeType: input.MimeType,
		Path:     input.Path,
		ParentID: input.ParentID,
	}
	if err := h.store.Create(c.Request.Context(), &post); err != nil {
		h.storeError(c, err, "Failed to create media")
		return
	}

	c.JSON(http.StatusCreated, toMediaDTO(post))
}

// ------------------------------
// PUT /media/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	post, ok := h.loadAttachment(c)
	if !ok {
		return
	}

	if !h.authorizer.Can(p, access.ActionEdit, access.ResourceFor(post)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to edit this media"})
		return
	}

	h.applyUpdate(c, &post)
}

// ------------------------------
// DELETE /media/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	post, ok := h.loadAttachment(c)
	if !ok {
		return
	}

	if !h.authorizer.Can(p, access.ActionDelete, access.ResourceFor(post)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to delete this media"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), post.ID); err != nil {
		h.storeError(c, err, "Failed to delete media")
		return
	}

	h.log.InfoContext(c.Request.Context(), "media deleted", "media_id", post.ID, "user_id", p.ID)
	c.Status(http.StatusNoContent)
}

// ------------------------------
// POST /editor/posts/:id (post-edit view)
// ------------------------------
// EditorSave saves a post from the editor. Saving an attachment there also
// performs the host's context-less edit_others_posts check, so the target is
// passed to it explicitly.
func (h *Handler) EditorSave(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	post, err := h.store.Find(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Failed to load post")
		return
	}
	res := access.ResourceFor(post)

	if !h.authorizer.Can(p, access.ActionEdit, res) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to edit this post"})
		return
	}
	if post.IsAttachment() && !h.authorizer.Can(p, access.ActionEditOthers, res) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to edit this post"})
		return
	}

	h.applyUpdate(c, &post)
}

func (h *Handler) loadAttachment(c *gin.Context) (content.Post, bool) {
	id, ok := paramID(c)
	if !ok {
		return content.Post{}, false
	}

	post, err := h.store.Find(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Failed to load media")
		return content.Post{}, false
	}
	if !post.IsAttachment() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return content.Post{}, false
	}
	return post, true
}

func (h *Handler) applyUpdate(c *gin.Context, post *content.Post) {
	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Caption != nil {
		post.Caption = *input.Caption
	}

	if err := h.store.Update(c.Request.Context(), post); err != nil {
		h.storeError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, toMediaDTO(*post))
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
