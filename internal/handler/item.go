package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ms-horiuchi/todoapp/internal/model"
)

// ItemHandler serves the /items routes. All of them require auth.
type ItemHandler struct {
	items ItemStore
}

func NewItemHandler(items ItemStore) *ItemHandler {
	return &ItemHandler{items: items}
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid item ID"})
		return 0, false
	}
	return id, true
}

// List responds with every item, for every caller.
func (h *ItemHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.items.ListAll())
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, valid := itemID(c)
	if !valid {
		return
	}
	item := h.items.GetByID(id)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create inserts a new item. The owner is always the token-resolved caller;
// a user_id in the body is ignored.
func (h *ItemHandler) Create(c *gin.Context) {
	var patch model.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid item payload"})
		return
	}
	patch.SetUserID(currentUser(c).UserID)

	created := h.items.Create(patch)
	if created == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update overwrites the fields present in the body. The owner is forced to
// the caller here as well.
func (h *ItemHandler) Update(c *gin.Context) {
	id, valid := itemID(c)
	if !valid {
		return
	}
	var patch model.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid item payload"})
		return
	}
	patch.SetUserID(currentUser(c).UserID)

	updated := h.items.Update(id, patch)
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Finish sets the completion timestamp from the finished_date query
// parameter, or clears it when the parameter is absent.
func (h *ItemHandler) Finish(c *gin.Context) {
	id, valid := itemID(c)
	if !valid {
		return
	}
	var finishedDate *time.Time
	if raw := c.Query("finished_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid finished_date"})
			return
		}
		finishedDate = &t
	}

	item := h.items.UpdateFinishedDate(id, finishedDate)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, valid := itemID(c)
	if !valid {
		return
	}
	if !h.items.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Item deleted successfully"})
}
