package controllers

import (
	"errors"
	"net/http"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Svc: svc}
}

// Generate answers immediately with a placeholder menu; the real one
// is filled in by a background enhancement and announced over the
// events socket.
func (mc *MenuController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	menu, err := mc.Svc.Generate(uid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGenerationInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrGenerationLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, menu)
}

func (mc *MenuController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	includeExpired := c.DefaultQuery("include_expired", "false") == "true"

	menus, err := mc.Svc.List(uid, includeExpired)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, menus)
}

func (mc *MenuController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	menu, err := mc.Svc.Get(uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (mc *MenuController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := mc.Svc.Delete(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

// RegenerateMeal swaps a single meal inside a menu synchronously.
func (mc *MenuController) RegenerateMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	menuID, ok := idParam(c, "id")
	if !ok {
		return
	}
	mealID, ok := idParam(c, "mealId")
	if !ok {
		return
	}

	meal, err := mc.Svc.RegenerateMeal(uid, menuID, mealID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MenuController) ShoppingList(c *gin.Context) {
	uid := c.GetUint("userID")
	menuID, ok := idParam(c, "id")
	if !ok {
		return
	}

	list, err := mc.Svc.ShoppingList(uid, menuID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}
