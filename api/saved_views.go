package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerry-enebeli/runboard/model"
)

func (a Api) GetSavedViews(c *gin.Context) {
	resp, err := a.runboard.Store().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) CreateSavedView(c *gin.Context) {
	var newView model.CreateSavedView
	if err := c.ShouldBindJSON(&newView); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.runboard.Store().Create(c.Request.Context(), newView.Name, newView.Conditions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// DeleteSavedView answers 204 whether or not the view existed.
func (a Api) DeleteSavedView(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	if err := a.runboard.Store().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
