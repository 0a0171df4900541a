package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	model2 "github.com/jerry-enebeli/runboard/api/model"
)

func (a Api) GetPipelines(c *gin.Context) {
	var params model2.PipelineQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := params.ValidatePipelineQuery(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.runboard.Source().Pipelines(c.Request.Context(), params.ToPipelineQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetProjects(c *gin.Context) {
	var params model2.ProjectQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := params.ValidateProjectQuery(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.runboard.Source().Projects(c.Request.Context(), params.ToProjectQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
