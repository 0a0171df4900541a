package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	model2 "github.com/jerry-enebeli/runboard/api/model"
	"github.com/jerry-enebeli/runboard/dashboard"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

func domainParam(c *gin.Context) (dashboard.Domain, bool) {
	domain, err := dashboard.ParseDomain(c.Param("domain"))
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return domain, true
}

// Preview renders the SQL preview of a condition list. Blank values are allowed here.
func (a Api) Preview(c *gin.Context) {
	domain, ok := domainParam(c)
	if !ok {
		return
	}

	var req model2.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model2.PreviewResponse{
		SQL:      a.runboard.Preview(domain, req.Conditions),
		Warnings: filter.Lint(domain.KnownFields(), req.Conditions),
	})
}

func (a Api) Query(c *gin.Context) {
	domain, ok := domainParam(c)
	if !ok {
		return
	}

	var req model2.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	if err := req.ValidateQueryRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	a.runQuery(c, domain, req.Conditions, req.Page, req.RowsPerPage)
}

// QueryFromParams reads field_operator=value parameters, e.g. status_eq=failed, into an
// AND-joined condition list. page and rows_per_page select the page.
func (a Api) QueryFromParams(c *gin.Context) {
	domain, ok := domainParam(c)
	if !ok {
		return
	}

	parsed := filter.ParseFromQuery(c.Request.URL.Query(), nil)
	if len(parsed.Errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": parsed.Errors})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("rows_per_page", strconv.Itoa(dashboard.DefaultRowsPerPage)))
	a.runQuery(c, domain, parsed.Conditions, page, perPage)
}

func (a Api) runQuery(c *gin.Context, domain dashboard.Domain, conditions []model.FilterCondition, page, perPage int) {
	resp, err := a.runboard.Query(c.Request.Context(), domain, conditions, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
