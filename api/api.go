/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerry-enebeli/runboard"
	"github.com/jerry-enebeli/runboard/api/middleware"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/internal/apierror"
)

type Api struct {
	runboard *runboard.Runboard
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.GET("/pipelines", a.GetPipelines)
	router.GET("/projects", a.GetProjects)

	router.GET("/saved-views", a.GetSavedViews)
	router.POST("/saved-views", a.CreateSavedView)
	router.DELETE("/saved-views/:id", a.DeleteSavedView)

	router.POST("/preview/:domain", a.Preview)
	router.POST("/query/:domain", a.Query)
	router.GET("/query/:domain", a.QueryFromParams)
	return a.router
}

func NewAPI(r *runboard.Runboard) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	router := gin.Default()
	router.Use(middleware.RateLimitMiddleware(conf))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{runboard: r, router: router}
}

// respondError writes err with the status its code maps to.
func respondError(c *gin.Context, err error) {
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message, "code": apiErr.Code}
		if apiErr.Code == apierror.ErrValidation && apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
		c.JSON(apierror.MapErrorToHTTPStatus(err), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
