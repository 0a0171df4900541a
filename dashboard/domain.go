package dashboard

import (
	"fmt"
	"strings"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

// Domain selects the record type a page or controller works on.
type Domain string

const (
	DomainPipelines Domain = "pipelines"
	DomainProjects  Domain = "projects"
)

func ParseDomain(s string) (Domain, error) {
	switch Domain(strings.ToLower(strings.TrimSpace(s))) {
	case DomainPipelines:
		return DomainPipelines, nil
	case DomainProjects:
		return DomainProjects, nil
	}
	return "", apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("unknown domain %q", s), nil)
}

// Fields are the picker fields, in order.
func (d Domain) Fields() []model.Field {
	if d == DomainProjects {
		return model.ProjectFields
	}
	return model.PipelineFields
}

// KnownFields are all the fields conditions on this domain can resolve, picker fields first.
func (d Domain) KnownFields() []model.Field {
	if d == DomainProjects {
		return filter.ProjectSchema.Known()
	}
	return filter.PipelineSchema.Known()
}

func (d Domain) Table() string {
	if d == DomainProjects {
		return filter.TableProjects
	}
	return filter.TablePipelines
}
