package database

import (
	"context"
	"fmt"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

const projectColumns = `id, project_id, name, project_type, status, repository, language, created_at, attributes`

// Projects returns the projects matching q, newest first.
func (d Datasource) Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error) {
	return d.queryProjects(ctx, filter.BuildProjectQuery(q, "", 1), q.Limit, q.Offset)
}

// MatchProjects is MatchPipelines for projects.
func (d Datasource) MatchProjects(ctx context.Context, conditions []model.FilterCondition) ([]model.Project, error) {
	return d.queryProjects(ctx, filter.BuildConditionQuery(filter.TableProjects, conditions, "", 1), 0, 0)
}

func (d Datasource) queryProjects(ctx context.Context, built *filter.BuildResult, limit, offset int) ([]model.Project, error) {
	query, args := paged(
		fmt.Sprintf("SELECT %s FROM runboard.projects %s ORDER BY %s", projectColumns, built.Where(), built.OrderBy),
		built.Args, built.NextArgPos, limit, offset,
	)

	rows, err := d.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve projects", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p := model.Project{}
		var attributes []byte
		err = rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.ProjectType, &p.Status, &p.Repository, &p.Language, &p.CreatedAt, &attributes)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan project data", err)
		}
		if p.Attributes, err = decodeAttributes(attributes); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal attributes", err)
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over projects", err)
	}
	return projects, nil
}

// InsertProject upserts a project by id.
func (d Datasource) InsertProject(ctx context.Context, p model.Project) error {
	attributes, err := encodeAttributes(p.Attributes)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal attributes", err)
	}

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO runboard.projects (id, project_id, name, project_type, status, repository, language, created_at, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			name = EXCLUDED.name,
			project_type = EXCLUDED.project_type,
			status = EXCLUDED.status,
			repository = EXCLUDED.repository,
			language = EXCLUDED.language,
			created_at = EXCLUDED.created_at,
			attributes = EXCLUDED.attributes
	`, p.ID, p.ProjectID, p.Name, p.ProjectType, p.Status, p.Repository, p.Language, p.CreatedAt, attributes)
	if err != nil {
		return mapError(err, "Project with this ID already exists", "Failed to insert project")
	}
	return nil
}
