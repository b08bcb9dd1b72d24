package inventory

import (
	"context"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/graph"
)

// ProjectsConnectionKey is the connection the projects table is stored
// under on the root record.
const ProjectsConnectionKey = "ProjectsTable_projects"

const projectFields = `
fragment ProjectFields on Project {
	id
	name
	description
	type {
		id
		name
	}
	location {
		id
		name
	}
	numberOfWorkOrders
}
`

type AddProjectVariables struct {
	Input AddProjectInput `json:"input"`
}

type AddProjectResponse struct {
	CreateProject Project `json:"createProject"`
}

var AddProjectMutation = graph.MustDefine[AddProjectVariables, AddProjectResponse](`
mutation AddProjectMutation($input: AddProjectInput!) {
	createProject(input: $input) {
		...ProjectFields
	}
}
`+projectFields, graph.WithSchema(Schema))

func AddProject(env *graph.Environment, vars AddProjectVariables, cb graph.Callbacks[AddProjectResponse], updater graph.Updater[AddProjectResponse]) {
	graph.Commit(env, AddProjectMutation, vars, cb, updater)
}

type EditProjectVariables struct {
	Input EditProjectInput `json:"input"`
}

type EditProjectResponse struct {
	EditProject Project `json:"editProject"`
}

var EditProjectMutation = graph.MustDefine[EditProjectVariables, EditProjectResponse](`
mutation EditProjectMutation($input: EditProjectInput!) {
	editProject(input: $input) {
		...ProjectFields
	}
}
`+projectFields, graph.WithSchema(Schema))

func EditProject(env *graph.Environment, vars EditProjectVariables, cb graph.Callbacks[EditProjectResponse], updater graph.Updater[EditProjectResponse]) {
	graph.Commit(env, EditProjectMutation, vars, cb, updater)
}

type RemoveProjectVariables struct {
	ID string `json:"id"`
}

type RemoveProjectResponse struct {
	DeleteProject bool `json:"deleteProject"`
}

var RemoveProjectMutation = graph.MustDefine[RemoveProjectVariables, RemoveProjectResponse](`
mutation RemoveProjectMutation($id: ID!) {
	deleteProject(id: $id)
}
`, graph.WithSchema(Schema))

func RemoveProject(env *graph.Environment, vars RemoveProjectVariables, cb graph.Callbacks[RemoveProjectResponse], updater graph.Updater[RemoveProjectResponse]) {
	graph.Commit(env, RemoveProjectMutation, vars, cb, updater)
}

type AddProjectTypeVariables struct {
	Input AddProjectTypeInput `json:"input"`
}

type AddProjectTypeResponse struct {
	CreateProjectType ProjectType `json:"createProjectType"`
}

var AddProjectTypeMutation = graph.MustDefine[AddProjectTypeVariables, AddProjectTypeResponse](`
mutation AddProjectTypeMutation($input: AddProjectTypeInput!) {
	createProjectType(input: $input) {
		id
		name
		description
		numberOfProjects
	}
}
`, graph.WithSchema(Schema))

func AddProjectType(env *graph.Environment, vars AddProjectTypeVariables, cb graph.Callbacks[AddProjectTypeResponse], updater graph.Updater[AddProjectTypeResponse]) {
	graph.Commit(env, AddProjectTypeMutation, vars, cb, updater)
}

type RemoveProjectTypeVariables struct {
	ID string `json:"id"`
}

type RemoveProjectTypeResponse struct {
	DeleteProjectType bool `json:"deleteProjectType"`
}

var RemoveProjectTypeMutation = graph.MustDefine[RemoveProjectTypeVariables, RemoveProjectTypeResponse](`
mutation RemoveProjectTypeMutation($id: ID!) {
	deleteProjectType(id: $id)
}
`, graph.WithSchema(Schema))

func RemoveProjectType(env *graph.Environment, vars RemoveProjectTypeVariables, cb graph.Callbacks[RemoveProjectTypeResponse], updater graph.Updater[RemoveProjectTypeResponse]) {
	graph.Commit(env, RemoveProjectTypeMutation, vars, cb, updater)
}

type ProjectsVariables struct {
	First *int32  `json:"first,omitempty"`
	After *string `json:"after,omitempty"`
}

type ProjectEdge struct {
	Cursor string  `json:"cursor"`
	Node   Project `json:"node"`
}

type ProjectsResponse struct {
	Projects struct {
		TotalCount int32         `json:"totalCount"`
		Edges      []ProjectEdge `json:"edges"`
		PageInfo   PageInfo      `json:"pageInfo"`
	} `json:"projects"`
}

var ProjectsQuery = graph.MustDefine[ProjectsVariables, ProjectsResponse](`
query ProjectsQuery($first: Int, $after: Cursor) {
	projects(first: $first, after: $after) {
		totalCount
		edges {
			cursor
			node {
				...ProjectFields
			}
		}
		pageInfo {
			hasNextPage
			endCursor
		}
	}
}
`+projectFields, graph.WithSchema(Schema), graph.WithConnection("projects", ProjectsConnectionKey))

// Projects loads a page of projects into the store.
func Projects(ctx context.Context, env *graph.Environment, vars ProjectsVariables) (ProjectsResponse, []gqlclient.Error, error) {
	return graph.Fetch(ctx, env, ProjectsQuery, vars)
}
