package inventory

import (
	"github.com/inventory-app/gqlclient/graph"
)

type AddServiceVariables struct {
	Data ServiceCreateData `json:"data"`
}

type AddServiceResponse struct {
	AddService Service `json:"addService"`
}

var AddServiceMutation = graph.MustDefine[AddServiceVariables, AddServiceResponse](`
mutation AddServiceMutation($data: ServiceCreateData!) {
	addService(data: $data) {
		id
		name
		externalId
		status
		serviceType {
			id
			name
		}
	}
}
`, graph.WithSchema(Schema))

func AddService(env *graph.Environment, vars AddServiceVariables, cb graph.Callbacks[AddServiceResponse], updater graph.Updater[AddServiceResponse]) {
	graph.Commit(env, AddServiceMutation, vars, cb, updater)
}

type RemoveServiceVariables struct {
	ID string `json:"id"`
}

type RemoveServiceResponse struct {
	RemoveService string `json:"removeService"`
}

var RemoveServiceMutation = graph.MustDefine[RemoveServiceVariables, RemoveServiceResponse](`
mutation RemoveServiceMutation($id: ID!) {
	removeService(id: $id)
}
`, graph.WithSchema(Schema))

func RemoveService(env *graph.Environment, vars RemoveServiceVariables, cb graph.Callbacks[RemoveServiceResponse], updater graph.Updater[RemoveServiceResponse]) {
	graph.Commit(env, RemoveServiceMutation, vars, cb, updater)
}
