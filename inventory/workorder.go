package inventory

import (
	"github.com/inventory-app/gqlclient/graph"
)

const workOrderFields = `
fragment WorkOrderFields on WorkOrder {
	id
	name
	description
	workOrderType {
		id
		name
	}
	status
	priority
	installDate
	location {
		id
		name
	}
	project {
		id
		name
	}
}
`

type AddWorkOrderVariables struct {
	Input AddWorkOrderInput `json:"input"`
}

type AddWorkOrderResponse struct {
	AddWorkOrder WorkOrder `json:"addWorkOrder"`
}

var AddWorkOrderMutation = graph.MustDefine[AddWorkOrderVariables, AddWorkOrderResponse](`
mutation AddWorkOrderMutation($input: AddWorkOrderInput!) {
	addWorkOrder(input: $input) {
		...WorkOrderFields
	}
}
`+workOrderFields, graph.WithSchema(Schema))

func AddWorkOrder(env *graph.Environment, vars AddWorkOrderVariables, cb graph.Callbacks[AddWorkOrderResponse], updater graph.Updater[AddWorkOrderResponse]) {
	graph.Commit(env, AddWorkOrderMutation, vars, cb, updater)
}

type EditWorkOrderVariables struct {
	Input EditWorkOrderInput `json:"input"`
}

type EditWorkOrderResponse struct {
	EditWorkOrder WorkOrder `json:"editWorkOrder"`
}

var EditWorkOrderMutation = graph.MustDefine[EditWorkOrderVariables, EditWorkOrderResponse](`
mutation EditWorkOrderMutation($input: EditWorkOrderInput!) {
	editWorkOrder(input: $input) {
		...WorkOrderFields
	}
}
`+workOrderFields, graph.WithSchema(Schema))

func EditWorkOrder(env *graph.Environment, vars EditWorkOrderVariables, cb graph.Callbacks[EditWorkOrderResponse], updater graph.Updater[EditWorkOrderResponse]) {
	graph.Commit(env, EditWorkOrderMutation, vars, cb, updater)
}

type RemoveWorkOrderVariables struct {
	ID string `json:"id"`
}

type RemoveWorkOrderResponse struct {
	RemoveWorkOrder string `json:"removeWorkOrder"`
}

var RemoveWorkOrderMutation = graph.MustDefine[RemoveWorkOrderVariables, RemoveWorkOrderResponse](`
mutation RemoveWorkOrderMutation($id: ID!) {
	removeWorkOrder(id: $id)
}
`, graph.WithSchema(Schema))

func RemoveWorkOrder(env *graph.Environment, vars RemoveWorkOrderVariables, cb graph.Callbacks[RemoveWorkOrderResponse], updater graph.Updater[RemoveWorkOrderResponse]) {
	graph.Commit(env, RemoveWorkOrderMutation, vars, cb, updater)
}
