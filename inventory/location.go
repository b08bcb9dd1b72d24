package inventory

import (
	"github.com/inventory-app/gqlclient/graph"
)

const locationFields = `
fragment LocationFields on Location {
	id
	name
	externalId
	latitude
	longitude
	locationType {
		id
		name
	}
	parentLocation {
		id
		name
	}
}
`

type AddLocationVariables struct {
	Input AddLocationInput `json:"input"`
}

type AddLocationResponse struct {
	AddLocation Location `json:"addLocation"`
}

var AddLocationMutation = graph.MustDefine[AddLocationVariables, AddLocationResponse](`
mutation AddLocationMutation($input: AddLocationInput!) {
	addLocation(input: $input) {
		...LocationFields
	}
}
`+locationFields, graph.WithSchema(Schema))

func AddLocation(env *graph.Environment, vars AddLocationVariables, cb graph.Callbacks[AddLocationResponse], updater graph.Updater[AddLocationResponse]) {
	graph.Commit(env, AddLocationMutation, vars, cb, updater)
}

type EditLocationVariables struct {
	Input EditLocationInput `json:"input"`
}

type EditLocationResponse struct {
	EditLocation Location `json:"editLocation"`
}

var EditLocationMutation = graph.MustDefine[EditLocationVariables, EditLocationResponse](`
mutation EditLocationMutation($input: EditLocationInput!) {
	editLocation(input: $input) {
		...LocationFields
	}
}
`+locationFields, graph.WithSchema(Schema))

func EditLocation(env *graph.Environment, vars EditLocationVariables, cb graph.Callbacks[EditLocationResponse], updater graph.Updater[EditLocationResponse]) {
	graph.Commit(env, EditLocationMutation, vars, cb, updater)
}

type RemoveLocationVariables struct {
	ID string `json:"id"`
}

type RemoveLocationResponse struct {
	RemoveLocation string `json:"removeLocation"`
}

var RemoveLocationMutation = graph.MustDefine[RemoveLocationVariables, RemoveLocationResponse](`
mutation RemoveLocationMutation($id: ID!) {
	removeLocation(id: $id)
}
`, graph.WithSchema(Schema))

func RemoveLocation(env *graph.Environment, vars RemoveLocationVariables, cb graph.Callbacks[RemoveLocationResponse], updater graph.Updater[RemoveLocationResponse]) {
	graph.Commit(env, RemoveLocationMutation, vars, cb, updater)
}

type AddEquipmentVariables struct {
	Input AddEquipmentInput `json:"input"`
}

type AddEquipmentResponse struct {
	AddEquipment Equipment `json:"addEquipment"`
}

var AddEquipmentMutation = graph.MustDefine[AddEquipmentVariables, AddEquipmentResponse](`
mutation AddEquipmentMutation($input: AddEquipmentInput!) {
	addEquipment(input: $input) {
		id
		name
		externalId
		equipmentType {
			id
			name
		}
		parentLocation {
			id
			name
		}
	}
}
`, graph.WithSchema(Schema))

func AddEquipment(env *graph.Environment, vars AddEquipmentVariables, cb graph.Callbacks[AddEquipmentResponse], updater graph.Updater[AddEquipmentResponse]) {
	graph.Commit(env, AddEquipmentMutation, vars, cb, updater)
}

type RemoveEquipmentVariables struct {
	ID          string `json:"id"`
	WorkOrderID string `json:"workOrderId,omitempty"`
}

type RemoveEquipmentResponse struct {
	RemoveEquipment string `json:"removeEquipment"`
}

var RemoveEquipmentMutation = graph.MustDefine[RemoveEquipmentVariables, RemoveEquipmentResponse](`
mutation RemoveEquipmentMutation($id: ID!, $workOrderId: ID) {
	removeEquipment(id: $id, workOrderId: $workOrderId)
}
`, graph.WithSchema(Schema))

func RemoveEquipment(env *graph.Environment, vars RemoveEquipmentVariables, cb graph.Callbacks[RemoveEquipmentResponse], updater graph.Updater[RemoveEquipmentResponse]) {
	graph.Commit(env, RemoveEquipmentMutation, vars, cb, updater)
}
