package action

import (
	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/inventory"
)

const deleteLabel = "Delete"

func NewProjectRemover(env *graph.Environment, c Confirmer, n Notifier) *Remover[inventory.RemoveProjectResponse] {
	return NewRemover(env, c, n, RemoverConfig[inventory.RemoveProjectResponse]{
		Prompt: Prompt{
			Message:      "Are you sure you want to delete this project?",
			ConfirmLabel: deleteLabel,
		},
		FailureMessage: "Failed removing project",
		Dispatch: func(env *graph.Environment, id string, cb graph.Callbacks[inventory.RemoveProjectResponse], updater graph.Updater[inventory.RemoveProjectResponse]) {
			inventory.RemoveProject(env, inventory.RemoveProjectVariables{ID: id}, cb, updater)
		},
		Removed: func(resp inventory.RemoveProjectResponse) bool {
			return resp.DeleteProject
		},
	})
}

func NewWorkOrderRemover(env *graph.Environment, c Confirmer, n Notifier) *Remover[inventory.RemoveWorkOrderResponse] {
	return NewRemover(env, c, n, RemoverConfig[inventory.RemoveWorkOrderResponse]{
		Prompt: Prompt{
			Message:      "Are you sure you want to delete this work order?",
			ConfirmLabel: deleteLabel,
		},
		FailureMessage: "Failed removing work order",
		Dispatch: func(env *graph.Environment, id string, cb graph.Callbacks[inventory.RemoveWorkOrderResponse], updater graph.Updater[inventory.RemoveWorkOrderResponse]) {
			inventory.RemoveWorkOrder(env, inventory.RemoveWorkOrderVariables{ID: id}, cb, updater)
		},
		Removed: func(resp inventory.RemoveWorkOrderResponse) bool {
			return resp.RemoveWorkOrder != ""
		},
	})
}

func NewProjectTypeRemover(env *graph.Environment, c Confirmer, n Notifier) *Remover[inventory.RemoveProjectTypeResponse] {
	return NewRemover(env, c, n, RemoverConfig[inventory.RemoveProjectTypeResponse]{
		Prompt: Prompt{
			Message:      "Are you sure you want to delete this project template?",
			ConfirmLabel: deleteLabel,
		},
		FailureMessage: "Failed removing project template",
		Dispatch: func(env *graph.Environment, id string, cb graph.Callbacks[inventory.RemoveProjectTypeResponse], updater graph.Updater[inventory.RemoveProjectTypeResponse]) {
			inventory.RemoveProjectType(env, inventory.RemoveProjectTypeVariables{ID: id}, cb, updater)
		},
		Removed: func(resp inventory.RemoveProjectTypeResponse) bool {
			return resp.DeleteProjectType
		},
	})
}
