package gqlclient_test

import (
	"context"
	"log"

	"github.com/inventory-app/gqlclient"
)

func ExampleClient_Execute() {
	var ctx context.Context
	var c *gqlclient.Client

	op := gqlclient.NewOperation(`query ProjectName($id: ID!) {
		node(id: $id) {
			... on Project {
				name
			}
		}
	}`)
	op.Var("id", "project-1")

	var data struct {
		Node struct {
			Name string
		}
	}
	if err := c.Execute(ctx, op, &data); err != nil {
		log.Fatal(err)
	}

	log.Print(data)
}

func ExampleClient_Do() {
	var ctx context.Context
	var c *gqlclient.Client

	op := gqlclient.NewOperation(`mutation RemoveProject($id: ID!) {
		deleteProject(id: $id)
	}`)
	op.SetName("RemoveProject")
	op.Var("id", "project-1")

	resp, err := c.Do(ctx, op)
	if err != nil {
		log.Fatal(err)
	}
	if len(resp.Errors) > 0 {
		log.Printf("partial failure: %v", resp.Errors[0].Message)
	}

	log.Print(string(resp.Data))
}
