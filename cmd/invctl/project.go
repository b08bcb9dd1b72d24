package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inventory-app/gqlclient/action"
	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/inventory"
	"github.com/inventory-app/gqlclient/store"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(newProjectListCmd(a))
	cmd.AddCommand(newProjectAddCmd(a))
	cmd.AddCommand(newDeleteCmd(a, "project", action.NewProjectRemover))
	return cmd
}

func newWorkOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage work orders",
	}
	cmd.AddCommand(newDeleteCmd(a, "work order", action.NewWorkOrderRemover))
	return cmd
}

func newProjectTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projecttype",
		Aliases: []string{"template"},
		Short:   "Manage project templates",
	}
	cmd.AddCommand(newDeleteCmd(a, "project template", action.NewProjectTypeRemover))
	return cmd
}

func newProjectListCmd(a *app) *cobra.Command {
	var (
		first int32
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.environment()
			if err != nil {
				return err
			}
			defer env.Close()

			var (
				edges []inventory.ProjectEdge
				total int32
				after *string
			)
			for {
				page, errs, err := inventory.Projects(cmd.Context(), env, inventory.ProjectsVariables{First: &first, After: after})
				if err != nil {
					return err
				}
				if len(errs) > 0 {
					return &errs[0]
				}
				edges = append(edges, page.Projects.Edges...)
				total = page.Projects.TotalCount
				info := page.Projects.PageInfo
				if !all || !info.HasNextPage || info.EndCursor == nil {
					break
				}
				after = info.EndCursor
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTEMPLATE\tLOCATION\tWORK ORDERS")
			for _, e := range edges {
				p := e.Node
				location := "-"
				if p.Location != nil {
					location = p.Location.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Type.Name, location, p.NumberOfWorkOrders)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d projects\n", len(edges), total)
			return nil
		},
	}
	cmd.Flags().Int32Var(&first, "first", 50, "page size")
	cmd.Flags().BoolVar(&all, "all", false, "follow pagination until every project is listed")
	return cmd
}

func newProjectAddCmd(a *app) *cobra.Command {
	var input inventory.AddProjectInput
	var description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if description != "" {
				input.Description = &description
			}
			env, err := a.environment()
			if err != nil {
				return err
			}
			defer env.Close()

			resp, errs, err := graph.Await(cmd.Context(), env, inventory.AddProjectMutation,
				inventory.AddProjectVariables{Input: input}, prependProject)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				return &errs[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", resp.CreateProject.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "project name")
	cmd.Flags().StringVar(&input.Type, "type", "", "project template id")
	cmd.Flags().StringVar(&input.Location, "location", "", "location id")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// prependProject puts a newly created project at the top of the cached
// projects table, if one has been loaded.
func prependProject(tx *store.Tx, resp inventory.AddProjectResponse) {
	conn := tx.Connection(store.RootID, inventory.ProjectsConnectionKey, nil)
	node := tx.Get(store.DataID(resp.CreateProject.ID))
	if conn == nil || node == nil {
		return
	}
	edge := tx.CreateEdge(conn, node, "ProjectEdge")
	tx.InsertEdgeBefore(conn, edge, "")
}
