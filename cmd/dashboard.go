package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jerry-enebeli/runboard/dashboard"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var warn = color.New(color.FgYellow).SprintFunc()

// builderFlags fill a controller draft from the command line.
type builderFlags struct {
	where     []string
	templates []string
	view      string
}

func (f *builderFlags) register(cmd *cobra.Command) {
	names := make([]string, len(dashboard.Templates))
	for i, t := range dashboard.Templates {
		names[i] = t.Name
	}
	cmd.Flags().StringArrayVarP(&f.where, "where", "w", nil, `condition "[and|or] field operator value", repeatable`)
	cmd.Flags().StringArrayVar(&f.templates, "template", nil, "add a quick template: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&f.view, "view", "", "start from a saved view, by id or name")
}

// build loads the saved view first, then appends templates and --where clauses in order.
func (f *builderFlags) build(ctx context.Context, ctl *dashboard.Controller) error {
	if f.view != "" {
		if err := ctl.OpenLibrary(ctx); err != nil {
			return err
		}
		view, ok := findView(ctl.State().Views, f.view)
		if !ok {
			return fmt.Errorf("saved view %q not found", f.view)
		}
		ctl.LoadView(view)
	}

	for _, name := range f.templates {
		t, ok := findTemplate(name)
		if !ok {
			return fmt.Errorf("unknown template %q", name)
		}
		ctl.AddFromTemplate(t)
	}

	for _, w := range f.where {
		patch, err := parseClause(w)
		if err != nil {
			return err
		}
		c := ctl.AddCondition()
		ctl.UpdateCondition(c.ID, patch)
	}
	return nil
}

func findView(views []model.SavedView, key string) (model.SavedView, bool) {
	for _, v := range views {
		if v.ID == key {
			return v, true
		}
	}
	for _, v := range views {
		if strings.EqualFold(v.Name, key) {
			return v, true
		}
	}
	return model.SavedView{}, false
}

func findTemplate(name string) (dashboard.Template, bool) {
	for _, t := range dashboard.Templates {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return dashboard.Template{}, false
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, warn("warning: "+msg))
	}
}

func printRows(w io.Writer, state dashboard.PageState) {
	if state.Total == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Status", "Created"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, row := range state.Rows {
		created := ""
		if !row.CreatedAt.IsZero() {
			created = row.CreatedAt.UTC().Format("2006-01-02 15:04")
		}
		table.Append([]string{row.ID, row.Name, string(row.Status), created})
	}
	table.Render()

	fmt.Fprintf(w, "Showing %d-%d of %d, page %d of %d\n",
		state.Range.Start, state.Range.End, state.Total, state.Page, state.Range.TotalPages)
}

func queryCommands(r *runboardInstance) *cobra.Command {
	var (
		flags       builderFlags
		page        int
		rowsPerPage int
		asJSON      bool
		inspect     string
		save        string
	)

	cmd := &cobra.Command{
		Use:   "query [pipelines|projects]",
		Short: "run a condition query and print one page of rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			domain, err := dashboard.ParseDomain(args[0])
			if err != nil {
				return err
			}

			results := dashboard.NewPage(r.runboard.Loader(domain))
			ctl := r.runboard.Controller(domain, results)
			if err := flags.build(ctx, ctl); err != nil {
				return err
			}

			if save != "" {
				view, err := ctl.SaveView(ctx, save)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved view %s (%s)\n", view.Name, view.ID)
			}

			if !ctl.ApplyQuery() {
				return fmt.Errorf("conditions without a value: %s", strings.Join(ctl.EmptyValueIDs(), ", "))
			}
			if !results.SetRowsPerPage(rowsPerPage) {
				fmt.Fprintln(cmd.ErrOrStderr(), warn(fmt.Sprintf("rows per page must be one of %v, using %d", dashboard.RowsPerPageOptions, dashboard.DefaultRowsPerPage)))
			}
			results.SetPage(page)

			state := results.State()
			if state.Error != "" {
				return fmt.Errorf("failed to load %s: %s", domain, state.Error)
			}
			printWarnings(cmd.ErrOrStderr(), filter.Lint(domain.KnownFields(), state.Conditions))
			printWarnings(cmd.ErrOrStderr(), state.Warnings)

			if inspect != "" {
				row, ok := results.Row(inspect)
				if !ok {
					return fmt.Errorf("row %q is not in the result", inspect)
				}
				inspector := dashboard.NewInspector()
				inspector.Open(row)
				doc, err := inspector.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ctl.Preview())
			printRows(cmd.OutOrStdout(), state)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().IntVar(&rowsPerPage, "rows-per-page", dashboard.DefaultRowsPerPage, "rows per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page state as JSON")
	cmd.Flags().StringVar(&inspect, "inspect", "", "print the full record of one row")
	cmd.Flags().StringVar(&save, "save", "", "save the conditions as a named view before running them")
	return cmd
}

func previewCommands(r *runboardInstance) *cobra.Command {
	var flags builderFlags

	cmd := &cobra.Command{
		Use:   "preview [pipelines|projects]",
		Short: "print the SQL preview of a condition list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := dashboard.ParseDomain(args[0])
			if err != nil {
				return err
			}
			ctl := r.runboard.Controller(domain, dashboard.NewPage(r.runboard.Loader(domain)))
			if err := flags.build(cmd.Context(), ctl); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ctl.Preview())
			printWarnings(cmd.ErrOrStderr(), filter.Lint(domain.KnownFields(), ctl.Draft()))
			if ids := ctl.EmptyValueIDs(); len(ids) > 0 {
				printWarnings(cmd.ErrOrStderr(), []string{"conditions without a value cannot be applied: " + strings.Join(ids, ", ")})
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func viewCommands(r *runboardInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "manage the saved view library",
	}

	library := func(ctx context.Context) (*dashboard.Controller, error) {
		domain := dashboard.DomainPipelines
		ctl := r.runboard.Controller(domain, dashboard.NewPage(r.runboard.Loader(domain)))
		return ctl, ctl.OpenLibrary(ctx)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list saved views",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := library(cmd.Context())
			if err != nil {
				return err
			}
			views := ctl.State().Views
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved views")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Conditions", "Created"})
			table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
			table.SetCenterSeparator("|")
			for _, v := range views {
				table.Append([]string{v.ID, v.Name, filter.WhereClause(v.Conditions), v.CreatedAt.UTC().Format("2006-01-02")})
			}
			table.Render()
			return nil
		},
	})

	var saveFlags builderFlags
	save := &cobra.Command{
		Use:   "save [name]",
		Short: "save a condition list as a named view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := library(cmd.Context())
			if err != nil {
				return err
			}
			if err := saveFlags.build(cmd.Context(), ctl); err != nil {
				return err
			}
			view, err := ctl.SaveView(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved view %s (%s)\n", view.Name, view.ID)
			return nil
		},
	}
	saveFlags.register(save)
	cmd.AddCommand(save)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [id]",
		Short: "delete a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := library(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctl.DeleteView(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted view %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
