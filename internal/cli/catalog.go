package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// CatalogSummary is the JSON payload of `catalog validate`.
type CatalogSummary struct {
	Valid     bool     `json:"valid"`
	Areas     int      `json:"areas"`
	Items     int      `json:"items"`
	Questions int      `json:"questions"`
	Warnings  []string `json:"warnings,omitempty"`
}

// AreaView is one area of `catalog show`.
type AreaView struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Modules []model.ModuleKind `json:"modules,omitempty"`
	Items   []ItemView         `json:"items"`
}

// ItemView is one item of `catalog show` with the questions that verify it.
type ItemView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and inspect checklist catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	cmd.AddCommand(newCatalogShowCommand(rootOpts))
	return cmd
}

// loadCatalog loads the catalog at the argument, or at the configured
// directory when no argument is given.
func (o *RootOptions) loadCatalog(cmd *cobra.Command, args []string) (*catalog.Catalog, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		cfg, err := o.loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		dir = cfg.CatalogDir
	}
	return catalog.LoadDir(dir)
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir|file]",
		Short: "Validate catalog files against the catalog schema",
		Long: `Load every .cue, .yaml and .yml file of a catalog, check it against the
embedded #Catalog schema and the cross-references between areas, items and
questions, and report lint warnings.

Defaults to the configured catalog directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd, args)
			if err != nil {
				return outputCatalogError(f, err)
			}

			areas, items, questions := cat.Counts()
			summary := CatalogSummary{
				Valid:     true,
				Areas:     areas,
				Items:     items,
				Questions: questions,
				Warnings:  cat.Lint(),
			}
			if f.Format == "json" {
				return f.Success(summary)
			}

			fmt.Fprintf(f.Writer, "✓ Catalog valid: %s, %s, %s\n",
				plural(areas, "area"), plural(items, "item"), plural(questions, "question"))
			s := newStyles(f.Writer)
			for _, w := range summary.Warnings {
				fmt.Fprintln(f.Writer, s.warn.Render("  warning: "+w))
			}
			return nil
		},
	}
}

// outputCatalogError reports a load failure. Parse errors carry the file
// position in their message.
func outputCatalogError(f *OutputFormatter, err error) error {
	return f.Fail("catalog invalid", err)
}

func newCatalogShowCommand(rootOpts *RootOptions) *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:           "show [dir|file]",
		Short:         "Print the areas, items and questions of a catalog",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd, args)
			if err != nil {
				return outputCatalogError(f, err)
			}

			areas := cat.Areas()
			if module != "" {
				m, err := model.ParseModuleKind(module)
				if err != nil {
					return f.Fail("invalid module", err)
				}
				areas = cat.AreasFor(m)
			}

			views, err := catalogViews(cat, areas)
			if err != nil {
				return f.Fail("show catalog failed", err)
			}
			if f.Format == "json" {
				return f.Success(views)
			}
			renderCatalog(f, views)
			return nil
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "only areas inspected by this module")
	return cmd
}

func catalogViews(cat *catalog.Catalog, areas []model.Area) ([]AreaView, error) {
	views := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		reqs, err := cat.ItemsForArea(a.ID)
		if err != nil {
			return nil, err
		}
		view := AreaView{ID: a.ID, Name: a.Name, Modules: a.Modules, Items: make([]ItemView, 0, len(reqs))}
		for _, r := range reqs {
			view.Items = append(view.Items, ItemView{ID: r.Item.ID, Name: r.Item.Name, Questions: r.QuestionIDs})
		}
		views = append(views, view)
	}
	return views, nil
}

func renderCatalog(f *OutputFormatter, views []AreaView) {
	s := newStyles(f.Writer)
	for _, a := range views {
		modules := "all modules"
		if len(a.Modules) > 0 {
			names := make([]string, len(a.Modules))
			for i, m := range a.Modules {
				names[i] = string(m)
			}
			modules = strings.Join(names, ", ")
		}
		fmt.Fprintf(f.Writer, "%s %s\n", s.title.Render(a.ID), s.muted.Render("("+modules+")"))
		if len(a.Items) == 0 {
			fmt.Fprintln(f.Writer, s.muted.Render("  no items"))
		}
		for _, item := range a.Items {
			questions := strings.Join(item.Questions, ", ")
			if questions == "" {
				questions = s.muted.Render("no questions")
			}
			fmt.Fprintf(f.Writer, "  %s %s\n", s.col(item.ID), questions)
		}
	}
}
