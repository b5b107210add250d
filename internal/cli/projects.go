package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio-site/portfolio-backend/internal/admin"
	"github.com/portfolio-site/portfolio-backend/internal/catalog"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "List, add, edit and delete projects",
	}
	cmd.AddCommand(
		a.projectsListCmd(),
		a.projectsShowCmd(),
		a.projectsAddCmd(),
		a.projectsEditCmd(),
		a.projectsDeleteCmd(),
	)
	return cmd
}

func (a *app) projectsListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := catalog.ParseFilter(category)
			if err != nil {
				return err
			}
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				if err := c.Select(cmd.Context(), admin.ViewProjects); err != nil {
					return err
				}
				items := catalog.Apply(c.Projects(), filter)
				return a.printer(cmd).print(items, []string{"ID", "TITLE", "CATEGORY", "IMAGES", "CREATED"}, func() [][]string {
					rows := make([][]string, 0, len(items))
					for _, p := range items {
						rows = append(rows, []string{
							p.ID, p.Title, string(p.Category),
							strconv.Itoa(len(p.Images)), p.CreatedAt.Local().Format(time.DateOnly),
						})
					}
					return rows
				})
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "all, web or security")
	return cmd
}

func (a *app) projectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project with its images in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				p, err := findProject(cmd.Context(), c, args[0])
				if err != nil {
					return err
				}
				d := catalog.Detail{Project: p, DisplayImages: catalog.DisplayImages(p), Slides: catalog.Slides(p)}
				return a.printer(cmd).print(d, nil, func() [][]string {
					rows := [][]string{
						{"ID", p.ID},
						{"TITLE", p.Title},
						{"CATEGORY", string(p.Category)},
						{"LINK", p.Link},
						{"TECH", strings.Join(p.Tech, ", ")},
						{"THUMBNAIL", catalog.Thumbnail(p)},
					}
					for _, s := range d.Slides {
						rows = append(rows, []string{"IMAGE " + strconv.Itoa(s.Index), s.URL})
					}
					return rows
				})
			})
		},
	}
}

type projectFlags struct {
	title       string
	description string
	link        string
	tech        string
	category    string
}

func (f *projectFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "project title")
	cmd.Flags().StringVar(&f.description, "description", "", "project description")
	cmd.Flags().StringVar(&f.link, "link", "", "external link")
	cmd.Flags().StringVar(&f.tech, "tech", "", "comma separated tech tags")
	cmd.Flags().StringVar(&f.category, "category", string(domain.CategoryWeb), "web or security")
}

// apply copies the flags the user set onto form.
func (f *projectFlags) apply(cmd *cobra.Command, form *admin.Form) {
	set := cmd.Flags().Changed
	if set("title") {
		form.Title = f.title
	}
	if set("description") {
		form.Description = f.description
	}
	if set("link") {
		form.Link = f.link
	}
	if set("tech") {
		form.TechInput = f.tech
	}
	if set("category") {
		form.Category = domain.Category(f.category)
	}
}

func (a *app) projectsAddCmd() *cobra.Command {
	var (
		flags  projectFlags
		images []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project from one or more image files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readImages(images)
			if err != nil {
				return err
			}
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				if err := c.NewProject(); err != nil {
					return err
				}
				c.EditForm(func(form *admin.Form) {
					flags.apply(cmd, form)
					form.Files = files
				})

				res, err := c.Submit(cmd.Context())
				if err != nil {
					var ce *admin.CreateError
					if errors.As(err, &ce) && len(ce.Orphaned()) > 0 {
						fmt.Fprintln(cmd.ErrOrStderr(), "uploaded files left in storage:", strings.Join(ce.Orphaned(), ", "))
					}
					return err
				}
				warnReload(cmd, res.ReloadErr)
				p := res.Project
				return a.printer(cmd).print(p, nil, func() [][]string {
					return [][]string{{fmt.Sprintf("Created %s (%d images)", p.ID, len(p.Images))}}
				})
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringArrayVar(&images, "image", nil, "image file to upload, repeatable")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) projectsEditCmd() *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a project's text fields; images stay as they are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				p, err := findProject(cmd.Context(), c, args[0])
				if err != nil {
					return err
				}
				if err := c.BeginEdit(p); err != nil {
					return err
				}
				// a fresh process has an empty form, so carry the stored tags and
				// category over unless they are being changed
				c.EditForm(func(form *admin.Form) {
					form.TechInput = strings.Join(p.Tech, ", ")
					form.Category = p.Category
					flags.apply(cmd, form)
				})

				res, err := c.Submit(cmd.Context())
				if err != nil {
					return err
				}
				warnReload(cmd, res.ReloadErr)
				a.printer(cmd).line("Updated %s", p.ID)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *app) projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and its stored images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *admin.Console) error {
				p, err := findProject(cmd.Context(), c, args[0])
				if err != nil {
					return err
				}
				res, err := c.DeleteProject(cmd.Context(), p)
				if err != nil {
					return err
				}
				if d := res.Delete; d != nil && d.RemoveErr != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: some images could not be removed:", d.RemoveErr)
				}
				warnReload(cmd, res.ReloadErr)
				a.printer(cmd).line("Deleted %s", p.ID)
				return nil
			})
		},
	}
}

// findProject loads the project list into the console and picks id from it.
func findProject(ctx context.Context, c *admin.Console, id string) (domain.Project, error) {
	if err := c.Select(ctx, admin.ViewProjects); err != nil {
		return domain.Project{}, err
	}
	for _, p := range c.Projects() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func readImages(paths []string) ([]media.File, error) {
	files := make([]media.File, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		files = append(files, media.File{Name: filepath.Base(path), Data: b})
	}
	return files, nil
}

func warnReload(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: could not reload list:", err)
	}
}
