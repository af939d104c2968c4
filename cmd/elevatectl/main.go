// Package main is elevatectl, the headless admin client for ElevateCMS.
// It drives the same content gateway the admin panel uses and prints
// results as JSON, so content can be inspected and scripted without the
// panel.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"elevatecms/internal/app"
	"elevatecms/internal/config"
	"elevatecms/internal/gateway"
	"elevatecms/internal/models"
	"elevatecms/internal/state"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli lazily wires the gateway so flag parsing and help work without
// configuration.
type cli struct {
	cfg     *config.Config
	gateway *gateway.Gateway
	state   *state.Store
}

func (c *cli) init() error {
	if c.gateway != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	c.cfg = cfg
	c.state = state.New()
	c.gateway = gateway.New(cfg, c.state)
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "elevatectl",
		Short:         "Headless admin client for ElevateCMS",
		Long:          "elevatectl inspects and edits ElevateCMS content through the admin API.\nConfigure it with ELEVATE_API_URL and ELEVATE_API_TOKEN.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	root.AddCommand(
		newPostsCmd(c),
		newServiciosCmd(c),
		newCasosCmd(c),
		newSettingsCmd(c),
		newMediaCmd(c),
		newStatsCmd(c),
		newRouteCmd(c),
	)
	return root
}

func newPostsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage blog posts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the post metadata index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(c.gateway.ListPosts(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <slug>",
		Short: "Show one full post including its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := c.gateway.GetPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if post == nil {
				return fmt.Errorf("post %q not found", args[0])
			}
			return printJSON(post)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a post and remove it from the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.gateway.DeletePost(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	})

	var draft bool
	save := &cobra.Command{
		Use:   "save <title>",
		Short: "Create or update a post, reading the body from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}
			title := args[0]
			bodyStr := string(body)
			patch := &models.PostPatch{
				Title: &title,
				Body:  &bodyStr,
				Draft: &draft,
			}
			saved, err := c.gateway.SavePost(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(saved)
		},
	}
	save.Flags().BoolVar(&draft, "draft", false, "save as draft")
	cmd.AddCommand(save)

	return cmd
}

func newServiciosCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servicios",
		Short: "Manage service listings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List servicios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(c.gateway.ListServicios(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a servicio by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return c.gateway.DeleteServicio(cmd.Context(), id)
		},
	})

	return cmd
}

func newCasosCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casos",
		Short: "Manage case studies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List casos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(c.gateway.ListCasos(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a caso by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return c.gateway.DeleteCaso(cmd.Context(), id)
		},
	})

	return cmd
}

func newSettingsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "settings [section]",
		Short: "Show site settings, all sections or one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := c.gateway.Settings(cmd.Context())
			if len(args) == 0 {
				return printJSON(settings)
			}
			switch args[0] {
			case "general":
				return printJSON(settings.General)
			case "social":
				return printJSON(settings.Social)
			case "hero":
				return printJSON(settings.Hero)
			case "seo":
				return printJSON(settings.SEO)
			default:
				return fmt.Errorf("unknown settings section %q", args[0])
			}
		},
	}
}

func newMediaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "media",
		Short: "List the media library index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(c.gateway.ListMedia(cmd.Context()))
		},
	}
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard content statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := c.gateway.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

func newRouteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Resolve an admin panel path and print the resulting view",
		Long:  "Resolve an admin panel path (for example /blog/edit/mi-post or #/servicios)\nthrough the panel's router and print the view it would commit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel := app.New(c.gateway, c.state)
			if err := panel.Navigate(cmd.Context(), args[0]); err != nil {
				return err
			}
			view := panel.CurrentView()
			return printJSON(map[string]any{
				"view":   view.Name,
				"params": view.Params,
				"data":   view.Data,
			})
		},
	}
}
