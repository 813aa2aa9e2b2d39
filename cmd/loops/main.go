package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	loops "github.com/telos-labs/loops-go"
	"github.com/telos-labs/loops-go/internal/cliconfig"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var client *loops.Client

	root := &cobra.Command{
		Use:     "loops",
		Short:   "Interact with the Loops email API from the command line",
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Config file first, then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cmd.PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := []loops.Option{
				loops.WithTimeout(cfg.Timeout),
				loops.WithLogger(cliconfig.Logger(cfg.Verbose)),
			}
			if cfg.BaseURL != "" {
				opts = append(opts, loops.WithBaseURL(cfg.BaseURL))
			}

			c, err := loops.New(cfg.APIKey, opts...)
			if err != nil {
				return fmt.Errorf("create client: %w", err)
			}
			client = c
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.loops/config.toml)")
	root.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Loops API key")
	root.PersistentFlags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL override")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP timeout")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log request and response details")

	root.AddCommand(checkCmd(&client))
	root.AddCommand(contactsCmd(&client))
	root.AddCommand(listsCmd(&client))
	root.AddCommand(propertiesCmd(&client))
	root.AddCommand(transactionalCmd(&client))
	root.AddCommand(eventsCmd(&client))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkCmd(client **loops.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			resp, err := (*client).APIKey().Test(ctx)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func contactsCmd(client **loops.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contacts",
	}

	var findEmail, findUserID string
	find := &cobra.Command{
		Use:   "find",
		Short: "Find contacts by email or user ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			contacts, err := (*client).Contacts().Find(ctx, &loops.ContactFindRequest{
				Email:  findEmail,
				UserID: findUserID,
			})
			if err != nil {
				return err
			}
			return printJSON(contacts)
		},
	}
	find.Flags().StringVar(&findEmail, "email", "", "contact email")
	find.Flags().StringVar(&findUserID, "user-id", "", "contact user ID")

	var createFirstName, createLastName, createUserGroup string
	var createUnsubscribed bool
	create := &cobra.Command{
		Use:   "create <email>",
		Short: "Create a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			req := loops.NewContactCreateRequest(args[0])
			req.FirstName = createFirstName
			req.LastName = createLastName
			req.UserGroup = createUserGroup
			if createUnsubscribed {
				req.Subscribed = false
			}
			resp, err := (*client).Contacts().Create(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	create.Flags().StringVar(&createFirstName, "first-name", "", "first name")
	create.Flags().StringVar(&createLastName, "last-name", "", "last name")
	create.Flags().StringVar(&createUserGroup, "user-group", "", "user group")
	create.Flags().BoolVar(&createUnsubscribed, "unsubscribed", false, "create the contact unsubscribed")

	var deleteEmail, deleteUserID string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a contact by email or user ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			resp, err := (*client).Contacts().Delete(ctx, &loops.ContactDeleteRequest{
				Email:  deleteEmail,
				UserID: deleteUserID,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	del.Flags().StringVar(&deleteEmail, "email", "", "contact email")
	del.Flags().StringVar(&deleteUserID, "user-id", "", "contact user ID")

	cmd.AddCommand(find, create, del)
	return cmd
}

func listsCmd(client **loops.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show mailing lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			lists, err := (*client).MailingLists().List(ctx)
			if err != nil {
				return err
			}
			return printJSON(lists)
		},
	}
}

func propertiesCmd(client **loops.Client) *cobra.Command {
	var listType string
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Show contact properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			properties, err := (*client).ContactProperties().List(ctx, listType)
			if err != nil {
				return err
			}
			return printJSON(properties)
		},
	}
	cmd.Flags().StringVar(&listType, "type", "", "property set to list: all or custom")
	return cmd
}

func transactionalCmd(client **loops.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactional",
		Short: "Work with transactional emails",
	}

	var perPage int
	var cursor string
	list := &cobra.Command{
		Use:   "list",
		Short: "List published transactional email templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			resp, err := (*client).Transactional().List(ctx, &loops.TransactionalListParams{
				PerPage: perPage,
				Cursor:  cursor,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	list.Flags().IntVar(&perPage, "per-page", 0, "results per page (10-50)")
	list.Flags().StringVar(&cursor, "cursor", "", "pagination cursor")

	cmd.AddCommand(list)
	return cmd
}

func eventsCmd(client **loops.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fire events",
	}

	var email, userID string
	var idempotent bool
	send := &cobra.Command{
		Use:   "send <event-name>",
		Short: "Fire an event for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			var opts []loops.RequestOption
			if idempotent {
				opts = append(opts, loops.WithIdempotencyKey(loops.NewIdempotencyKey()))
			}
			resp, err := (*client).Events().Send(ctx, &loops.EventSendRequest{
				Email:     email,
				UserID:    userID,
				EventName: args[0],
			}, opts...)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	send.Flags().StringVar(&email, "email", "", "contact email")
	send.Flags().StringVar(&userID, "user-id", "", "contact user ID")
	send.Flags().BoolVar(&idempotent, "idempotent", false, "attach a random idempotency key")

	cmd.AddCommand(send)
	return cmd
}
