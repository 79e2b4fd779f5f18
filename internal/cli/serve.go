package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algoviz/algoviz/internal/api"
	"github.com/algoviz/algoviz/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
// Flags override the config file's [store], [cache], and [serve] sections.
type serveOpts struct {
	addr     string
	store    string
	dataDir  string
	mongoURI string
	mongoDB  string
	noCache  bool
}

// serveCommand creates the serve command exposing the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     c.Config.Serve.Addr,
		store:    c.Config.Store.Backend,
		dataDir:  c.Config.Store.Dir,
		mongoURI: c.Config.Store.MongoURI,
		mongoDB:  c.Config.Store.MongoDB,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions and frame artifacts over HTTP",
		Long: `Serve starts an HTTP API for uploading session documents and rendering
their frames on demand.

Endpoints:
  POST   /api/sessions                        upload a session document
  GET    /api/sessions                        list stored sessions
  GET    /api/sessions/{id}                   fetch a full session
  DELETE /api/sessions/{id}                   delete a session
  GET    /api/sessions/{id}/frames/{index}    render one frame (?format=svg|json|png|pdf|dot)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.store, "store", opts.store, "session store backend: file (default), mongo")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", opts.dataDir, "session directory for the file store")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runServe wires the session store, artifact cache, and pipeline runner
// into the API server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.NewServer(api.Config{
		Addr:   opts.addr,
		Store:  store,
		Runner: runner,
		Logger: c.Logger,
	})

	printInfo("Serving on %s", opts.addr)
	printDetail("Store: %s", opts.store)
	printNextStep("Upload a session", fmt.Sprintf("curl -X POST --data-binary @session.json http://localhost%s/api/sessions", opts.addr))

	return srv.Serve(ctx)
}

// newStore builds the session store selected by flags and config.
func (c *CLI) newStore(ctx context.Context, opts *serveOpts) (session.Store, error) {
	switch opts.store {
	case "mongo":
		c.Logger.Info("connecting to MongoDB", "uri", opts.mongoURI, "db", opts.mongoDB)
		return session.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB, "sessions")
	case "", "file":
		dir := opts.dataDir
		if dir == "" {
			var err error
			dir, err = dataDir()
			if err != nil {
				return nil, err
			}
		}
		c.Logger.Debug("using file session store", "dir", dir)
		return session.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'file' or 'mongo')", opts.store)
	}
}
