package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/ciphersafe/internal/buildinfo"
	"github.com/dmitrijs2005/ciphersafe/internal/client/client"
	"github.com/dmitrijs2005/ciphersafe/internal/client/config"
	"github.com/spf13/cobra"
)

// errSessionRequired is returned by one-shot commands that need a stored
// credential.
var errSessionRequired = errors.New("not logged in, run 'ciphersafe login'")

// errSessionExpired replaces a 401 in one-shot command errors.
var errSessionExpired = errors.New("session expired, run 'ciphersafe login'")

// newAppFn builds the App for a command. Tests replace it.
var newAppFn = NewApp

// commandSet owns the App shared by the commands of one invocation.
type commandSet struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	app *App
}

// appFor loads the configuration from cmd's flags and builds the App on
// first use.
func (s *commandSet) appFor(cmd *cobra.Command) (*App, error) {
	if s.app != nil {
		return s.app, nil
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	app, err := newAppFn(cmd.Context(), cfg, s.in, s.out, s.errOut)
	if err != nil {
		return nil, err
	}
	s.app = app
	return app, nil
}

func (s *commandSet) close() {
	if s.app != nil {
		s.app.Close()
		s.app = nil
	}
}

// NewRootCommand builds the ciphersafe command tree. The returned cleanup
// releases the App built by whichever command ran.
func NewRootCommand(in io.Reader, out, errOut io.Writer) (*cobra.Command, func()) {
	s := &commandSet{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "ciphersafe",
		Short: "Client for a self-hosted secrets manager",
		Long: `ciphersafe keeps key/value secrets organized into projects on a
CipherSafe server.

Start with 'ciphersafe register' and 'ciphersafe login', or run
'ciphersafe shell' for an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		s.loginCommand(),
		s.registerCommand(),
		s.logoutCommand(),
		s.statusCommand(),
		s.projectsCommand(),
		s.secretsCommand(),
		s.shellCommand(),
		versionCommand(),
	)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root, s.close
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root, cleanup := NewRootCommand(in, out, errOut)
	defer cleanup()

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (s *commandSet) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return app.login(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

func (s *commandSet) registerCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return app.register(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

func (s *commandSet) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return app.Logout(cmd.Context())
		},
	}
}

func (s *commandSet) statusCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is held",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return app.PrintStatus(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the status as JSON")
	return cmd
}

func (s *commandSet) projectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return sessionError(app.ListProjects(cmd.Context(), cmd.OutOrStdout()))
		},
	}
}

func (s *commandSet) secretsCommand() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "secrets <project-id>",
		Short: "List the secrets of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return sessionError(app.ListSecrets(cmd.Context(), cmd.OutOrStdout(), id, reveal))
		},
	}
	cmd.Flags().BoolVarP(&reveal, "reveal", "r", false, "print values in clear text")
	return cmd
}

func (s *commandSet) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := s.appFor(cmd)
			if err != nil {
				return err
			}
			return app.Shell(cmd.Context())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// sessionError turns a rejected credential into a hint to log in again.
func sessionError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return errSessionExpired
	}
	return err
}
