package client

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/YabaiTech/YAPM/internal/app"
	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/internal/workers"
	"github.com/YabaiTech/YAPM/models"
)

// PasswordEnv, when set, is used as the master password instead of
// prompting. Meant for scripts.
const PasswordEnv = "YAPM_PASSWORD"

const (
	labelAccountUsername = "Username"
	labelEmail           = "Email"
	labelRepeatPassword  = "Repeat master password"
)

const usage = `yapm [global flags] <command> [flags]

Commands:
  register [-u username] [-e email]     create an account and its vault
  login [-u username|email]             log in and open the vault screen
  list [-u ...] [-show]                 print the stored entries
  add [-u ...] [-url URL] [-user NAME]  store a password
  delete [-u ...] <id>                  delete an entry
  sync [-u ...]                         merge the cloud copy of the vault
  version                               print build information
  help                                  print this text

Missing values are asked for in a form. The master password is read
from ` + PasswordEnv + ` when it is set.
`

type App struct {
	accounts    service.AccountService
	coordinator service.SyncCoordinator
	workers     config.ClientWorkers
	build       models.AppBuildInfo

	ui        UI
	clipboard Clipboard
	out       io.Writer
	lookupEnv func(string) (string, bool)

	logger *logger.Logger
}

// NewApp wires the CLI to services. Forms and the vault screen run on ui,
// command results are printed to out.
func NewApp(services *service.Services, workerCfg config.ClientWorkers, build models.AppBuildInfo,
	ui UI, clipboard Clipboard, out io.Writer, logger *logger.Logger) *App {
	return &App{
		accounts:    services.AccountService,
		coordinator: services.SyncCoordinator,
		workers:     workerCfg,
		build:       build,
		ui:          ui,
		clipboard:   clipboard,
		out:         out,
		lookupEnv:   os.LookupEnv,
		logger:      logger,
	}
}

// Run implements Client. A failed command has already been reported on out
// when Run returns its error.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "register":
		err = a.register(ctx, rest)
	case "login":
		err = a.login(ctx, rest)
	case "list":
		err = a.list(ctx, rest)
	case "add":
		err = a.add(ctx, rest)
	case "delete":
		err = a.delete(ctx, rest)
	case "sync":
		err = a.sync(ctx, rest)
	case "version":
		a.printVersion()
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.out, usage)
	default:
		a.printf(app.MsgUnknownCommand, cmd)
		return errUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil && !errors.Is(err, errUsage) {
		a.logger.Err(err).Str("func", "*App.Run").Str("command", args[0]).Msg("command failed")
		a.println(userMessage(err))
	}
	return err
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	username := fs.String("u", "", "account username")
	email := fs.String("e", "", "account email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	password := a.envPassword()
	repeat := password
	err := a.ask(ctx, "Create a YAPM account", passwordsMatch,
		question{label: labelAccountUsername, dst: username},
		question{label: labelEmail, dst: email},
		question{label: labelMasterPassword, secret: true, dst: &password},
		question{label: labelRepeatPassword, secret: true, dst: &repeat},
	)
	if err != nil {
		return err
	}

	account, err := a.accounts.Register(ctx, models.Registration{
		Username: strings.TrimSpace(*username),
		Email:    strings.TrimSpace(*email),
		Password: password,
	})
	if errors.Is(err, service.ErrFailedToUpload) {
		a.logger.Warn().Err(err).Str("func", "*App.register").Msg("vault not uploaded after registration")
		a.printf(app.MsgRegisteredNotUploaded, account.Username)
		return nil
	}
	if err != nil {
		return err
	}

	a.printf(app.MsgRegistered, account.Username, account.VaultFileName)
	return nil
}

// login runs the vault screen until the user logs out. The background sync
// job runs for as long as the screen does and is stopped before the final
// logout upload.
func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	identifier := fs.String("u", "", "username or email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var jobs *workers.Workers
	open := func(ctx context.Context, identifier, password string) (*service.Session, error) {
		session, err := a.coordinator.Login(ctx, strings.TrimSpace(identifier), password)
		if err != nil {
			return nil, err
		}
		a.logger.Info().Str("func", "*App.login").Str("username", session.Account.Username).Msg("logged in")
		jobs = workers.NewWorkers(service.NewSyncJob(a.coordinator, session, a.workers.SyncInterval, a.logger))
		jobs.Start(ctx)
		return session, nil
	}
	newScreen := func(session *service.Session) vaultScreen {
		return newVaultScreen(ctx, session, a.coordinator, a.clipboard, a.logger)
	}

	final, runErr := a.ui.Run(ctx, newLoginScreen(ctx, *identifier, a.envPassword(), open, newScreen), true)
	screen, _ := final.(loginScreen)
	if screen.session == nil {
		return cmp.Or(runErr, screen.err, errCanceled)
	}

	if jobs != nil {
		jobs.Stop()
	}
	if err := a.coordinator.Logout(context.WithoutCancel(ctx), screen.session); err != nil {
		return errors.Join(runErr, err)
	}
	a.println(app.MsgLoggedOut)
	return runErr
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	identifier := fs.String("u", "", "username or email")
	show := fs.Bool("show", false, "print passwords")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	return a.oneShot(ctx, *identifier, nil, func(session *service.Session) error {
		entries, err := listEntries(ctx, session)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			a.println(app.MsgNoEntries)
			return nil
		}
		a.println(renderEntries(entries, *show))
		return nil
	})
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	identifier := fs.String("u", "", "username or email")
	url := fs.String("url", "", "entry url")
	user := fs.String("user", "", "entry username")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var password string
	questions := []question{
		{label: labelURL, dst: url},
		{label: labelUsername, dst: user},
		{label: labelPassword, secret: true, dst: &password},
	}

	return a.oneShot(ctx, *identifier, questions, func(session *service.Session) error {
		id, err := addEntry(ctx, session, *url, *user, password)
		if err != nil {
			return err
		}
		a.printf(app.MsgEntryAdded, shortID(id))
		return nil
	})
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	identifier := fs.String("u", "", "username or email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		a.printf(app.MsgUsage, "yapm delete [-u username|email] <id>")
		return errUsage
	}

	return a.oneShot(ctx, *identifier, nil, func(session *service.Session) error {
		if err := deleteEntry(ctx, session, fs.Arg(0)); err != nil {
			return err
		}
		a.println(app.MsgEntryDeleted)
		return nil
	})
}

func (a *App) sync(ctx context.Context, args []string) error {
	fs := a.newFlagSet("sync")
	identifier := fs.String("u", "", "username or email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	return a.oneShot(ctx, *identifier, nil, func(session *service.Session) error {
		if err := a.coordinator.Sync(ctx, session); err != nil {
			return err
		}
		a.println(app.MsgSynced)
		return nil
	})
}

// oneShot asks for the missing credentials and questions in one form, logs
// in, runs fn and logs out again, also when fn fails.
func (a *App) oneShot(ctx context.Context, identifier string, questions []question,
	fn func(session *service.Session) error) (err error) {
	password := a.envPassword()
	questions = append([]question{
		{label: labelIdentifier, dst: &identifier},
		{label: labelMasterPassword, secret: true, dst: &password},
	}, questions...)
	if err = a.ask(ctx, "Log in to YAPM", nil, questions...); err != nil {
		return err
	}

	session, err := a.coordinator.Login(ctx, strings.TrimSpace(identifier), password)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.coordinator.Logout(context.WithoutCancel(ctx), session))
	}()

	return fn(session)
}

// ask shows one form with every question whose destination is still empty.
// It returns errCanceled when the form is left without submitting.
func (a *App) ask(ctx context.Context, title string, validate func(map[string]string) error, questions ...question) error {
	var missing []question
	for _, q := range questions {
		if *q.dst == "" {
			missing = append(missing, q)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	form := newForm(title, missing...)
	form.validate = validate
	final, err := a.ui.Run(ctx, formPage{form: form}, false)
	if err != nil {
		return err
	}
	page, ok := final.(formPage)
	if !ok || !page.form.submitted {
		return errCanceled
	}

	page.form.apply()
	return nil
}

func (a *App) envPassword() string {
	password, _ := a.lookupEnv(PasswordEnv)
	return password
}

// passwordsMatch checks the repeated master password when both were asked.
func passwordsMatch(answers map[string]string) error {
	password, ok := answers[labelMasterPassword]
	if ok && password != answers[labelRepeatPassword] {
		return errPasswordsDoNotMatch
	}
	return nil
}

func (a *App) printVersion() {
	fmt.Fprintf(a.out, "Build version: %s\n", a.build.BuildVersion())
	fmt.Fprintf(a.out, "Build date: %s\n", a.build.BuildDate())
	fmt.Fprintf(a.out, "Build commit: %s\n", a.build.BuildCommit())
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("yapm "+name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) println(msg string) {
	fmt.Fprintln(a.out, msg)
}
