package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/vnkhanh/skillplus-backend/config"
	"github.com/vnkhanh/skillplus-backend/logger"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/validators"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	users repository.UserRepository
	out   io.Writer
}

func main() {
	cfg, _, err := config.Load()
	log := logger.New("development", "info")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	cli := commandLine{users: repository.NewUserRepository(db), out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Error().Err(err).Msg("createadmin failed")
		}
		os.Exit(1)
	}
}

func (cli *commandLine) run(args []string) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(cli.out)
	username := fs.String("username", "", "admin username")
	email := fs.String("email", "", "admin email; an existing user with this email is promoted")
	if err := fs.Parse(args[1:]); err != nil {
		return errHelp
	}
	if *username == "" || *email == "" {
		fs.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	return cli.createAdmin(context.Background(), *username, *email, string(pwd))
}

// createAdmin creates the user, or updates username, password and role of the
// user that already has this email.
func (cli *commandLine) createAdmin(ctx context.Context, username, email, password string) error {
	in := validators.RegisterInput{Username: username, Email: email, Password: password}
	if err := validators.ValidateRegistration(&in); err != nil {
		return err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := cli.users.Upsert(ctx, user); err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "admin %s <%s> is ready\n", in.Username, in.Email)
	return nil
}
