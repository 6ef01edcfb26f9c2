package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"glamstore/internal/bootstrap"
	"glamstore/internal/config"
	"glamstore/internal/logging"
	"glamstore/internal/repository"
	"glamstore/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "storectl",
		Usage: "operator tasks against the configured store",
		Commands: []*cli.Command{
			{
				Name:  "reset-password",
				Usage: "set a new password for a local account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"STORECTL_PASSWORD"}},
				},
				Action: withStore(resetPassword),
			},
			{
				Name:  "seed",
				Usage: "create the admin account and, optionally, a sample catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin-email", Value: "admin@example.com"},
					&cli.StringFlag{Name: "admin-name", Value: "Store Administrator"},
					&cli.StringFlag{Name: "admin-password", Required: true, EnvVars: []string{"STORECTL_ADMIN_PASSWORD"}},
					&cli.BoolFlag{Name: "catalog", Usage: "add sample categories and products to an empty catalog"},
				},
				Action: withStore(seed),
			},
			{
				Name:  "link-identity",
				Usage: "store an identity-provider id on a local user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true, Usage: "local user id"},
					&cli.StringFlag{Name: "external", Required: true, Usage: "identity-provider user id (user_...)"},
				},
				Action: withStore(linkIdentity),
			},
			{
				Name:  "best-sellers",
				Usage: "print the best-selling products as JSON",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 4},
				},
				Action: withStore(bestSellers),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("storectl failed")
	}
}

type storeAction func(c *cli.Context, store repository.Store, log *logrus.Logger) error

// withStore opens the configured store around a command.
func withStore(action storeAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
		defer cancel()
		store, err := bootstrap.OpenStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		return action(c, store, log)
	}
}

func resetPassword(c *cli.Context, store repository.Store, log *logrus.Logger) error {
	users := service.NewUserService(store.Users(), repository.NewReconciler(store.Users(), store.Orders(), log))
	if err := users.ResetPassword(c.Context, c.String("email"), c.String("password")); err != nil {
		return errors.Wrapf(err, "reset password for %s", c.String("email"))
	}
	log.WithField("email", c.String("email")).Info("password updated")
	return nil
}

func seed(c *cli.Context, store repository.Store, log *logrus.Logger) error {
	return bootstrap.Seed(c.Context, store, bootstrap.SeedOptions{
		AdminName:     c.String("admin-name"),
		AdminEmail:    c.String("admin-email"),
		AdminPassword: c.String("admin-password"),
		Catalog:       c.Bool("catalog"),
	}, log)
}

func linkIdentity(c *cli.Context, store repository.Store, log *logrus.Logger) error {
	reconciler := repository.NewReconciler(store.Users(), store.Orders(), log)
	user, err := reconciler.LinkExternalID(c.Context, c.String("user"), c.String("external"))
	if err != nil {
		return errors.Wrap(err, "link identity")
	}
	log.WithFields(logrus.Fields{"user_id": user.ID, "external_id": user.ExternalID}).Info("identity linked")
	return nil
}

func bestSellers(c *cli.Context, store repository.Store, log *logrus.Logger) error {
	products := service.NewProductService(store, nil, nil, log)
	best, err := products.BestSellers(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(best, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
