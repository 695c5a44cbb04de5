package main

import (
	"github.com/spf13/cobra"

	"github.com/dtroode/famgram/internal/app"
	"github.com/dtroode/famgram/internal/config"
	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/service"
)

// offline marks commands that run without the wired application.
const offline = "offline"

type cli struct {
	cfg    *config.Config
	logger *logger.Logger
	app    *app.App
}

func newRootCmd(cfg *config.Config, logger *logger.Logger) *cobra.Command {
	c := &cli{cfg: cfg, logger: logger}

	root := &cobra.Command{
		Use:           "famgram",
		Short:         "Family photo sharing from the terminal",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[offline] != "" || cmd.Name() == "help" {
				return nil
			}
			a, err := app.New(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.AddCommand(
		c.loginCmd(),
		c.signupCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.refreshCmd(),
		c.feedCmd(),
		c.profileCmd(),
		c.followCmd(),
		c.unfollowCmd(),
		c.likeCmd(),
		c.commentCmd(),
		c.postCmd(),
		c.deletePostCmd(),
		c.deleteCommentCmd(),
		c.saveCmd(),
		c.tagCmd(),
		c.untagCmd(),
		c.savedCmd(),
		c.taggedCmd(),
		c.avatarCmd(),
		c.bioCmd(),
		c.adminCmd(),
		c.migrateCmd(),
	)

	return root
}

func (c *cli) session() *service.Session {
	return c.app.Session
}

func (c *cli) social() *service.Social {
	return c.app.Social
}

// actor returns the logged in user or an unauthenticated error.
func (c *cli) actor() (model.User, error) {
	u, err := c.session().RequireUser()
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}
