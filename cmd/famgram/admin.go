package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/service"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate users and content",
	}
	cmd.AddCommand(
		c.adminUsersCmd(),
		c.adminPostsCmd(),
		c.adminCreateUserCmd(),
		c.adminDeleteUserCmd(),
	)
	return cmd
}

func (c *cli) adminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users known remotely or locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			users, err := c.social().AdminUsers(cmd.Context(), actor)
			if err != nil {
				return err
			}
			return printUserTable(cmd.OutOrStdout(), users)
		},
	}
}

func (c *cli) adminPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List posts known remotely or locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			posts, err := c.social().AdminPosts(cmd.Context(), actor)
			if err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
}

func (c *cli) adminCreateUserCmd() *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "create-user <username> <password> <full-name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			role := model.RoleUser
			if admin {
				role = model.RoleAdmin
			}
			u, err := c.social().CreateUser(cmd.Context(), actor, service.NewUser{
				Username: args[0],
				Password: args[1],
				FullName: args[2],
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user @%s created with id %s\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the administrator role")

	return cmd
}

func (c *cli) adminDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <username>",
		Short: "Delete an account with its posts, comments and images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			target, err := c.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := c.social().DeleteUser(cmd.Context(), actor, target.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user @%s deleted\n", target.Username)
			return nil
		},
	}
}
