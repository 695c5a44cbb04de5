package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/famgram/internal/apierrors"
	"github.com/dtroode/famgram/internal/model"
)

func (c *cli) feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "List the latest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := c.social().ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <username>",
		Short: "Show a user with their posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			posts, err := c.social().UserPosts(cmd.Context(), u.ID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printUser(w, u, time.Now().UnixMilli())
			if current := c.session().Current(); current != nil && current.ID != u.ID {
				fmt.Fprintf(w, "  following: %t\n", current.IsFollowing(u.ID))
			}
			printPosts(w, posts)
			return nil
		},
	}
}

func (c *cli) followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <username>",
		Short: "Follow a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.changeFollow(cmd, args[0], true)
		},
	}
}

func (c *cli) unfollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <username>",
		Short: "Stop following a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.changeFollow(cmd, args[0], false)
		},
	}
}

func (c *cli) changeFollow(cmd *cobra.Command, username string, follow bool) error {
	actor, err := c.actor()
	if err != nil {
		return err
	}
	target, err := c.resolve(cmd.Context(), username)
	if err != nil {
		return err
	}

	verb := "unfollowed"
	if follow {
		verb = "following"
		err = c.social().Follow(cmd.Context(), actor, target.ID)
	} else {
		err = c.social().Unfollow(cmd.Context(), actor, target.ID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s @%s\n", verb, target.Username)
	return nil
}

func (c *cli) resolve(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimPrefix(username, "@")
	u, err := c.social().ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apierrors.NewErrUserNotFound(username)
	}
	return u, nil
}

func (c *cli) likeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like or unlike a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			posts, err := c.social().ToggleLike(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			for _, p := range posts {
				if p.ID == args[0] {
					fmt.Fprintf(cmd.OutOrStdout(), "likes: %d\n", len(p.Likes))
				}
			}
			return nil
		},
	}
}

func (c *cli) commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			comment, err := c.social().AddComment(cmd.Context(), actor, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %s added\n", comment.ID)
			return nil
		},
	}
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <post-id>",
		Short: "Save or unsave a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			saved, err := c.social().ToggleSave(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintln(cmd.OutOrStdout(), "saved")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "removed from saved")
			}
			return nil
		},
	}
}

func (c *cli) savedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List your saved posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), c.social().SavedPosts(cmd.Context(), actor.ID))
			return nil
		},
	}
}

func (c *cli) taggedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tagged [username]",
		Short: "List posts a user is tagged on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID string
			if len(args) == 1 {
				u, err := c.resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				userID = u.ID
			} else {
				actor, err := c.actor()
				if err != nil {
					return err
				}
				userID = actor.ID
			}
			printPosts(cmd.OutOrStdout(), c.social().TaggedPosts(cmd.Context(), userID))
			return nil
		},
	}
}
